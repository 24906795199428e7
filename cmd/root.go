/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/explorer"
	"github.com/tristendillon/approute/core/logger"
)

var rootCmd = &cobra.Command{
	Use:   "approute",
	Short: "Discover and edit the API routes of a Next.js app router project.",
	Long: `approute scans the app router of a Next.js project for route handlers
and shows them as a tree of logical URL paths. Routes can be created,
renamed or deleted by logical path; approute maps the edit onto files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		if logfile != "" {
			if err := logger.SetLogFile(logfile); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

var (
	logfile    string
	verbose    bool
	projectDir string

	settings = config.NewViper()
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project directory")
	rootCmd.PersistentFlags().String("private-prefix", "", "Prefix marking private folders")
	settings.BindPFlag(config.KeyPrivatePrefix, rootCmd.PersistentFlags().Lookup("private-prefix"))
}

// loadConfig reads approute.yaml from the project directory and applies
// environment and flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyOverrides(cfg, settings); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openProject validates the project directory and performs the first scan.
func openProject() (*explorer.Explorer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	e, err := explorer.New(projectDir, cfg)
	if err != nil {
		return nil, err
	}
	e.Scan()
	return e, nil
}

func relPath(e *explorer.Explorer, path string) string {
	if rel, err := filepath.Rel(e.ProjectDir(), path); err == nil {
		return rel
	}
	return path
}
