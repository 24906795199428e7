/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/logger"
	"gopkg.in/yaml.v3"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes a default approute.yaml",
	Long:  `Writes an approute.yaml with the default settings into the project directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		path := filepath.Join(projectDir, config.FileName)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists. Use --force to overwrite", path)
		}

		data, err := yaml.Marshal(config.Default())
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		success(cmd.OutOrStdout(), "Wrote %s", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
}
