package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/project"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Reports whether the directory is a routable project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("check called")
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dir, err := filepath.Abs(projectDir)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", projectDir, err)
		}

		out := cmd.OutOrStdout()
		hasDep := project.HasFrameworkDependency(dir, cfg)
		root, hasRoot := project.FindRouteRoot(dir, cfg)

		if hasDep {
			success(out, "%s declares %s", cfg.Manifest, cfg.FrameworkDependency)
		} else {
			warn(out, "%s missing, unreadable or not declaring %s", cfg.Manifest, cfg.FrameworkDependency)
		}
		if hasRoot {
			success(out, "Routing root: %s", root)
		} else {
			warn(out, "No routing root found (looked for %v)", cfg.RouteRoots)
		}

		if !hasDep || !hasRoot {
			return fmt.Errorf("%s is not a routable project", dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
