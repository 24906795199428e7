/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tristendillon/approute/core/logger"
)

var format string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Prints the route tree of the project",
	Long: `Scans the routing root for route handler files and prints every route
with its kind and declared methods.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("scan called")
		e, err := openProject()
		if err != nil {
			return err
		}
		return writeForest(cmd.OutOrStdout(), e.Forest(), e.ProjectDir(), format)
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&format, "format", "f", "tree", "Output format: tree, json or yaml")
}
