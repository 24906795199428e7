package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/approute/core/logger"
)

var yes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Deletes a route handler file",
	Long: `Deletes the route file serving the logical path and removes directories
left empty by it, up to the routing root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("delete called")
		e, err := openProject()
		if err != nil {
			return err
		}

		route, err := e.Route(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		prompt := fmt.Sprintf("Delete %s (%s)?", route.APIPath, relPath(e, route.FilePath))
		if !yes && !confirm(cmd.InOrStdin(), out, prompt) {
			warn(out, "Aborted")
			return nil
		}

		if err := e.Delete(route.APIPath); err != nil {
			return err
		}
		success(out, "Deleted %s", route.APIPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
}
