package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/mutator"
)

var createCmd = &cobra.Command{
	Use:   "create <path[:METHOD]>",
	Short: "Creates a route handler",
	Long: `Creates the handler for METHOD (default GET) at the logical path, adding
directories and the route file as needed. An existing route file gets the
handler appended unless it already declares the method.`,
	Example: `  approute create /api/users
  approute create '/api/users/[id]:DELETE'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("create called")
		e, err := openProject()
		if err != nil {
			return err
		}

		res, err := e.Create(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.Outcome == mutator.OutcomeMethodExists {
			warn(out, "%s already has a %s handler at %s:%d", res.LogicalPath, res.Method, relPath(e, res.Path), res.Line+1)
			return nil
		}
		success(out, "%s %s %s in %s:%d", res.Outcome, res.Method, res.LogicalPath, relPath(e, res.Path), res.Line+1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().String("default-method", "", "Method used when the path has no :METHOD suffix")
	settings.BindPFlag(config.KeyDefaultMethod, createCmd.Flags().Lookup("default-method"))
}
