package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/mutator"
)

var (
	merge     bool
	renameYes bool
)

var renameCmd = &cobra.Command{
	Use:   "rename <from> <to>",
	Short: "Moves a route to a new logical path",
	Long: `Moves the route file serving <from> so it serves <to>. Route groups on
the old path are kept. When <to> already has a route file the two are merged,
which needs --merge or an interactive confirmation; the merge is textual and
the result should be reviewed.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("rename called")
		e, err := openProject()
		if err != nil {
			return err
		}

		res, err := e.Rename(args[0], args[1], merge)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if res.Outcome == mutator.OutcomeMergeRequired {
			prompt := fmt.Sprintf("%s already exists. Merge %s into it? This cannot be undone.", relPath(e, res.Path), args[0])
			if renameYes || !confirm(cmd.InOrStdin(), out, prompt) {
				return fmt.Errorf("%s already has a route file; pass --merge to combine them", res.LogicalPath)
			}
			if res, err = e.Rename(args[0], args[1], true); err != nil {
				return err
			}
		}

		switch res.Outcome {
		case mutator.OutcomeNoOp:
			warn(out, "%s already serves %s", relPath(e, res.Path), res.LogicalPath)
		case mutator.OutcomeMerged:
			success(out, "Merged %s into %s; review the result", args[0], relPath(e, res.Path))
		default:
			success(out, "Moved %s to %s (%s)", args[0], res.LogicalPath, relPath(e, res.Path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().BoolVar(&merge, "merge", false, "Merge into an existing route file at the destination")
	renameCmd.Flags().BoolVarP(&renameYes, "yes", "y", false, "Never prompt; fail instead of asking to merge")
}
