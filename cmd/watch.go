package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/models"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Prints the route tree and reprints it whenever routes change",
	Long: `Watches the routing root, and optionally the git HEAD and refs, and
rescans once a burst of changes has settled.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("watch called")
		e, err := openProject()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		renderTree(out, e.Forest())
		e.OnChange(func(f *models.Forest) {
			success(out, "Routes changed (%d)", f.Len())
			renderTree(out, f)
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return e.Watch(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("debounce", 0, "Quiet period before a rescan")
	watchCmd.Flags().Bool("vcs", true, "Also rescan on git checkouts")
	settings.BindPFlag(config.KeyDebounce, watchCmd.Flags().Lookup("debounce"))
	settings.BindPFlag(config.KeyVCS, watchCmd.Flags().Lookup("vcs"))
}
