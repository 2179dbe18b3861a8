package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nibzard/taskinder-go/internal/ui"
)

func newTUICommand(a *app) *cobra.Command {
	var refresh time.Duration
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse tasks in an interactive terminal view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			return ui.RunTUI(cmd.Context(), svc,
				ui.WithRefreshInterval(refresh),
				ui.WithStorePath(a.cfg.Config.StoreFile),
			)
		},
	}
	cmd.Flags().DurationVar(&refresh, "refresh", 2*time.Second, "Reload interval")
	return cmd
}
