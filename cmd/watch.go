package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/boolex/formatter"
	tt "github.com/gnoswap-labs/boolex/internal/types"
)

func newWatchCmd(o *options) *cobra.Command {
	co := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "watch [dirs...]",
		Short: "Re-analyze expression files whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(o, co)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			out := cmd.OutOrStdout()
			var mu sync.Mutex
			err = engine.StartWatching(args, func(filename string, reports []tt.Report) {
				mu.Lock()
				defer mu.Unlock()
				fmt.Fprint(out, formatter.FormatReports(reports))
			})
			if err != nil {
				return err
			}
			o.logger.Info("watching", zap.Strings("dirs", args))

			<-ctx.Done()
			return engine.StopWatching()
		},
	}
	cmd.Flags().StringSliceVar(&co.ignoreChecks, "ignore", nil, "Comma-separated list of checks to skip (count, minimize, verify)")
	return cmd
}
