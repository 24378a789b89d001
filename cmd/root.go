package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/boolex/analyze"
)

const defaultTimeout = 5 * time.Minute

// errFailed is returned when an expression is rejected or a check fails.
// The reports have already been printed.
var errFailed = errors.New("one or more expressions failed")

type options struct {
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:              "boolex [paths...]",
		Short:            "boolex - validate, tabulate and minimize Boolean expressions",
		Args:             cobra.ArbitraryArgs,
		SilenceUsage:     true,
		TraverseChildren: true, // Prioritize subcommands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(o.verbose)
			if err != nil {
				return err
			}
			o.logger = logger
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// display help when only 'boolex' is entered
				return cmd.Help()
			}
			// Format: boolex [path1 path2 ...] => behaves like the check subcommand
			return runCheck(cmd, o, &checkOptions{}, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", analyze.DefaultConfigPath, "Path to the configuration file")
	flags.DurationVar(&o.timeout, "timeout", defaultTimeout, "Set a timeout for batch analysis")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(o),
		newValidateCmd(o),
		newTableCmd(o),
		newMinimizeCmd(o),
		newEquivCmd(o),
		newCountCmd(o),
		newCheckCmd(o),
		newWatchCmd(o),
	)
	return rootCmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return config.Build()
}

func Execute() error {
	return newRootCmd().Execute()
}
