package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnoswap-labs/boolex/analyze"
)

// newInitCmd: boolex init
func newInitCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.cfgFile
			if path == "" {
				path = analyze.DefaultConfigPath
			}
			if err := analyze.WriteConfig(path, analyze.DefaultConfig()); err != nil {
				return fmt.Errorf("error initializing config file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", path)
			return nil
		},
	}
}
