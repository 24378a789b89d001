package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/boolex"
	"github.com/gnoswap-labs/boolex/analyze"
	"github.com/gnoswap-labs/boolex/formatter"
)

func newValidateCmd(o *options) *cobra.Command {
	var forTable bool

	cmd := &cobra.Command{
		Use:   "validate <expression>...",
		Short: "Check that expressions are well formed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := false
			for _, e := range args {
				if err := boolex.Validate(e, forTable); err != nil {
					o.logger.Debug("rejected", zap.String("expression", e), zap.Error(err))
					fmt.Fprintf(cmd.OutOrStdout(), "invalid: %v\n", err)
					failed = true
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "valid: %s\n", e)
			}
			if failed {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&forTable, "table", false, "Also enforce the truth table input limit")
	return cmd
}

func newTableCmd(o *options) *cobra.Command {
	var steps bool

	cmd := &cobra.Command{
		Use:   "table <expression>",
		Short: "Print the truth table of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("steps") {
				config, err := analyze.LoadConfig(o.cfgFile)
				if err != nil {
					return err
				}
				steps = config.Steps
			}
			t, err := boolex.TruthTable(args[0], steps)
			if err != nil {
				return err
			}
			return formatter.RenderTable(cmd.OutOrStdout(), t)
		},
	}
	cmd.Flags().BoolVar(&steps, "steps", false, "Add a column for every sub-expression")
	return cmd
}

func newMinimizeCmd(o *options) *cobra.Command {
	var (
		verify bool
		detail bool
	)

	cmd := &cobra.Command{
		Use:   "minimize <expression>...",
		Short: "Reduce expressions to a minimal sum of products",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, e := range args {
				res, err := boolex.MinimizeDetailed(e)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, res.Expression)

				if detail {
					fmt.Fprintf(out, "  primes:     %s\n", joinImplicants(res.Primes))
					fmt.Fprintf(out, "  essentials: %s\n", joinImplicants(res.Essentials))
					fmt.Fprintf(out, "  selected:   %s\n", joinImplicants(res.Selected))
					if res.UsedPetrick {
						fmt.Fprintln(out, "  petrick:    yes")
					}
				}

				if verify {
					model, differ, err := boolex.Counterexample(e, res.Expression)
					if err != nil {
						return err
					}
					if differ {
						o.logger.Error("minimized form differs", zap.String("expression", e), zap.String("minimized", res.Expression))
						return fmt.Errorf("%s and %s differ at %s", e, res.Expression, assignment(model))
					}
					fmt.Fprintln(out, "  verified")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Prove the result equivalent with a SAT solver")
	cmd.Flags().BoolVar(&detail, "detail", false, "Print the prime implicants and the chosen cover")
	return cmd
}

func newEquivCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "equiv <expression> <expression>",
		Short: "Decide whether two expressions compute the same function",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, differ, err := boolex.Counterexample(args[0], args[1])
			if err != nil {
				return err
			}
			if differ {
				fmt.Fprintf(cmd.OutOrStdout(), "not equivalent: %s\n", assignment(model))
				return errFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), "equivalent")
			return nil
		},
	}
}

func newCountCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count <expression>",
		Short: "Count the assignments that make an expression true",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := boolex.CountMinterms(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.String())
			return nil
		},
	}
}

func joinImplicants[T fmt.Stringer](items []T) string {
	if len(items) == 0 {
		return "-"
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

// assignment renders a model as "A=1 B=0" in input order.
func assignment(model map[string]bool) string {
	names := make([]string, 0, len(model))
	for name := range model {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		v := 0
		if model[name] {
			v = 1
		}
		parts[i] = fmt.Sprintf("%s=%d", name, v)
	}
	return strings.Join(parts, " ")
}
