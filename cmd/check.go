package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/boolex/analyze"
	"github.com/gnoswap-labs/boolex/formatter"
	"github.com/gnoswap-labs/boolex/internal"
	tt "github.com/gnoswap-labs/boolex/internal/types"
)

// stdinPath reads expressions from standard input.
const stdinPath = "-"

type checkOptions struct {
	ignoreChecks []string
	ignorePaths  []string
	jsonOutput   bool
	outPath      string
	cacheDir     string
	cacheMaxAge  time.Duration
}

func newCheckCmd(o *options) *cobra.Command {
	co := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Analyze every expression in files or directories",
		Long: `Analyze every expression in the given files or directories, one
expression per line. Blank lines and lines starting with # are skipped.
Use - to read from standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, o, co, args)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&co.ignoreChecks, "ignore", nil, "Comma-separated list of checks to skip (count, minimize, verify)")
	flags.StringSliceVar(&co.ignorePaths, "ignore-paths", nil, "Comma-separated list of file or directory names to skip")
	flags.BoolVar(&co.jsonOutput, "json", false, "Output reports in JSON format")
	flags.StringVarP(&co.outPath, "output", "o", "", "Output path (when using JSON)")
	flags.StringVar(&co.cacheDir, "cache", "", "Directory caching the reports of unchanged files")
	flags.DurationVar(&co.cacheMaxAge, "cache-max-age", 24*time.Hour, "Discard cached reports older than this")
	return cmd
}

func newEngine(o *options, co *checkOptions) (*internal.Engine, error) {
	engine, err := analyze.New(o.cfgFile, o.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	for _, name := range co.ignoreChecks {
		engine.IgnoreCheck(name)
	}
	for _, pattern := range co.ignorePaths {
		engine.IgnorePath(pattern)
	}
	if co.cacheDir != "" {
		cache, err := internal.NewCache(co.cacheDir, co.cacheMaxAge)
		if err != nil {
			return nil, err
		}
		engine.UseCache(cache)
	}
	return engine, nil
}

func runCheck(cmd *cobra.Command, o *options, co *checkOptions, paths []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()

	engine, err := newEngine(o, co)
	if err != nil {
		return err
	}

	var reports []tt.Report
	if len(paths) == 1 && paths[0] == stdinPath {
		source, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		reports, err = analyze.ProcessSources(ctx, o.logger, engine, [][]byte{source}, analyze.ProcessSource)
		if err != nil {
			return err
		}
	} else {
		reports, err = analyze.ProcessFiles(ctx, o.logger, engine, paths, analyze.ProcessFile)
		if err != nil {
			o.logger.Error("Error processing files", zap.Error(err))
			return err
		}
	}

	if err := printReports(cmd.OutOrStdout(), reports, co.jsonOutput, co.outPath); err != nil {
		return err
	}

	for _, r := range reports {
		if r.Failed() {
			return errFailed
		}
	}
	return nil
}

func printReports(w io.Writer, reports []tt.Report, isJSON bool, jsonOutput string) error {
	if !isJSON {
		fmt.Fprint(w, formatter.FormatReports(reports))
		return nil
	}

	byFile := make(map[string][]tt.Report)
	for _, r := range reports {
		name := r.Filename
		if name == "" {
			name = stdinPath
		}
		byFile[name] = append(byFile[name], r)
	}
	for _, rs := range byFile {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Line < rs[j].Line })
	}

	d, err := json.Marshal(byFile)
	if err != nil {
		return fmt.Errorf("error marshalling reports to JSON: %w", err)
	}
	if jsonOutput == "" {
		fmt.Fprintln(w, string(d))
		return nil
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
