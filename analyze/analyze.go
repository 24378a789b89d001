package analyze

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/boolex/internal"
	tt "github.com/gnoswap-labs/boolex/internal/types"
	"github.com/gnoswap-labs/boolex/scanner"
)

type AnalysisEngine interface {
	Run(filePath string) ([]tt.Report, error)
	RunSource(source []byte) ([]tt.Report, error)
	IgnoreCheck(name string)
	IgnorePath(pattern string)
	Extensions() []string
	IgnoredPaths() []string
}

// New builds an engine from the configuration file at configurationPath.
// A missing file means the default configuration.
func New(configurationPath string, logger *zap.Logger) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(config, logger), nil
}

// NewWithConfig builds an engine from an already loaded configuration.
func NewWithConfig(config Config, logger *zap.Logger) *internal.Engine {
	engine := internal.NewEngine(logger, config.Extensions...)
	if !config.Verify {
		engine.IgnoreCheck("verify")
	}
	for _, check := range config.Ignore {
		engine.IgnoreCheck(check)
	}
	for _, pattern := range config.Exclude {
		engine.IgnorePath(pattern)
	}
	return engine
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine AnalysisEngine,
	sources [][]byte,
	processor func(AnalysisEngine, []byte) ([]tt.Report, error),
) ([]tt.Report, error) {
	var allReports []tt.Report
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allReports, err
		}
		reports, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allReports = append(allReports, reports...)
	}

	return allReports, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine AnalysisEngine,
	paths []string,
	processor func(AnalysisEngine, string) ([]tt.Report, error),
) ([]tt.Report, error) {
	var allReports []tt.Report
	for _, path := range paths {
		reports, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allReports = append(allReports, reports...)
	}

	return allReports, nil
}

type fileResult struct {
	reports []tt.Report
	err     error
}

// ProcessPath analyzes a single file, or every expression file under a
// directory on a pool of runtime.NumCPU() workers. Files that fail are
// logged and skipped. Reports keep the order of the scanned files. When
// ctx is cancelled, the reports of files already processed are returned
// along with ctx.Err().
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine AnalysisEngine,
	path string,
	processor func(AnalysisEngine, string) ([]tt.Report, error),
) ([]tt.Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		return processor(engine, path)
	}

	files, err := scanner.New(path, engine.Extensions()...).Ignore(engine.IgnoredPaths()...).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// limit the number of workers
	sem := make(chan struct{}, runtime.NumCPU())
	results := make([]fileResult, len(files))
	var wg sync.WaitGroup

	var cancelled error
dispatch:
	for i, file := range files {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			reports, err := processor(engine, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			results[i] = fileResult{reports: reports, err: err}
			_ = bar.Add(1)
		}(i, file.Path)
	}
	wg.Wait()
	_ = bar.Finish()

	reports := make([]tt.Report, 0)
	for _, res := range results {
		if res.err != nil {
			continue
		}
		reports = append(reports, res.reports...)
	}
	return reports, cancelled
}

func ProcessFile(engine AnalysisEngine, filePath string) ([]tt.Report, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine AnalysisEngine, source []byte) ([]tt.Report, error) {
	return engine.RunSource(source)
}
