package internal

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/boolex/internal/expr"
	tt "github.com/gnoswap-labs/boolex/internal/types"
)

// DefaultExtensions are the suffixes of expression files.
var DefaultExtensions = []string{".bool", ".bexpr"}

// Engine manages the analysis process.
type Engine struct {
	logger       *zap.Logger
	checks       []Check
	ignoredCheck map[string]bool
	ignoredPaths []string
	extensions   []string
	cache        *Cache

	mu         sync.Mutex
	watcher    *fsnotify.Watcher
	isWatching bool
	done       chan struct{}
}

// checks run in this order; verify needs the minimized form.
var allCheckConstructors = []func() Check{
	func() Check { return &CountCheck{} },
	func() Check { return &MinimizeCheck{} },
	func() Check { return &VerifyCheck{} },
}

// NewEngine creates an engine with every check enabled. A nil logger
// discards logs; no extensions means DefaultExtensions.
func NewEngine(logger *zap.Logger, extensions ...string) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	e := &Engine{
		logger:       logger,
		ignoredCheck: make(map[string]bool),
		extensions:   extensions,
	}
	for _, newCheck := range allCheckConstructors {
		e.checks = append(e.checks, newCheck())
	}
	return e
}

// IgnoreCheck disables the named check.
func (e *Engine) IgnoreCheck(name string) {
	e.ignoredCheck[name] = true
}

// IgnorePath skips files and directories whose base name matches the glob
// pattern when a directory is processed.
func (e *Engine) IgnorePath(pattern string) {
	e.ignoredPaths = append(e.ignoredPaths, pattern)
}

// IgnoredPaths returns the patterns given to IgnorePath.
func (e *Engine) IgnoredPaths() []string {
	return e.ignoredPaths
}

// UseCache makes Run reuse the reports of files that have not changed.
func (e *Engine) UseCache(c *Cache) {
	e.cache = c
}

// signature names the enabled checks, so cached reports produced by a
// different set are not reused.
func (e *Engine) signature() string {
	var names []string
	for _, c := range e.checks {
		if !e.ignoredCheck[c.Name()] {
			names = append(names, c.Name())
		}
	}
	return strings.Join(names, ",")
}

// Extensions returns the file suffixes the engine analyzes.
func (e *Engine) Extensions() []string {
	return e.extensions
}

// HasExtension reports whether path is an expression file.
func (e *Engine) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range e.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Analyze validates expression and applies every enabled check to it.
// A failing check is recorded in the report and stops the remaining ones.
func (e *Engine) Analyze(expression string) tt.Report {
	s := expr.Strip(expression)
	r := tt.Report{Expression: s}

	if err := expr.Validate(s, false); err != nil {
		if reason, ok := expr.ReasonOf(err); ok {
			r.Reason = reason.String()
		}
		r.Message = err.Error()
		return r
	}
	r.Valid = true
	r.Inputs = expr.Inputs(s)

	for _, c := range e.checks {
		if e.ignoredCheck[c.Name()] {
			continue
		}
		if err := c.Apply(&r); err != nil {
			e.logger.Warn("check failed",
				zap.String("check", c.Name()),
				zap.String("expression", s),
				zap.Error(err))
			r.Message = fmt.Sprintf("%s: %v", c.Name(), err)
			break
		}
	}
	return r
}

// Run analyzes every expression in the given file.
func (e *Engine) Run(filename string) ([]tt.Report, error) {
	if e.cache != nil {
		if reports, ok := e.cache.Get(filename, e.signature()); ok {
			e.logger.Debug("cache hit", zap.String("file", filename))
			return reports, nil
		}
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	reports, err := e.analyzeLines(content)
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", filename, err)
	}
	for i := range reports {
		reports[i].Filename = filename
	}
	e.logger.Debug("analyzed file", zap.String("file", filename), zap.Int("expressions", len(reports)))

	if e.cache != nil {
		if err := e.cache.Set(filename, e.signature(), reports); err != nil {
			e.logger.Warn("failed to cache reports", zap.String("file", filename), zap.Error(err))
		}
	}
	return reports, nil
}

// RunSource analyzes every expression in source.
func (e *Engine) RunSource(source []byte) ([]tt.Report, error) {
	return e.analyzeLines(source)
}

func (e *Engine) analyzeLines(content []byte) ([]tt.Report, error) {
	var reports []tt.Report
	sc := bufio.NewScanner(bytes.NewReader(content))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		r := e.Analyze(text)
		r.Line = line
		reports = append(reports, r)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
