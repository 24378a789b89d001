package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnoswap-labs/boolex/internal/types"
)

// settle is how long a changed file is left alone before it is re-read, so
// a burst of writes is analyzed once.
const settle = 100 * time.Millisecond

// ReportFunc receives the reports of a re-analyzed file.
type ReportFunc func(filename string, reports []tt.Report)

// StartWatching re-runs expression files under dirs whenever they are
// written and hands the reports to onReport.
func (e *Engine) StartWatching(dirs []string, onReport ReportFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.isWatching = true
	e.done = make(chan struct{})
	go e.watchLoop(watcher, e.done, onReport)
	return nil
}

// StopWatching closes the watcher and waits for the loop to exit.
func (e *Engine) StopWatching() error {
	e.mu.Lock()
	if !e.isWatching {
		e.mu.Unlock()
		e.logger.Debug("not watching")
		return nil
	}
	e.isWatching = false
	watcher, done := e.watcher, e.done
	e.mu.Unlock()

	err := watcher.Close()
	<-done
	return err
}

func (e *Engine) watchLoop(watcher *fsnotify.Watcher, done chan struct{}, onReport ReportFunc) {
	defer close(done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event, onReport)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event, onReport ReportFunc) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !e.HasExtension(event.Name) {
		return
	}
	time.Sleep(settle)

	reports, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("error analyzing changed file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	e.logger.Info("re-analyzed", zap.String("file", event.Name), zap.Int("expressions", len(reports)))
	if onReport != nil {
		onReport(event.Name, reports)
	}
}
