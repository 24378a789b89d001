package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
)

type FileInfo struct {
	Path string
	Size int64
}

// Scanner collects expression files under a root directory.
type Scanner struct {
	rootDir    string
	extensions []string
	ignore     []string
}

func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Ignore skips files and directories whose base name matches one of the
// glob patterns.
func (s *Scanner) Ignore(patterns ...string) *Scanner {
	s.ignore = append(s.ignore, patterns...)
	return s
}

// Scan walks the root directory. Files come back sorted by path.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var (
		files []FileInfo
		mutex sync.Mutex
		wg    sync.WaitGroup
	)

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if s.isIgnored(path) {
			if info.IsDir() && path != s.rootDir {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if s.isTargetFile(path) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fileInfo := FileInfo{
					Path: path,
					Size: info.Size(),
				}
				mutex.Lock()
				files = append(files, fileInfo)
				mutex.Unlock()
			}()
		}
		return nil
	})

	wg.Wait()
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func (s *Scanner) isIgnored(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range s.ignore {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return true
	}

	ext := filepath.Ext(path)
	for _, targetExt := range s.extensions {
		if ext == targetExt {
			return true
		}
	}
	return false
}
