// Package sources loads documents from the filesystem for tiling.
package sources

import (
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/h2non/filetype"

	"github.com/tilescan/tilescan"
	"github.com/tilescan/tilescan/logging"
)

// Files yields the documents under a path. A single file yields exactly that
// document; a directory yields every regular file beneath it. Binary files
// (anything with a recognizable non-text signature) and files over
// MaxFileSize are skipped.
type Files struct {
	Path string

	// MaxFileSize in bytes. Zero means no limit.
	MaxFileSize int64
}

// Documents walks Path and loads every eligible file. The walk runs in
// parallel; results are sorted by path so output is deterministic regardless
// of traversal order.
func (s *Files) Documents() ([]tilescan.Document, error) {
	var (
		mu   sync.Mutex
		docs []tilescan.Document
	)

	conf := &fastwalk.Config{Follow: false}
	err := fastwalk.Walk(conf, s.Path, func(path string, d fs.DirEntry, err error) error {
		logger := logging.With().Str("path", path).Logger()

		if err != nil {
			if os.IsPermission(err) {
				logger.Warn().Msg("skipping: permission denied")
				return fastwalk.SkipDir
			}
			logger.Warn().Err(err).Msg("skipping")
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if s.MaxFileSize > 0 {
			if info, err := d.Info(); err == nil && info.Size() > s.MaxFileSize {
				logger.Debug().Int64("size", info.Size()).Msg("skipping file: exceeds max size")
				return nil
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Msg("skipping file: unreadable")
			return nil
		}
		if kind, _ := filetype.Match(data); kind != filetype.Unknown {
			logger.Debug().Str("type", kind.MIME.Value).Msg("skipping file: binary")
			return nil
		}

		mu.Lock()
		docs = append(docs, tilescan.Document{Path: path, Data: data})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", s.Path, err)
	}

	slices.SortFunc(docs, func(a, b tilescan.Document) int {
		return strings.Compare(a.Path, b.Path)
	})
	return docs, nil
}

// Load reads one document from disk with no filtering.
func Load(path string) (tilescan.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tilescan.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return tilescan.Document{Path: path, Data: data}, nil
}
