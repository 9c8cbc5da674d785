package rag

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher auto-ingests PDFs dropped into a directory, so documents can be
// added without going through the upload endpoint.
type Watcher struct {
	index   *Index
	dir     string
	logger  *zap.Logger
	watcher *fsnotify.Watcher
}

func NewWatcher(index *Index, dir string, logger *zap.Logger) *Watcher {
	return &Watcher{index: index, dir: dir, logger: logger}
}

// Start ingests PDFs already present in the directory, then watches for new
// and rewritten files until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.ingestExisting(ctx); err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return err
	}
	w.watcher = fw

	go func() {
		defer fw.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				if !isPDF(event.Name) {
					continue
				}
				w.ingestFile(ctx, event.Name)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("docs watcher error", zap.Error(err))
			}
		}
	}()

	w.logger.Info("watching docs directory", zap.String("dir", w.dir))
	return nil
}

func (w *Watcher) ingestExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !isPDF(e.Name()) {
			continue
		}
		w.ingestFile(ctx, filepath.Join(w.dir, e.Name()))
	}
	return nil
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Warn("failed to read dropped file", zap.String("path", path), zap.Error(err))
		return
	}
	if _, err := w.index.IngestPDF(ctx, filepath.Base(path), data); err != nil {
		w.logger.Warn("failed to ingest dropped file", zap.String("path", path), zap.Error(err))
	}
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
