package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/slidecast/internal/logger"
)

// settleDelay gives the writer time to finish copying a deck before the
// pipeline opens it.
const settleDelay = 2 * time.Second

var deckExtensions = []string{".pptx", ".ppt", ".odp"}

type implWatcher struct {
	inputDir  string
	handler   DeckHandler
	logger    logger.Logger
	watcher   *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// Start blocks, converting each new deck dropped into the input directory
// until ctx is cancelled. In-flight conversions are waited for on shutdown.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for decks (%s)", w.inputDir, strings.Join(deckExtensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight conversions...")
			w.wg.Wait()
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !isDeckFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-deck file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New deck detected: %s", event.Name)
			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go w.convert(ctx, event.Name)
			case <-ctx.Done():
				// drain on the next loop iteration
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) convert(ctx context.Context, deckPath string) {
	defer w.wg.Done()
	defer func() { <-w.semaphore }()

	select {
	case <-time.After(settleDelay):
	case <-ctx.Done():
		return
	}

	if err := w.handler(ctx, deckPath); err != nil {
		w.logger.Error(ctx, "Failed to convert %s: %v", deckPath, err)
	}
}

// Stop closes the underlying filesystem watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isDeckFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, deckExt := range deckExtensions {
		if ext == deckExt {
			return true
		}
	}
	return false
}
