package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the burst of write events editors emit for a
// single save.
const debounce = 200 * time.Millisecond

// Watch follows a config file and sends a fresh Config on the returned
// channel every time the file changes and still validates. Invalid
// intermediate states are logged and skipped, so a half-written save
// never reaches the application.
//
// The channel is closed when the context is cancelled. The watcher
// observes the parent directory rather than the file itself, which
// survives the rename-and-replace dance most editors do.
func Watch(ctx context.Context, path string) (<-chan Config, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	ch := make(chan Config, 1)
	go func() {
		defer close(ch)
		defer watcher.Close()

		baseName := filepath.Base(path)
		var timer *time.Timer
		var pending <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != baseName {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				pending = timer.C

			case <-pending:
				pending = nil
				cfg, err := Load(path)
				if err != nil {
					slog.Warn("config reload skipped",
						slog.String("path", path),
						slog.Any("error", err))
					continue
				}
				slog.Info("config reloaded", slog.String("path", path))
				select {
				case ch <- cfg:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Usually recoverable; keep watching.
				slog.Debug("config watcher error", slog.Any("error", err))
			}
		}
	}()

	return ch, nil
}
