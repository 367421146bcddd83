package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it changes and publishes each valid result.
// The parent directory is watched so editors that replace the file on save
// are still seen. Invalid files are reported on the error channel and the
// previous config stays in effect. Flags set in f are re-applied to every
// reload. Both channels close when ctx ends.
func Watch(ctx context.Context, path string, f *Flags) (<-chan *Config, <-chan error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	// Buffer of one: a slow consumer only ever sees the latest reload.
	updates := make(chan *Config, 1)
	errs := make(chan error, 1)

	go func() {
		defer watcher.Close()
		defer close(updates)
		defer close(errs)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
					continue
				}
				cfg, err := Reload(abs, f)
				if err != nil {
					publish(errs, err)
					continue
				}
				publish(updates, cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				publish(errs, err)
			}
		}
	}()

	return updates, errs, nil
}

// publish replaces any unread value so the channel never blocks the watcher.
func publish[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
