package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
)

const reloadDebounce = 100 * time.Millisecond

// Watch reloads the file at path whenever it changes and passes every valid
// result to onChange. Invalid edits are logged and skipped so a half saved
// file never replaces a working config. The parent directory is watched
// because editors often save by renaming over the original. Watch blocks
// until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	log := logging.Component("config")

	debounce := time.NewTimer(reloadDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce.Reset(reloadDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", target).Msg("config watch error")

		case <-debounce.C:
			cfg, err := Load(target)
			if err != nil {
				log.Warn().Err(err).Str("path", target).Msg("config reload skipped")
				continue
			}
			log.Info().Str("path", target).Msg("config reloaded")
			onChange(cfg)
		}
	}
}
