package layout

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/pastel-room/internal/logger"
)

// Update is delivered by Watch after the layout file changes.
type Update struct {
	Placements []Placement
	Err        error
}

// Watch reloads path whenever it changes and sends the result on the
// returned channel. The parent directory is watched so editors that
// replace the file by rename are picked up. Bursts of events within
// settle are coalesced into one reload. The channel closes when ctx ends.
func Watch(ctx context.Context, path string, settle time.Duration, log *zap.Logger) (<-chan Update, error) {
	log = logger.OrNop(log)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	updates := make(chan Update, 1)
	go func() {
		defer close(updates)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(settle)
				} else {
					timer.Reset(settle)
				}
				fire = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("layout watcher error", zap.Error(err))
			case <-fire:
				fire = nil
				placements, err := Load(abs)
				if err != nil {
					log.Warn("layout reload failed", zap.String("path", abs), zap.Error(err))
				} else {
					log.Info("layout reloaded", zap.String("path", abs), zap.Int("placements", len(placements)))
				}
				select {
				case updates <- Update{Placements: placements, Err: err}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return updates, nil
}
