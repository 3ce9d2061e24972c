package appearance

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/utils"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// Watch calls onChange whenever a .scheme file in the schemes folder is
// created, written, renamed or removed. onChange runs on a background
// goroutine; callers that own the Settings should hop back to their own
// goroutine before calling RefreshPresetSchemeList. Watching stops when
// ctx is done.
func (s *Settings) Watch(ctx context.Context, onChange func()) error {
	dir, err := s.SchemesFolder()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create schemes dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch '%s': %w", dir, err)
	}
	logger.Debugf("Appearance: watching %s", dir)

	go func() {
		var debouncer utils.Debouncer
		defer func() {
			debouncer.Stop()
			watcher.Close()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !strings.HasSuffix(strings.ToLower(ev.Name), SchemeFileSuffix) {
					continue
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				logger.DebugTagf("appearance", "Scheme folder event: %s", ev)
				debouncer.Debounce(watchDebounce, onChange)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("Appearance: watcher error: %v", err)
			}
		}
	}()
	return nil
}
