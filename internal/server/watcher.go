package server

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/blake3"
)

// reloadHub watches the served directory and broadcasts reload events to
// connected live-reload clients.
type reloadHub struct {
	watcher  *fsnotify.Watcher
	reloadCh chan struct{}
	debounce time.Duration

	clientMu sync.Mutex
	clients  map[chan struct{}]struct{}

	// digests holds the last seen content hash per path, touched only by
	// the watcher goroutine.
	digests map[string][32]byte

	wg sync.WaitGroup
}

func newReloadHub(debounce time.Duration) *reloadHub {
	return &reloadHub{
		reloadCh: make(chan struct{}),
		debounce: debounce,
		clients:  make(map[chan struct{}]struct{}),
		digests:  make(map[string][32]byte),
	}
}

// start begins watching dir recursively. Hidden directories like .git are
// skipped.
func (h *reloadHub) start(dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	h.watcher = w

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if name := filepath.Base(path); name[0] == '.' && path != dir && name != "." {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		if cerr := w.Close(); cerr != nil {
			slog.Warn("Failed to close file watcher", "error", cerr)
		}
		return err
	}

	h.wg.Add(1)
	go h.run()
	go h.broadcast()

	return nil
}

func (h *reloadHub) run() {
	defer h.wg.Done()
	defer func() {
		if err := h.watcher.Close(); err != nil {
			slog.Warn("Failed to close file watcher", "error", err)
		}
	}()

	var debounceTimer *time.Timer
	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Chmod != 0 {
				continue
			}

			// Watch directories as they appear
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := h.watcher.Add(event.Name); err != nil {
						log.Printf("Failed to watch directory %s: %v", event.Name, err)
					}
				}
			}

			// Skip events that don't change file contents (editor saves
			// that rewrite identical bytes, metadata touches)
			if !h.changed(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Reset(h.debounce)
			} else {
				debounceTimer = time.AfterFunc(h.debounce, func() {
					select {
					case h.reloadCh <- struct{}{}:
					default:
					}
				})
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watcher error: %v", err)
		}
	}
}

// changed reports whether the file's content digest differs from the last
// seen one. Paths that can't be read (removals, directories) always count
// as changed.
func (h *reloadHub) changed(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		delete(h.digests, path)
		return true
	}

	sum := blake3.Sum256(data)
	if prev, ok := h.digests[path]; ok && prev == sum {
		return false
	}
	h.digests[path] = sum
	return true
}

func (h *reloadHub) broadcast() {
	for range h.reloadCh {
		h.clientMu.Lock()
		for clientChan := range h.clients {
			select {
			case clientChan <- struct{}{}:
			default:
			}
		}
		h.clientMu.Unlock()
	}
}

func (h *reloadHub) stop() {
	if h.watcher != nil {
		if err := h.watcher.Close(); err != nil {
			slog.Warn("Failed to close file watcher", "error", err)
		}
	}
	h.wg.Wait()
}
