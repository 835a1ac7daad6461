package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/urmzd/sdfwot/pkg/document"
)

// DefaultDebounce is how long a file must stay unchanged before the
// watcher converts it.
const DefaultDebounce = 500 * time.Millisecond

// WatchConfig configures a Watcher.
type WatchConfig struct {
	// Dir is watched recursively. Hidden directories are skipped.
	Dir string
	// OutDir receives converted files. Empty means next to each input.
	OutDir string
	// Sources lists the kinds that trigger a conversion. Empty means SDF only.
	Sources []document.Kind
	// Target is passed to ConvertFile. Empty selects the default target.
	Target   document.Kind
	Debounce time.Duration
	// OnConvert, when set, is called for every conversion attempt.
	OnConvert func(FileResult)
}

// Watcher converts documents whenever they change on disk.
type Watcher struct {
	svc     *Service
	config  WatchConfig
	sources map[document.Kind]bool
	fsw     *fsnotify.Watcher

	// last change seen per path, waiting for the file to go quiet
	pending map[string]time.Time

	// content hashes of inputs already converted and outputs we wrote
	hashes map[string]string
}

// NewWatcher creates a watcher for config.Dir.
func (s *Service) NewWatcher(config WatchConfig) (*Watcher, error) {
	if config.Dir == "" {
		return nil, errors.New("watch directory is required")
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	sources := make(map[document.Kind]bool)
	for _, k := range config.Sources {
		sources[k] = true
	}
	if len(sources) == 0 {
		sources[document.KindSDF] = true
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		svc:     s,
		config:  config,
		sources: sources,
		fsw:     fsw,
		pending: make(map[string]time.Time),
		hashes:  make(map[string]string),
	}, nil
}

// Run watches until ctx is cancelled or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fsw.Close() }()

	if err := w.addRecursive(w.config.Dir); err != nil {
		return err
	}

	log.Info().
		Str("dir", w.config.Dir).
		Dur("debounce", w.config.Debounce).
		Msg("Watching for document changes")

	timer := time.NewTimer(w.config.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handle(event, time.Now()) {
				timer.Reset(w.config.Debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("Watcher error")

		case <-timer.C:
			if wait := w.flush(ctx, time.Now()); wait > 0 {
				timer.Reset(wait)
			}
		}
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if hidden(path) && path != root {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to watch directory")
		}
		return nil
	})
}

func hidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}

// handle records a change to a source document and reports whether one
// was queued.
func (w *Watcher) handle(event fsnotify.Event, now time.Time) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !hidden(event.Name) {
				if err := w.addRecursive(event.Name); err != nil {
					log.Warn().Err(err).Str("path", event.Name).Msg("Failed to watch new directory")
				}
			}
			return false
		}
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	kind, err := document.KindFromPath(event.Name)
	if err != nil || !w.sources[kind] {
		return false
	}

	w.pending[event.Name] = now

	log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Document change detected")
	return true
}

// flush converts every pending file that has been quiet for the debounce
// period. It returns how long until the next pending file is due, or zero
// when nothing is left.
func (w *Watcher) flush(ctx context.Context, now time.Time) time.Duration {
	var ready []string
	var wait time.Duration
	for path, seen := range w.pending {
		left := w.config.Debounce - now.Sub(seen)
		if left <= 0 {
			ready = append(ready, path)
			continue
		}
		if wait == 0 || left < wait {
			wait = left
		}
	}
	slices.Sort(ready)

	for _, path := range ready {
		if ctx.Err() != nil {
			return 0
		}
		delete(w.pending, path)
		w.convert(ctx, path)
	}
	return wait
}

func (w *Watcher) convert(ctx context.Context, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		// removed before the debounce fired
		return
	}
	hash := contentHash(content)
	if w.hashes[path] == hash {
		return
	}
	w.hashes[path] = hash

	res, err := w.svc.ConvertFile(ctx, path, w.config.OutDir, w.config.Target)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Conversion failed")
		w.notify(FileResult{Input: path, Err: err})
		return
	}
	w.hashes[res.Output] = contentHash(res.Result.Output)
	w.notify(*res)
}

func (w *Watcher) notify(r FileResult) {
	if w.config.OnConvert != nil {
		w.config.OnConvert(r)
	}
}

func contentHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
