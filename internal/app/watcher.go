package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/five82/marquee/internal/deck"
	"github.com/five82/marquee/internal/state"
)

const defaultReloadInterval = 250 * time.Millisecond

// Watcher loads the deck into the store and reloads it when the file changes.
type Watcher struct {
	path    string
	store   *state.Store
	notify  chan<- struct{}
	log     zerolog.Logger
	limiter *rate.Limiter
}

// NewWatcher returns a watcher for the deck at path. After every load attempt
// it signals notify without blocking; a nil notify is allowed. Reloads are
// throttled to one per interval, zero uses the default.
func NewWatcher(path string, store *state.Store, notify chan<- struct{}, interval time.Duration, log zerolog.Logger) *Watcher {
	if interval <= 0 {
		interval = defaultReloadInterval
	}
	return &Watcher{
		path:    path,
		store:   store,
		notify:  notify,
		log:     log,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Load reads the deck once and records the outcome in the store. A failed
// load keeps the previously loaded deck.
func (w *Watcher) Load() error {
	d, err := deck.Load(w.path)
	if err != nil {
		w.store.Update(nil, err)
		w.signal()
		return err
	}
	w.store.Update(&d, nil)
	w.log.Info().
		Str("deck", w.path).
		Int("widgets", len(d.Widgets)).
		Int("slides", d.SlideCount()).
		Msg("deck loaded")
	w.signal()
	return nil
}

// Run watches the deck's directory until ctx is cancelled. Directories are
// watched rather than the file itself so editors that replace the file by
// renaming are picked up too. Bursts of events collapse into a single reload.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create deck watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch deck dir: %w", err)
	}
	w.log.Debug().Str("deck", w.path).Msg("watching deck")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) || pending != nil {
				continue
			}
			pending = time.After(w.limiter.Reserve().Delay())

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("deck watcher error")

		case <-pending:
			pending = nil
			if err := w.Load(); err != nil {
				w.log.Warn().Err(err).Str("deck", w.path).Msg("deck reload failed; keeping previous deck")
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) signal() {
	if w.notify == nil {
		return
	}
	select {
	case w.notify <- struct{}{}:
	default:
	}
}
