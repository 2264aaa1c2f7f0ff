package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/goleak"

	"github.com/five82/marquee/internal/deck"
	"github.com/five82/marquee/internal/state"
)

const deckV1 = `
title = "v1"

[[widgets]]
id = "hero"

[[widgets.slides]]
title = "one"
`

const deckV2 = `
title = "v2"

[[widgets]]
id = "hero"

[[widgets.slides]]
title = "one"

[[widgets.slides]]
title = "two"
`

func writeDeck(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestWatcherLoad_RecordsDeckAndSignals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.toml")
	writeDeck(t, path, deckV1)

	var store state.Store
	notify := make(chan struct{}, 1)
	w := NewWatcher(path, &store, notify, 0, zerolog.Nop())

	if err := w.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	snap := store.Snapshot()
	if !snap.HasDeck || snap.Deck.Title != "v1" {
		t.Fatalf("snapshot deck = %q HasDeck=%v, want v1", snap.Deck.Title, snap.HasDeck)
	}
	select {
	case <-notify:
	default:
		t.Fatalf("Load did not signal")
	}
}

func TestWatcherLoad_FailureKeepsPreviousDeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.toml")
	writeDeck(t, path, deckV1)

	var store state.Store
	w := NewWatcher(path, &store, nil, 0, zerolog.Nop())
	if err := w.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	writeDeck(t, path, "title = \"v2\"\n")
	err := w.Load()
	if !errors.Is(err, deck.ErrNoWidgets) {
		t.Fatalf("Load error = %v, want ErrNoWidgets", err)
	}
	snap := store.Snapshot()
	if snap.Deck.Title != "v1" || !snap.IsStale() {
		t.Fatalf("snapshot = %q stale=%v, want v1 kept and stale", snap.Deck.Title, snap.IsStale())
	}
}

func TestWatcherLoad_MissingFile(t *testing.T) {
	var store state.Store
	w := NewWatcher(filepath.Join(t.TempDir(), "absent.toml"), &store, nil, 0, zerolog.Nop())
	if err := w.Load(); err == nil {
		t.Fatalf("Load returned nil error for missing deck")
	}
	if store.Snapshot().HasDeck {
		t.Fatalf("HasDeck = true after failed first load")
	}
}

func TestWatcherSignalDoesNotBlock(t *testing.T) {
	notify := make(chan struct{}, 1)
	w := NewWatcher("unused", &state.Store{}, notify, 0, zerolog.Nop())
	w.signal()
	w.signal()
	if len(notify) != 1 {
		t.Fatalf("len(notify) = %d, want 1", len(notify))
	}
}

func TestWatcherRun_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "deck.toml")
	writeDeck(t, path, deckV1)

	var store state.Store
	notify := make(chan struct{}, 1)
	w := NewWatcher(path, &store, notify, 10*time.Millisecond, zerolog.Nop())
	if err := w.Load(); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	<-notify

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Unrelated files in the same directory are ignored.
	writeDeck(t, filepath.Join(dir, "other.toml"), deckV2)

	deadline := time.After(5 * time.Second)
	for store.Snapshot().Deck.Title != "v2" {
		// Rewrite until the watcher is registered and picks it up.
		writeDeck(t, path, deckV2)
		select {
		case <-notify:
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			cancel()
			t.Fatalf("deck was not reloaded")
		}
	}
	if got := len(store.Snapshot().Deck.Widgets[0].Slides); got != 2 {
		t.Fatalf("reloaded slides = %d, want 2", got)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestWatcherRun_MissingDirFails(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "nope", "deck.toml"), &state.Store{}, nil, 0, zerolog.Nop())
	if err := w.Run(context.Background()); err == nil {
		t.Fatalf("Run returned nil error for missing directory")
	}
}
