// Package state provides thread-safe state shared between marquee's
// background producers and the UI.
//
// # Overview
//
// Two kinds of producers write into a Store:
//
//   - the deck watcher records every load attempt with Update
//   - each slider widget renders through a slider.Renderer obtained from
//     Store.Renderer, so role and indicator changes land in the store
//
// The UI is the only consumer. It calls Snapshot (or View for a single
// widget) while drawing a frame:
//
//	Producers:                       Consumer (UI):
//	┌──────────────────┐            ┌──────────────────┐
//	│ watcher.Update() │───────────→│ store.Snapshot() │
//	│ widget renderer  │  (mutex)   │      ↓           │
//	│ timer goroutines │───────────→│  render frame    │
//	└──────────────────┘            └──────────────────┘
//
// # Deck loads
//
// A successful load replaces the deck, bumps Generation and drops every
// widget view; the UI notices the new generation and rebuilds its widgets.
// A failed load keeps the previous deck and records LastError, so a typo in
// the deck file never blanks the screen.
//
// # Views
//
// A View mirrors what the renderer was told: one slider.Role per slide and
// one flag per indicator. Out-of-range slide or indicator positions are
// ignored.
//
// # Copies
//
// Snapshot and View return deep copies. Callers may modify them freely.
package state
