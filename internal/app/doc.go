// Package app provides the orchestration layer for marquee.
//
// # Overview
//
// Run is the composition root. It wires configuration, logging, the shared
// state.Store, the deck watcher and the UI, then blocks until the user quits.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        ~/.config/marquee/config.toml + flag overrides
//	       ├─────> logging.Configure()  zerolog to the log file
//	       ├─────> prefs.Load()         theme
//	       ├─────> Watcher.Load()       first deck load, fatal on error
//	       └─────> errgroup
//	                 ├── Watcher.Run()  fsnotify reloads (with --watch)
//	                 └── ui.Run()       Bubble Tea program (blocks)
//
// # Deck reloads
//
// The watcher observes the deck's directory and reacts to writes, creates
// and renames of the deck file. Events that arrive while a reload is pending
// are folded into it, and a rate limiter spaces reloads at least 250ms apart
// so an editor's save burst costs one parse. Every attempt is recorded in
// the store and signalled on a one-slot channel the UI waits on; a failed
// reload keeps the previous deck on screen.
//
// # Shutdown
//
// Quitting the UI cancels the shared context, which stops the watcher. A
// watcher failure cancels the context too, which ends the UI, and its error
// is returned from Run.
package app
