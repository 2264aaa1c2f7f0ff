// Package ui provides the Bubble Tea terminal interface for marquee.
//
// # Architecture Overview
//
// The page is a vertical stack of cards, one per deck widget. Every card owns
// a slider.Widget that renders into the shared state.Store; the Model reads
// the store when drawing and never keeps slide state of its own.
//
//	deck watcher ──store.Update──▶ state.Store ◀──renderer── slider.Widget
//	      │                            │                          ▲
//	      └──Reloads──▶ Model ──View──▶┘       keys/mouse ────────┘
//
// Timer fires and settle timeouts run on scheduler goroutines. A widget that
// changed what it shows calls its notify hook, which sends widgetChangedMsg
// to the program so the frame is redrawn.
//
// # Files
//
//   - app.go: Model, Update/View, key handling and Run
//   - board.go: building and closing the sliders for one deck generation
//   - page.go: page layout, scrolling, viewport sync and mouse handling
//   - card.go: rendering a single card and its controls row
//   - markdown.go: glamour rendering of slide bodies
//   - logs.go: the log tail overlay
//   - keys.go, help.go, theme.go: bindings, help overlay and palettes
//
// # Keyboard
//
// Arrow keys go through the board's slider.KeyRouter, so only cards that
// intersect the visible page react to them. The page geometry is pushed to
// every widget with SetViewport after each resize, scroll or rebuild.
// Focus-based keys (tab, 1-9, n/p, space) act on the focused card only.
//
// # Mouse
//
// A left press on ‹, › or a dot clicks it. Any other press inside a card
// starts a touch that ends on release; the horizontal travel is scaled by
// the configured cell width in pixels before the swipe threshold applies.
// Moving the pointer onto or off a card is hover enter and leave.
//
// # Overlay colors
//
// A card's background is the theme surface blended with the widget's
// overlay_color at overlay_opacity. image_fit decides how slide content is
// fitted to the card height (see fitLines).
package ui
