package ui

import (
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/deck"
	"github.com/five82/marquee/internal/slider"
	"github.com/five82/marquee/internal/state"
)

// widgetChangedMsg asks the model to redraw after a widget rendered from a
// timer goroutine or a click.
type widgetChangedMsg struct{}

// sender forwards messages to the running program. It is a no-op until
// attached, so widgets may start before the program exists.
//
// Widgets notify from inside Update as well as from timer goroutines, and
// Program.Send blocks until the event loop reads the message, so delivery
// happens on its own goroutine.
type sender struct {
	send atomic.Pointer[func(tea.Msg)]
}

func (s *sender) attach(fn func(tea.Msg)) {
	s.send.Store(&fn)
}

func (s *sender) Send(msg tea.Msg) {
	if fn := s.send.Load(); fn != nil {
		go (*fn)(msg)
	}
}

// card is one deck widget on the page together with its slider.
type card struct {
	id       string
	def      deck.Widget
	settings deck.Settings
	widget   *slider.Widget
}

// board holds the cards built from one deck generation.
type board struct {
	generation uint64
	router     *slider.KeyRouter
	cards      []*card
}

type boardDeps struct {
	store  *state.Store
	clock  slider.Clock
	log    zerolog.Logger
	sender *sender
}

// newBoard builds and starts one slider per deck widget. Widget ids are
// unique on the board; missing or repeated ids get a generated one.
func newBoard(d deck.Deck, generation uint64, deps boardDeps) *board {
	b := &board{generation: generation, router: slider.NewKeyRouter()}
	seen := make(map[string]bool, len(d.Widgets))
	for _, w := range d.Widgets {
		cfg := w.SliderConfig()
		if cfg.ID == "" || seen[cfg.ID] {
			if cfg.ID != "" {
				deps.log.Warn().Str("widget", cfg.ID).Msg("duplicate widget id; generating a new one")
			}
			cfg.ID = uuid.NewString()
		}
		seen[cfg.ID] = true

		renderer := deps.store.Renderer(cfg.ID, cfg.Slides, cfg.Indicators)
		opts := []slider.Option{
			slider.WithLogger(deps.log.With().Str("widget", cfg.ID).Logger()),
			slider.WithKeyRouter(b.router),
			slider.WithNotify(func() { deps.sender.Send(widgetChangedMsg{}) }),
		}
		if deps.clock != nil {
			opts = append(opts, slider.WithClock(deps.clock))
		}
		c := &card{
			id:       cfg.ID,
			def:      w,
			settings: w.Settings(),
			widget:   slider.New(cfg, renderer, opts...),
		}
		b.cards = append(b.cards, c)
	}
	for _, c := range b.cards {
		c.widget.Start()
	}
	return b
}

// close stops every slider on the board.
func (b *board) close() {
	if b == nil {
		return
	}
	for _, c := range b.cards {
		c.widget.Close()
	}
}

func (b *board) card(i int) (*card, bool) {
	if b == nil || i < 0 || i >= len(b.cards) {
		return nil, false
	}
	return b.cards[i], true
}

// togglePause pauses or resumes autoplay the way hovering does, so a later
// hover or touch may resume it again.
func (c *card) togglePause() {
	if c.widget.Autoplaying() {
		c.widget.HoverEnter()
		return
	}
	c.widget.HoverLeave()
}

func (c *card) title() string {
	if c.def.Title != "" {
		return c.def.Title
	}
	return fmt.Sprintf("Widget %s", shortID(c.id))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
