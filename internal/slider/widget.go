package slider

import (
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultSwipeThreshold is the horizontal travel, in pixels, a touch must
// exceed to count as a swipe.
const DefaultSwipeThreshold = 50.0

// Config describes one widget instance.
type Config struct {
	ID             string // generated when empty
	Slides         int
	Indicators     int // zero disables indicator sync
	Transition     Transition
	Autoplay       AutoplayConfig
	SwipeThreshold float64 // zero uses DefaultSwipeThreshold
}

// Option customizes a Widget.
type Option func(*Widget)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(w *Widget) {
		if c != nil {
			w.clock = c
		}
	}
}

// WithLogger sets the logger used for lifecycle and transition events.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Widget) { w.log = l }
}

// WithKeyRouter subscribes the widget to arrow keys while it is visible.
func WithKeyRouter(r *KeyRouter) Option {
	return func(w *Widget) { w.router = r }
}

// WithNotify registers a callback invoked after the widget changed what the
// renderer shows. It runs outside the widget lock and may be called from
// timer goroutines.
func WithNotify(fn func()) Option {
	return func(w *Widget) { w.notify = fn }
}

// Widget is one independent slider: a fixed slide set, its transition engine,
// an autoplay scheduler and touch/visibility state. Every entry point takes
// the widget lock for the whole stop, transition, render, restart sequence,
// so events are applied one at a time.
type Widget struct {
	id        string
	threshold float64
	clock     Clock
	log       zerolog.Logger
	router    *KeyRouter
	notify    func()

	mu          sync.Mutex
	engine      *Engine
	sched       *Scheduler
	index       int
	touching    bool
	touchStartX float64
	visible     bool
	started     bool
	closed      bool
}

// New builds a widget that renders through r. It does nothing until Start.
func New(cfg Config, r Renderer, opts ...Option) *Widget {
	w := &Widget{
		id:        cfg.ID,
		threshold: cfg.SwipeThreshold,
		clock:     SystemClock(),
		log:       zerolog.Nop(),
		visible:   true,
	}
	if w.id == "" {
		w.id = uuid.NewString()
	}
	if w.threshold <= 0 {
		w.threshold = DefaultSwipeThreshold
	}
	for _, opt := range opts {
		opt(w)
	}
	w.engine = NewEngine(cfg.Slides, cfg.Indicators, cfg.Transition, r)
	w.sched = NewScheduler(cfg.Autoplay, w.clock, w.onTick)
	return w
}

// ID returns the widget identifier.
func (w *Widget) ID() string { return w.id }

// Len returns the number of slides.
func (w *Widget) Len() int { return w.engine.Len() }

// Index returns the active slide.
func (w *Widget) Index() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.index
}

// Autoplaying reports whether the autoplay timer is armed.
func (w *Widget) Autoplaying() bool {
	return w.sched.Running()
}

// Visible reports whether the widget last intersected the viewport.
func (w *Widget) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Start renders the initial layout and starts autoplay. A widget without
// slides stays inert.
func (w *Widget) Start() {
	w.run(func() bool {
		if w.started || w.closed {
			return false
		}
		w.started = true
		if w.engine.Len() == 0 {
			w.log.Info().Str("widget", w.id).Msg("widget has no slides; staying static")
			return false
		}
		w.engine.Layout(w.index)
		w.resumeLocked("start")
		if w.visible && w.router != nil {
			w.router.subscribe(w)
		}
		w.log.Info().
			Str("widget", w.id).
			Int("slides", w.engine.Len()).
			Stringer("transition", w.engine.Transition()).
			Bool("autoplay", w.sched.Config().Enabled).
			Dur("delay", w.sched.Config().Delay).
			Msg("widget started")
		return true
	})
}

// Close stops autoplay and detaches the widget from keyboard input. Later
// events are ignored.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	w.pauseLocked("close")
	if w.router != nil {
		w.router.unsubscribe(w)
	}
}

// ClickNext handles the next button.
func (w *Widget) ClickNext() Result {
	return w.manual(NextRequest(), "next")
}

// ClickPrev handles the prev button.
func (w *Widget) ClickPrev() Result {
	return w.manual(PrevRequest(), "prev")
}

// ClickIndicator jumps to the slide mirrored by indicator i. Out-of-range
// indicators wrap.
func (w *Widget) ClickIndicator(i int) Result {
	return w.manual(GotoRequest(i), "indicator")
}

// HandleKey applies an arrow key while the widget is visible. Other keys, and
// any key while off-screen, are ignored and do not touch the timer.
func (w *Widget) HandleKey(k Key) Result {
	var req Request
	switch k {
	case KeyArrowLeft:
		req = PrevRequest()
	case KeyArrowRight:
		req = NextRequest()
	default:
		return Result{}
	}
	var res Result
	w.run(func() bool {
		if !w.active() || !w.visible {
			return false
		}
		res = w.interactLocked(req, "key")
		return res.Changed
	})
	return res
}

// TouchStart records where a touch began and pauses autoplay.
func (w *Widget) TouchStart(x float64) {
	w.run(func() bool {
		if !w.active() {
			return false
		}
		w.touching = true
		w.touchStartX = x
		w.pauseLocked("touch")
		return false
	})
}

// TouchEnd finishes a touch. Travel beyond the swipe threshold moves one
// slide: leftward travel is Next, rightward is Prev. Autoplay restarts either
// way. Without a preceding TouchStart nothing moves.
func (w *Widget) TouchEnd(x float64) Result {
	var res Result
	w.run(func() bool {
		if !w.active() {
			return false
		}
		wasTouching := w.touching
		diff := w.touchStartX - x
		w.touching = false
		w.sched.Stop()
		if wasTouching && math.Abs(diff) > w.threshold {
			req := NextRequest()
			if diff < 0 {
				req = PrevRequest()
			}
			res = w.transitionLocked(req, "swipe")
		}
		w.resumeLocked("touch")
		return res.Changed
	})
	return res
}

// Touching reports whether a touch is in progress.
func (w *Widget) Touching() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.touching
}

// HoverEnter pauses autoplay.
func (w *Widget) HoverEnter() {
	w.run(func() bool {
		if w.active() {
			w.pauseLocked("hover")
		}
		return false
	})
}

// HoverLeave resumes autoplay.
func (w *Widget) HoverLeave() {
	w.run(func() bool {
		if w.active() {
			w.resumeLocked("hover")
		}
		return false
	})
}

// SetViewport updates visibility from the widget's vertical bounds and the
// viewport height, subscribing to or leaving the key router as needed. It
// reports the new visibility.
func (w *Widget) SetViewport(b Bounds, viewportHeight int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	visible := b.Intersects(viewportHeight)
	if visible == w.visible {
		return visible
	}
	w.visible = visible
	if w.router != nil && w.started && !w.closed && w.engine.Len() > 0 {
		if visible {
			w.router.subscribe(w)
		} else {
			w.router.unsubscribe(w)
		}
	}
	return visible
}

func (w *Widget) manual(req Request, source string) Result {
	var res Result
	w.run(func() bool {
		if !w.active() {
			return false
		}
		res = w.interactLocked(req, source)
		return res.Changed
	})
	return res
}

// interactLocked runs a user-driven transition. The timer restarts even when
// the request resolves to the current slide.
func (w *Widget) interactLocked(req Request, source string) Result {
	w.sched.Stop()
	res := w.transitionLocked(req, source)
	w.sched.Start()
	return res
}

// pauseLocked stops autoplay and logs when a running timer was stopped.
func (w *Widget) pauseLocked(reason string) {
	running := w.sched.Running()
	w.sched.Stop()
	if running {
		w.log.Debug().Str("widget", w.id).Str("reason", reason).Msg("autoplay stopped")
	}
}

// resumeLocked arms autoplay and logs when the timer was not running before.
func (w *Widget) resumeLocked(reason string) {
	running := w.sched.Running()
	w.sched.Start()
	if !running && w.sched.Running() {
		w.log.Debug().Str("widget", w.id).Str("reason", reason).Msg("autoplay started")
	}
}

func (w *Widget) onTick(gen uint64) {
	w.run(func() bool {
		if !w.active() || !w.sched.Live(gen) {
			return false
		}
		return w.transitionLocked(NextRequest(), "autoplay").Changed
	})
}

func (w *Widget) settle() {
	w.run(func() bool {
		if w.closed {
			return false
		}
		w.engine.Settle(w.index)
		return true
	})
}

func (w *Widget) transitionLocked(req Request, source string) Result {
	res := w.engine.Apply(w.index, req)
	if !res.Changed {
		return res
	}
	w.index = res.Index
	w.log.Debug().
		Str("widget", w.id).
		Str("source", source).
		Int("from", res.Previous).
		Int("to", res.Index).
		Stringer("direction", res.Direction).
		Msg("transition")
	if w.engine.Settles() {
		w.clock.AfterFunc(SettleDelay, w.settle)
	}
	return res
}

func (w *Widget) active() bool {
	return w.started && !w.closed && w.engine.Len() > 0
}

func (w *Widget) run(fn func() bool) {
	w.mu.Lock()
	changed := fn()
	w.mu.Unlock()
	if changed && w.notify != nil {
		w.notify()
	}
}
