package slider

import "sync"

// KeyRouter delivers keyboard input to the widgets that are currently
// visible. Widgets join and leave it from SetViewport, so a key press never
// has to re-check the geometry of every widget on the page.
type KeyRouter struct {
	mu      sync.Mutex
	widgets []*Widget
}

// NewKeyRouter returns an empty router.
func NewKeyRouter() *KeyRouter {
	return &KeyRouter{}
}

// Dispatch sends k to every subscribed widget in subscription order and
// returns how many widgets changed slide.
func (r *KeyRouter) Dispatch(k Key) int {
	if k == KeyOther {
		return 0
	}
	r.mu.Lock()
	targets := make([]*Widget, len(r.widgets))
	copy(targets, r.widgets)
	r.mu.Unlock()

	changed := 0
	for _, w := range targets {
		if w.HandleKey(k).Changed {
			changed++
		}
	}
	return changed
}

// Subscribed returns the number of widgets listening for keys.
func (r *KeyRouter) Subscribed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.widgets)
}

func (r *KeyRouter) subscribe(w *Widget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.widgets {
		if existing == w {
			return
		}
	}
	r.widgets = append(r.widgets, w)
}

func (r *KeyRouter) unsubscribe(w *Widget) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.widgets {
		if existing == w {
			r.widgets = append(r.widgets[:i], r.widgets[i+1:]...)
			return
		}
	}
}
