package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/marquee/internal/deck"
	"github.com/five82/marquee/internal/slider"
)

// View is the rendered state of one widget: the role of every slide and
// whether each indicator is lit.
type View struct {
	Roles      []slider.Role
	Active     int
	Indicators []bool
}

// ActiveIndicator returns the first lit indicator, or -1.
func (v View) ActiveIndicator() int {
	for i, lit := range v.Indicators {
		if lit {
			return i
		}
	}
	return -1
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Deck                deck.Deck
	HasDeck             bool
	Generation          uint64 // bumped on every successful deck load
	Views               map[string]View
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // deck loads that failed in a row
}

// IsStale reports whether the shown deck no longer matches the file on disk.
func (s Snapshot) IsStale() bool {
	return s.HasDeck && s.ConsecutiveFailures > 0
}

// Store coordinates concurrent updates from the deck watcher and the widget
// renderers with reads from the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records the result of a deck load. When err is non-nil the previous
// deck is kept but the error is recorded for visibility.
func (s *Store) Update(d *deck.Deck, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	if d != nil {
		s.snapshot.Deck = *d
		s.snapshot.HasDeck = true
		s.snapshot.Generation++
		s.snapshot.Views = nil
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Renderer registers a blank view for widget id and returns the slider
// renderer that writes into it. Registering an id again replaces its view.
func (s *Store) Renderer(id string, slides, indicators int) slider.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.Views == nil {
		s.snapshot.Views = make(map[string]View)
	}
	s.snapshot.Views[id] = View{
		Roles:      make([]slider.Role, max(slides, 0)),
		Active:     -1,
		Indicators: make([]bool, max(indicators, 0)),
	}
	return &renderer{store: s, id: id}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Views = cloneViews(s.snapshot.Views)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// View returns a copy of one widget's view.
func (s *Store) View(id string) (View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.snapshot.Views[id]
	if !ok {
		return View{}, false
	}
	return cloneView(v), true
}

func (s *Store) mutate(id string, fn func(v *View)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.snapshot.Views[id]
	if !ok {
		return
	}
	fn(&v)
	s.snapshot.Views[id] = v
}

type renderer struct {
	store *Store
	id    string
}

func (r *renderer) SetActive(slide int) {
	r.store.mutate(r.id, func(v *View) {
		if slide < 0 || slide >= len(v.Roles) {
			return
		}
		v.Roles[slide] = slider.RoleActive
		v.Active = slide
	})
}

func (r *renderer) SetRole(slide int, role slider.Role) {
	r.store.mutate(r.id, func(v *View) {
		if slide < 0 || slide >= len(v.Roles) {
			return
		}
		v.Roles[slide] = role
		if role != slider.RoleActive && v.Active == slide {
			v.Active = -1
		}
	})
}

func (r *renderer) SetIndicator(indicator int, active bool) {
	r.store.mutate(r.id, func(v *View) {
		if indicator < 0 || indicator >= len(v.Indicators) {
			return
		}
		v.Indicators[indicator] = active
	})
}

func (r *renderer) ClearTransientRoles() {
	r.store.mutate(r.id, func(v *View) {
		for i, role := range v.Roles {
			if role.Transient() {
				v.Roles[i] = slider.RoleNone
			}
		}
	})
}

func cloneViews(views map[string]View) map[string]View {
	if len(views) == 0 {
		return nil
	}
	dup := make(map[string]View, len(views))
	for id, v := range views {
		dup[id] = cloneView(v)
	}
	return dup
}

func cloneView(v View) View {
	v.Roles = append([]slider.Role(nil), v.Roles...)
	v.Indicators = append([]bool(nil), v.Indicators...)
	return v
}
