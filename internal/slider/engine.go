package slider

import (
	"strings"
	"time"
)

// SettleDelay is how long exiting roles stay on a slide after a stacked
// transition before they are cleared.
const SettleDelay = 800 * time.Millisecond

// Transition selects the visual policy applied when the active slide changes.
type Transition int

const (
	// TransitionStacked pre-positions neighbours and animates the outgoing
	// slide away with a direction-qualified exit role.
	TransitionStacked Transition = iota
	// TransitionSlide only moves the active marker.
	TransitionSlide
	// TransitionFade shows the target and hides everything else.
	TransitionFade
)

// ParseTransition maps a configured transition name to a Transition.
// Unknown and empty names select the stacked policy.
func ParseTransition(name string) Transition {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "slide":
		return TransitionSlide
	case "fade":
		return TransitionFade
	default:
		return TransitionStacked
	}
}

func (t Transition) String() string {
	switch t {
	case TransitionSlide:
		return "slide"
	case TransitionFade:
		return "fade"
	default:
		return "stacked"
	}
}

// Role is the presentation state of a single slide.
type Role int

const (
	RoleNone Role = iota
	RoleActive
	RoleExitingLeft
	RoleExitingRight
	RoleUpcomingNext
	RoleUpcomingPrev
)

func (r Role) String() string {
	switch r {
	case RoleActive:
		return "active"
	case RoleExitingLeft:
		return "exiting-left"
	case RoleExitingRight:
		return "exiting-right"
	case RoleUpcomingNext:
		return "upcoming-next"
	case RoleUpcomingPrev:
		return "upcoming-prev"
	default:
		return "none"
	}
}

// Transient reports whether the role is cleared once a transition settles.
func (r Role) Transient() bool {
	return r == RoleExitingLeft || r == RoleExitingRight
}

// Renderer applies engine decisions to a concrete surface. Slides and
// indicators are addressed by their position in the set.
type Renderer interface {
	SetActive(slide int)
	SetRole(slide int, role Role)
	SetIndicator(indicator int, active bool)
	ClearTransientRoles()
}

// Request asks for a move to an absolute index, or by a relative offset when
// Relative is set. Direction is used verbatim unless it is DirectionNone.
type Request struct {
	Target    int
	Relative  bool
	Direction Direction
}

// NextRequest moves one slide forward.
func NextRequest() Request {
	return Request{Target: 1, Relative: true, Direction: DirectionNext}
}

// PrevRequest moves one slide back.
func PrevRequest() Request {
	return Request{Target: -1, Relative: true, Direction: DirectionPrev}
}

// GotoRequest jumps to index and lets the engine infer the direction.
func GotoRequest(index int) Request {
	return Request{Target: index}
}

// Result describes the outcome of a transition.
type Result struct {
	Previous  int
	Index     int
	Direction Direction
	Changed   bool
}

// Engine computes transitions for a fixed-size slide set and forwards role
// changes to a Renderer. It keeps the roles it last rendered so that only
// slides whose role actually changes are touched. Engine is not safe for
// concurrent use; Widget serializes access.
type Engine struct {
	n          int
	transition Transition
	renderer   Renderer
	indicators indicatorSync
	roles      []Role
}

// NewEngine returns an engine for n slides and the given number of indicators.
// A nil renderer discards all output.
func NewEngine(n, indicators int, transition Transition, renderer Renderer) *Engine {
	if n < 0 {
		n = 0
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}
	return &Engine{
		n:          n,
		transition: transition,
		renderer:   renderer,
		indicators: indicatorSync{count: indicators, renderer: renderer},
		roles:      make([]Role, n),
	}
}

// Len returns the number of slides.
func (e *Engine) Len() int { return e.n }

// Transition returns the configured visual policy.
func (e *Engine) Transition() Transition { return e.transition }

// Roles returns a copy of the roles last handed to the renderer.
func (e *Engine) Roles() []Role {
	out := make([]Role, len(e.roles))
	copy(out, e.roles)
	return out
}

// Layout renders every slide and indicator from scratch around index.
func (e *Engine) Layout(index int) {
	if e.n == 0 {
		return
	}
	index = Wrap(index, 0, e.n)
	roles := e.rolesFor(index, -1, DirectionNone)
	for i, role := range roles {
		e.apply(i, role)
	}
	e.roles = roles
	e.indicators.reset(index)
}

// Resolve normalizes a request against current without rendering anything.
func (e *Engine) Resolve(current int, req Request) Result {
	if e.n == 0 {
		return Result{}
	}
	target := req.Target
	if req.Relative {
		target = current + req.Target
	}
	target = Wrap(target, 0, e.n)
	res := Result{Previous: current, Index: target}
	if target == current {
		return res
	}
	res.Changed = true
	res.Direction = req.Direction
	if res.Direction == DirectionNone {
		res.Direction = InferDirection(current, target, e.n)
	}
	return res
}

// Apply resolves req against current and renders the resulting role changes
// and indicator sync. Unchanged results render nothing.
func (e *Engine) Apply(current int, req Request) Result {
	res := e.Resolve(current, req)
	if !res.Changed {
		return res
	}
	roles := e.rolesFor(res.Index, res.Previous, res.Direction)
	for i, role := range roles {
		if role != e.roles[i] {
			e.apply(i, role)
		}
	}
	e.roles = roles
	e.indicators.sync(res)
	return res
}

// Settles reports whether transitions leave transient roles behind.
func (e *Engine) Settles() bool {
	return e.transition == TransitionStacked
}

// Settle clears transient roles around the active index. A slide that was
// exiting takes the resting role it has next to index, so a neighbour behind
// the active slide becomes upcoming again. It is safe to call repeatedly.
func (e *Engine) Settle(index int) {
	if e.n == 0 {
		return
	}
	rest := e.rolesFor(Wrap(index, 0, e.n), -1, DirectionNone)
	var restored []int
	for i, role := range e.roles {
		if !role.Transient() {
			continue
		}
		e.roles[i] = rest[i]
		if rest[i] != RoleNone {
			restored = append(restored, i)
		}
	}
	e.renderer.ClearTransientRoles()
	for _, i := range restored {
		e.apply(i, e.roles[i])
	}
}

func (e *Engine) apply(slide int, role Role) {
	if role == RoleActive {
		e.renderer.SetActive(slide)
		return
	}
	e.renderer.SetRole(slide, role)
}

// rolesFor computes the full role table with target active. previous is -1
// when nothing is leaving.
func (e *Engine) rolesFor(target, previous int, dir Direction) []Role {
	roles := make([]Role, e.n)
	roles[target] = RoleActive
	if e.transition != TransitionStacked {
		return roles
	}
	if previous >= 0 && previous != target {
		if dir == DirectionPrev {
			roles[previous] = RoleExitingRight
		} else {
			roles[previous] = RoleExitingLeft
		}
	}
	if next := Wrap(target, 1, e.n); roles[next] == RoleNone {
		roles[next] = RoleUpcomingNext
	}
	if prev := Wrap(target, -1, e.n); roles[prev] == RoleNone {
		roles[prev] = RoleUpcomingPrev
	}
	return roles
}

type nopRenderer struct{}

func (nopRenderer) SetActive(int)          {}
func (nopRenderer) SetRole(int, Role)      {}
func (nopRenderer) SetIndicator(int, bool) {}
func (nopRenderer) ClearTransientRoles()   {}
