package slider

import (
	"sync"
	"time"
)

// manualClock fires timers only when Advance is called.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *manualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward, firing due timers in deadline order.
func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()
	for {
		c.mu.Lock()
		var next *manualTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.fired = true
		c.now = next.at
		c.mu.Unlock()
		next.fn()
	}
}

// Live returns the number of armed timers.
func (c *manualClock) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type renderCall struct {
	Op     string
	Index  int
	Role   Role
	Active bool
}

// recorder is a Renderer that keeps every call and the resulting state.
type recorder struct {
	mu         sync.Mutex
	calls      []renderCall
	roles      map[int]Role
	indicators map[int]bool
}

func newRecorder() *recorder {
	return &recorder{roles: map[int]Role{}, indicators: map[int]bool{}}
}

func (r *recorder) SetActive(slide int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, renderCall{Op: "active", Index: slide, Role: RoleActive})
	r.roles[slide] = RoleActive
}

func (r *recorder) SetRole(slide int, role Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, renderCall{Op: "role", Index: slide, Role: role})
	r.roles[slide] = role
}

func (r *recorder) SetIndicator(i int, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, renderCall{Op: "indicator", Index: i, Active: active})
	r.indicators[i] = active
}

func (r *recorder) ClearTransientRoles() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, renderCall{Op: "clear"})
	for i, role := range r.roles {
		if role.Transient() {
			r.roles[i] = RoleNone
		}
	}
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

func (r *recorder) Calls() []renderCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]renderCall, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *recorder) Role(slide int) Role {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.roles[slide]
}

func (r *recorder) ActiveIndicators() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for i := 0; i < len(r.indicators); i++ {
		if r.indicators[i] {
			out = append(out, i)
		}
	}
	return out
}
