package slider

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultDelay is the autoplay cadence used when none, or an unparsable one,
// is configured.
const DefaultDelay = 5 * time.Second

// AutoplayConfig controls timer-driven advancement.
type AutoplayConfig struct {
	Enabled bool
	Delay   time.Duration
}

// ParseSpeed turns a configured speed into an AutoplayConfig. "off" disables
// autoplay. Durations such as "5s" or "750ms" are used as-is and bare
// integers are milliseconds. Anything else falls back to DefaultDelay.
func ParseSpeed(speed string) AutoplayConfig {
	trimmed := strings.TrimSpace(speed)
	if strings.EqualFold(trimmed, "off") {
		return AutoplayConfig{}
	}
	if d, err := time.ParseDuration(trimmed); err == nil && d > 0 {
		return AutoplayConfig{Enabled: true, Delay: d}
	}
	if ms, err := strconv.Atoi(trimmed); err == nil && ms > 0 {
		return AutoplayConfig{Enabled: true, Delay: time.Duration(ms) * time.Millisecond}
	}
	return AutoplayConfig{Enabled: true, Delay: DefaultDelay}
}

// Scheduler owns the repeating autoplay timer of one widget. At most one timer
// is armed at any moment: Start always cancels the previous timer first.
//
// Every arming gets a generation number. The fire callback receives it and
// can call Live to drop ticks whose timer was cancelled while the tick was
// already in flight.
type Scheduler struct {
	cfg   AutoplayConfig
	clock Clock
	fire  func(gen uint64)

	mu    sync.Mutex
	timer Timer
	gen   uint64
}

// NewScheduler returns a stopped scheduler. A disabled config, or a
// non-positive delay, yields a scheduler whose Start never arms a timer.
func NewScheduler(cfg AutoplayConfig, clock Clock, fire func(gen uint64)) *Scheduler {
	if cfg.Delay <= 0 {
		cfg.Enabled = false
	}
	if clock == nil {
		clock = SystemClock()
	}
	if fire == nil {
		fire = func(uint64) {}
	}
	return &Scheduler{cfg: cfg, clock: clock, fire: fire}
}

// Config returns the autoplay configuration.
func (s *Scheduler) Config() AutoplayConfig { return s.cfg }

// Start arms the repeating timer, replacing any armed one.
func (s *Scheduler) Start() {
	if !s.cfg.Enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.armLocked(s.gen)
}

// Stop cancels the timer. Stopping a stopped scheduler does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// Restart resets the cadence so the next tick is a full delay away.
func (s *Scheduler) Restart() {
	s.Stop()
	s.Start()
}

// Running reports whether a timer is armed.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

// Live reports whether gen belongs to the currently armed timer.
func (s *Scheduler) Live(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil && gen == s.gen
}

func (s *Scheduler) stopLocked() {
	if s.timer == nil {
		return
	}
	s.timer.Stop()
	s.timer = nil
	s.gen++
}

func (s *Scheduler) armLocked(gen uint64) {
	s.timer = s.clock.AfterFunc(s.cfg.Delay, func() { s.tick(gen) })
}

func (s *Scheduler) tick(gen uint64) {
	s.mu.Lock()
	if s.timer == nil || gen != s.gen {
		s.mu.Unlock()
		return
	}
	// Interval semantics: the next tick is armed before this one is handled.
	s.armLocked(gen)
	s.mu.Unlock()
	s.fire(gen)
}
