package slider

import (
	"bytes"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWidget(t *testing.T, n int, cfg Config, opts ...Option) (*Widget, *recorder, *manualClock) {
	t.Helper()
	rec := newRecorder()
	clock := &manualClock{}
	cfg.Slides = n
	if cfg.Indicators == 0 {
		cfg.Indicators = n
	}
	w := New(cfg, rec, append([]Option{WithClock(clock)}, opts...)...)
	w.Start()
	t.Cleanup(w.Close)
	return w, rec, clock
}

func autoplayEvery(d time.Duration) AutoplayConfig {
	return AutoplayConfig{Enabled: true, Delay: d}
}

func TestWidget_NextThreeTimes(t *testing.T) {
	w, rec, _ := newTestWidget(t, 5, Config{Transition: TransitionSlide})

	for i := 1; i <= 3; i++ {
		res := w.ClickNext()
		require.True(t, res.Changed)
		assert.Equal(t, DirectionNext, res.Direction)
		assert.Equal(t, i, res.Index)
	}
	assert.Equal(t, 3, w.Index())
	assert.Equal(t, []int{3}, rec.ActiveIndicators())
}

func TestWidget_PrevWrapsBackward(t *testing.T) {
	w, rec, _ := newTestWidget(t, 3, Config{})

	res := w.ClickPrev()
	assert.Equal(t, Result{Previous: 0, Index: 2, Direction: DirectionPrev, Changed: true}, res)
	assert.Equal(t, RoleActive, rec.Role(2))
	assert.Equal(t, RoleExitingRight, rec.Role(0))
}

func TestWidget_NextWrapsForward(t *testing.T) {
	w, _, _ := newTestWidget(t, 4, Config{})
	w.ClickIndicator(3)

	res := w.ClickNext()
	assert.Equal(t, Result{Previous: 3, Index: 0, Direction: DirectionNext, Changed: true}, res)
}

func TestWidget_AutoplayAdvancesOnSchedule(t *testing.T) {
	w, _, clock := newTestWidget(t, 3, Config{Autoplay: autoplayEvery(5 * time.Second)})

	clock.Advance(4999 * time.Millisecond)
	assert.Equal(t, 0, w.Index())
	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, w.Index())
	clock.Advance(5 * time.Second)
	assert.Equal(t, 2, w.Index())
}

func TestWidget_ManualNavigationRestartsCadence(t *testing.T) {
	w, _, clock := newTestWidget(t, 5, Config{Autoplay: autoplayEvery(5 * time.Second)})

	clock.Advance(4 * time.Second)
	w.ClickNext()
	clock.Advance(4 * time.Second)
	assert.Equal(t, 1, w.Index(), "timer should have restarted on click")
	clock.Advance(time.Second)
	assert.Equal(t, 2, w.Index())
}

func TestWidget_NoopIndicatorClickStillRestarts(t *testing.T) {
	w, rec, clock := newTestWidget(t, 3, Config{Autoplay: autoplayEvery(5 * time.Second)})
	rec.reset()

	clock.Advance(4 * time.Second)
	res := w.ClickIndicator(0)
	assert.False(t, res.Changed)
	assert.Empty(t, rec.Calls())

	clock.Advance(4 * time.Second)
	assert.Equal(t, 0, w.Index())
	clock.Advance(time.Second)
	assert.Equal(t, 1, w.Index())
}

func TestWidget_SwipeThresholdIsStrict(t *testing.T) {
	w, _, _ := newTestWidget(t, 4, Config{})

	w.TouchStart(200)
	res := w.TouchEnd(150)
	assert.False(t, res.Changed, "exactly 50px must not swipe")

	w.TouchStart(200)
	res = w.TouchEnd(149)
	require.True(t, res.Changed, "51px leftward must swipe")
	assert.Equal(t, DirectionNext, res.Direction)
	assert.Equal(t, 1, w.Index())

	w.TouchStart(100)
	res = w.TouchEnd(151)
	require.True(t, res.Changed)
	assert.Equal(t, DirectionPrev, res.Direction)
	assert.Equal(t, 0, w.Index())
}

func TestWidget_TouchEndWithoutStartDoesNotSwipe(t *testing.T) {
	w, rec, _ := newTestWidget(t, 4, Config{Autoplay: autoplayEvery(time.Second)})
	rec.reset()

	res := w.TouchEnd(400)
	assert.False(t, res.Changed)
	assert.Equal(t, 0, w.Index())
	assert.Empty(t, rec.Calls())
	assert.True(t, w.Autoplaying(), "timer restarts even without a swipe")

	w.TouchStart(400)
	w.TouchEnd(300)
	res = w.TouchEnd(0)
	assert.False(t, res.Changed, "a second end reuses no stale start")
	assert.Equal(t, 1, w.Index())
}

func TestWidget_TouchPausesAndAlwaysResumes(t *testing.T) {
	w, _, clock := newTestWidget(t, 3, Config{Autoplay: autoplayEvery(time.Second)})

	w.TouchStart(10)
	assert.True(t, w.Touching())
	assert.False(t, w.Autoplaying())
	clock.Advance(3 * time.Second)
	assert.Equal(t, 0, w.Index())

	w.TouchEnd(12)
	assert.False(t, w.Touching())
	assert.True(t, w.Autoplaying())
}

func TestWidget_HoverStopsAndResumes(t *testing.T) {
	w, _, clock := newTestWidget(t, 3, Config{Autoplay: autoplayEvery(time.Second)})

	w.HoverEnter()
	clock.Advance(5 * time.Second)
	assert.Equal(t, 0, w.Index())

	w.HoverLeave()
	clock.Advance(time.Second)
	assert.Equal(t, 1, w.Index())
}

func TestWidget_HoverAndTouchShareOneState(t *testing.T) {
	w, _, _ := newTestWidget(t, 3, Config{Autoplay: autoplayEvery(time.Second)})

	w.HoverEnter()
	w.TouchStart(0)
	w.TouchEnd(0)
	assert.True(t, w.Autoplaying(), "touch end resumes even while hovered")
}

func TestWidget_LogsAutoplayPauseAndResume(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	w, _, _ := newTestWidget(t, 3, Config{ID: "hero", Autoplay: autoplayEvery(time.Second)}, WithLogger(log))

	w.HoverEnter()
	w.HoverEnter()
	w.HoverLeave()

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `"message":"autoplay stopped"`))
	// Once from Start, once from HoverLeave.
	assert.Equal(t, 2, strings.Count(out, `"message":"autoplay started"`))
	assert.Contains(t, out, `"reason":"hover"`)
}

func TestWidget_DisabledAutoplayIsManualOnly(t *testing.T) {
	w, _, clock := newTestWidget(t, 3, Config{Transition: TransitionSlide, Autoplay: AutoplayConfig{}})

	clock.Advance(time.Minute)
	assert.Equal(t, 0, w.Index())
	w.HoverLeave()
	w.ClickNext()
	assert.False(t, w.Autoplaying())
	assert.Equal(t, 0, clock.Live())
}

func TestWidget_StackedSettleRestoresNeighbours(t *testing.T) {
	w, rec, clock := newTestWidget(t, 4, Config{Transition: TransitionStacked})

	w.ClickNext()
	assert.Equal(t, RoleExitingLeft, rec.Role(0))
	clock.Advance(SettleDelay - time.Millisecond)
	assert.Equal(t, RoleExitingLeft, rec.Role(0))
	clock.Advance(time.Millisecond)
	assert.Equal(t, RoleUpcomingPrev, rec.Role(0))

	w.ClickIndicator(3)
	clock.Advance(SettleDelay)
	assert.Equal(t, RoleNone, rec.Role(1), "slide two away from the active one rests")
	assert.Equal(t, RoleUpcomingPrev, rec.Role(2))
	assert.Equal(t, RoleUpcomingNext, rec.Role(0))
}

func TestWidget_KeysFollowViewportVisibility(t *testing.T) {
	router := NewKeyRouter()
	top, _, _ := newTestWidget(t, 3, Config{ID: "top"}, WithKeyRouter(router))
	below, _, _ := newTestWidget(t, 3, Config{ID: "below"}, WithKeyRouter(router))
	require.Equal(t, 2, router.Subscribed())

	const viewport = 40
	top.SetViewport(Bounds{Top: 0, Bottom: 20}, viewport)
	below.SetViewport(Bounds{Top: viewport + 10, Bottom: viewport + 30}, viewport)
	assert.Equal(t, 1, router.Subscribed())

	assert.Equal(t, 1, router.Dispatch(KeyArrowRight))
	assert.Equal(t, 1, top.Index())
	assert.Equal(t, 0, below.Index())

	assert.False(t, below.HandleKey(KeyArrowRight).Changed, "off-screen widget ignores keys")

	below.SetViewport(Bounds{Top: 25, Bottom: 45}, viewport)
	assert.Equal(t, 2, router.Dispatch(KeyArrowLeft))
	assert.Equal(t, 0, top.Index())
	assert.Equal(t, 2, below.Index())

	assert.Equal(t, 0, router.Dispatch(KeyOther))
}

func TestWidget_PartiallyVisibleCountsAsVisible(t *testing.T) {
	w, _, _ := newTestWidget(t, 2, Config{})
	assert.True(t, w.SetViewport(Bounds{Top: -10, Bottom: 1}, 30))
	assert.False(t, w.SetViewport(Bounds{Top: -10, Bottom: 0}, 30))
	assert.False(t, w.SetViewport(Bounds{Top: 30, Bottom: 50}, 30))
}

func TestWidget_ZeroSlidesIsInert(t *testing.T) {
	router := NewKeyRouter()
	w, rec, clock := newTestWidget(t, 0, Config{Autoplay: autoplayEvery(time.Second)}, WithKeyRouter(router))

	w.ClickNext()
	w.ClickPrev()
	w.ClickIndicator(2)
	w.TouchStart(0)
	w.TouchEnd(500)
	w.HoverLeave()
	router.Dispatch(KeyArrowRight)
	clock.Advance(time.Minute)

	assert.Empty(t, rec.Calls())
	assert.Equal(t, 0, clock.Live())
	assert.Equal(t, 0, router.Subscribed())
}

func TestWidget_CloseStopsEverything(t *testing.T) {
	router := NewKeyRouter()
	w, _, clock := newTestWidget(t, 3, Config{Autoplay: autoplayEvery(time.Second)}, WithKeyRouter(router))

	w.Close()
	assert.False(t, w.Autoplaying())
	assert.Equal(t, 0, router.Subscribed())
	assert.False(t, w.ClickNext().Changed)
	clock.Advance(time.Minute)
	assert.Equal(t, 0, w.Index())
}

func TestWidget_NotifyOnVisibleChanges(t *testing.T) {
	var notified atomic.Int32
	w, _, clock := newTestWidget(t, 3, Config{Autoplay: autoplayEvery(time.Second)},
		WithNotify(func() { notified.Add(1) }))

	// Start notifies once.
	base := notified.Load()
	w.ClickNext()
	w.HoverEnter()
	assert.Equal(t, base+1, notified.Load())

	w.HoverLeave()
	clock.Advance(time.Second)
	// The click's settle at 800ms, then the autoplay transition at 1s.
	assert.Equal(t, base+3, notified.Load())
}

func TestWidget_GeneratesIDWhenMissing(t *testing.T) {
	a := New(Config{Slides: 1}, nil)
	b := New(Config{Slides: 1}, nil)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, "hero", New(Config{ID: "hero"}, nil).ID())
}
