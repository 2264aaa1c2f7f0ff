// Package slider implements the state engine behind a rotating slide widget.
//
// # Overview
//
// A Widget owns a fixed set of N slides (N may be zero), the index of the
// active slide, a repeating autoplay timer and the bookkeeping for touch and
// keyboard input. Every input source ends in the same place: a Request handed
// to the Engine, which resolves it against the current index, picks a
// Direction and tells a Renderer which slides changed role.
//
//	input (button, indicator, swipe, arrow key, timer)
//	       │
//	       ▼
//	Widget ── stop timer ─► Engine.Apply ─► Renderer ─► indicators ─► restart timer
//
// # Transitions
//
// Three visual policies are supported, selected with Transition:
//
//   - TransitionSlide: only the active marker moves.
//   - TransitionFade: the target is shown, everything else hidden.
//   - TransitionStacked: the target is active, its neighbours are marked
//     upcoming-next and upcoming-prev, and the outgoing slide is marked
//     exiting-left (Next) or exiting-right (Prev) until SettleDelay passes.
//
// Wrap-around is circular: Next from the last slide lands on the first, Prev
// from the first lands on the last. When a jump does not carry an explicit
// direction, moving from the last slide to the first counts as Next and from
// the first to the last as Prev.
//
// # Autoplay
//
// Scheduler has two states, stopped and running. Start cancels any armed
// timer before arming a new one, so a widget never has two live timers.
// Manual interaction restarts the cadence, even when the requested slide is
// already active. Hover and touch pause with Stop and resume with Start;
// there is no separate paused state, so whichever resume arrives last wins.
//
// # Keyboard
//
// Arrow keys reach a widget through a KeyRouter. Widgets subscribe while
// their bounds intersect the viewport (see SetViewport) and unsubscribe when
// they scroll out of view.
//
// # Concurrency
//
// Timer callbacks run on their own goroutines. Widget serializes them with
// user input behind one mutex and drops ticks from timers that were cancelled
// while the tick was in flight. Renderer methods are always called with that
// mutex held.
package slider
