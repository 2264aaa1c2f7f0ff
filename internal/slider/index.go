package slider

// Direction is the way a transition moves through the slide set.
type Direction int

const (
	// DirectionNone asks the engine to infer the direction from the target.
	DirectionNone Direction = iota
	DirectionNext
	DirectionPrev
)

func (d Direction) String() string {
	switch d {
	case DirectionNext:
		return "next"
	case DirectionPrev:
		return "prev"
	default:
		return "none"
	}
}

// Wrap moves current by delta positions around a circular set of n slides.
// It returns 0 when n is not positive.
func Wrap(current, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((current+delta)%n + n) % n
}

// InferDirection picks the direction for a jump from current to target.
// Moving from the last slide to the first counts as Next and moving from the
// first slide to the last counts as Prev, regardless of the raw comparison.
func InferDirection(current, target, n int) Direction {
	dir := DirectionPrev
	if target > current {
		dir = DirectionNext
	}
	if n > 1 {
		switch {
		case current == n-1 && target == 0:
			dir = DirectionNext
		case current == 0 && target == n-1:
			dir = DirectionPrev
		}
	}
	return dir
}
