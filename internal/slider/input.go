package slider

// Key is a keyboard key the widgets react to.
type Key int

const (
	KeyOther Key = iota
	KeyArrowLeft
	KeyArrowRight
)

// ParseKey maps a key name ("left", "ArrowLeft", ...) to a Key.
func ParseKey(name string) Key {
	switch name {
	case "left", "ArrowLeft":
		return KeyArrowLeft
	case "right", "ArrowRight":
		return KeyArrowRight
	default:
		return KeyOther
	}
}

// Bounds is the vertical extent of a widget relative to the top of the
// viewport. Top may be negative once the widget scrolls past the top edge.
type Bounds struct {
	Top    int
	Bottom int
}

// Intersects reports whether any part of b lies inside a viewport of the
// given height.
func (b Bounds) Intersects(viewportHeight int) bool {
	return b.Top < viewportHeight && b.Bottom > 0
}
