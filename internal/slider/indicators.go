package slider

// indicatorSync keeps the indicator dots in lockstep with the active slide.
// A zero count disables it.
type indicatorSync struct {
	count    int
	renderer Renderer
}

func (s indicatorSync) reset(active int) {
	for i := 0; i < s.count; i++ {
		s.renderer.SetIndicator(i, i == active)
	}
}

func (s indicatorSync) sync(res Result) {
	if s.count <= 0 || !res.Changed {
		return
	}
	if res.Previous >= 0 && res.Previous < s.count {
		s.renderer.SetIndicator(res.Previous, false)
	}
	if res.Index < s.count {
		s.renderer.SetIndicator(res.Index, true)
	}
}
