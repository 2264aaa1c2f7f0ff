package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type markdownKey struct {
	style string
	width int
}

// markdown renders slide bodies, caching one glamour renderer per style and
// wrap width.
type markdown struct {
	mu        sync.Mutex
	renderers map[markdownKey]*glamour.TermRenderer
}

func newMarkdown() *markdown {
	return &markdown{renderers: make(map[markdownKey]*glamour.TermRenderer)}
}

// Render returns body as styled terminal text wrapped to width. Rendering
// failures fall back to the raw body.
func (md *markdown) Render(body, style string, width int) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	r, err := md.renderer(style, width)
	if err != nil {
		return body
	}
	out, err := r.Render(body)
	if err != nil {
		return body
	}
	return strings.Trim(out, "\n")
}

func (md *markdown) renderer(style string, width int) (*glamour.TermRenderer, error) {
	if style == "" {
		style = "dark"
	}
	k := markdownKey{style: style, width: width}

	md.mu.Lock()
	defer md.mu.Unlock()
	if r, ok := md.renderers[k]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	md.renderers[k] = r
	return r, nil
}
