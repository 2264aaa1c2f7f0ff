package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/marquee/internal/deck"
	"github.com/five82/marquee/internal/slider"
	"github.com/five82/marquee/internal/state"
)

const (
	defaultCardHeight = 12
	minCardWidth      = 24
	// Rows inside the border that are not slide content: header, peek and
	// controls.
	cardFixedRows = 3
	// Border rows and columns, and the horizontal padding.
	cardBorder  = 1
	cardPadding = 1
)

// cardSize returns the outer width and height of a card on a page that is
// pageWidth columns wide.
func cardSize(s deck.Settings, pageWidth int) (width, height int) {
	width = pageWidth
	if s.Width > 0 && s.Width < width {
		width = s.Width
	}
	if width < minCardWidth {
		width = minCardWidth
	}
	height = defaultCardHeight
	if s.Height > 0 {
		height = s.Height
	}
	if minHeight := 2*cardBorder + cardFixedRows + 1; height < minHeight {
		height = minHeight
	}
	return width, height
}

func innerWidth(width int) int {
	return width - 2*cardBorder - 2*cardPadding
}

func bodyRows(height int) int {
	return height - 2*cardBorder - cardFixedRows
}

type hitKind int

const (
	hitPrev hitKind = iota
	hitNext
	hitDot
)

// hit is a clickable span on the controls row, in columns from the start of
// the card content.
type hit struct {
	kind  hitKind
	index int
	col   int
	width int
}

// controls lays out the prev button, the indicator dots and the next button.
func controls(showButtons bool, indicators []bool, styles Styles) (string, []hit) {
	var b strings.Builder
	var hits []hit
	col := 0
	if showButtons {
		b.WriteString(styles.Button.Render("‹"))
		hits = append(hits, hit{kind: hitPrev, col: col, width: 1})
		b.WriteString(" ")
		col += 2
	}
	for i, lit := range indicators {
		if lit {
			b.WriteString(styles.DotActive.Render("●"))
		} else {
			b.WriteString(styles.DotInactive.Render("○"))
		}
		b.WriteString(" ")
		hits = append(hits, hit{kind: hitDot, index: i, col: col, width: 1})
		col += 2
	}
	if showButtons {
		b.WriteString(styles.Button.Render("›"))
		hits = append(hits, hit{kind: hitNext, col: col, width: 1})
	}
	return b.String(), hits
}

// hitAt returns the control under column col.
func hitAt(hits []hit, col int) (hit, bool) {
	for _, h := range hits {
		if col >= h.col && col < h.col+h.width {
			return h, true
		}
	}
	return hit{}, false
}

// fitLines sizes slide content to rows following the widget's image_fit.
func fitLines(lines []string, rows int, fit string) []string {
	if rows <= 0 {
		return nil
	}
	switch fit {
	case "none":
		if len(lines) > rows {
			return lines[:rows]
		}
		return lines
	case "contain", "scale-down":
		if len(lines) > rows {
			out := append([]string(nil), lines[:rows-1]...)
			return append(out, "…")
		}
		if fit == "scale-down" {
			return lines
		}
	case "fill":
		if len(lines) > rows {
			return lines[:rows]
		}
	default: // cover
		if len(lines) > rows {
			return lines[:rows]
		}
		// Center short content vertically.
		top := (rows - len(lines)) / 2
		out := make([]string, top, rows)
		out = append(out, lines...)
		for len(out) < rows {
			out = append(out, "")
		}
		return out
	}
	out := append([]string(nil), lines...)
	for len(out) < rows {
		out = append(out, "")
	}
	return out
}

// cardFrame is a rendered card.
type cardFrame struct {
	lines  []string
	width  int
	height int
	hits   []hit
}

type cardRender struct {
	theme   Theme
	md      *markdown
	focused bool
}

func (r cardRender) render(c *card, v state.View, pageWidth int) cardFrame {
	styles := r.theme.Styles()
	width, height := cardSize(c.settings, pageWidth)
	inner := innerWidth(width)
	rows := bodyRows(height)

	lines := make([]string, 0, rows+cardFixedRows)
	lines = append(lines, r.header(c, styles, inner))

	var hits []hit
	if len(c.def.Slides) == 0 || v.Active < 0 || v.Active >= len(c.def.Slides) {
		placeholder := styles.MutedText.Italic(true).Render("No slides")
		lines = append(lines, fitLines([]string{placeholder}, rows, "cover")...)
		lines = append(lines, "", "")
	} else {
		lines = append(lines, fitLines(r.slide(c.def.Slides[v.Active], c.settings, styles, inner), rows, c.settings.ImageFit)...)
		lines = append(lines, r.peek(c, v, styles, inner))
		var ctl string
		ctl, hits = controls(c.settings.ShowControls, v.Indicators, styles)
		if n := len(c.def.Slides); n > 1 {
			ctl += styles.FaintText.Render(fmt.Sprintf("  %d/%d", v.Active+1, n))
		}
		lines = append(lines, ctl)
	}

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, inner, "…")
	}

	box := styles.Card
	if r.focused {
		box = styles.CardFocused
	}
	box = box.
		Background(lipgloss.Color(r.theme.Tint(c.settings.OverlayColor, c.settings.OverlayOpacity))).
		Width(width - 2*cardBorder).
		Height(height - 2*cardBorder)

	rendered := box.Render(strings.Join(lines, "\n"))
	return cardFrame{
		lines:  strings.Split(rendered, "\n"),
		width:  width,
		height: height,
		hits:   hits,
	}
}

func (r cardRender) header(c *card, styles Styles, inner int) string {
	title := styles.Text.Bold(true).Render(c.title())
	var status string
	switch {
	case len(c.def.Slides) == 0:
		status = ""
	case c.widget.Autoplaying():
		status = styles.SuccessText.Render("▶ " + c.settings.Autoplay.Delay.String())
	case c.settings.Autoplay.Enabled:
		status = styles.WarningText.Render("⏸ paused")
	default:
		status = styles.MutedText.Render("manual")
	}
	if status != "" {
		status += styles.FaintText.Render(" · " + c.settings.Transition.String())
	}
	return spread(title, status, inner)
}

func (r cardRender) slide(s deck.Slide, settings deck.Settings, styles Styles, inner int) []string {
	var lines []string
	if s.Title != "" {
		lines = append(lines, styles.AccentText.Bold(true).Render(s.Title))
	}
	var meta []string
	if s.Author != "" {
		meta = append(meta, s.Author)
	}
	if s.Date != "" {
		meta = append(meta, s.Date)
	}
	if len(s.Tags) > 0 {
		meta = append(meta, "#"+strings.Join(s.Tags, " #"))
	}
	if len(meta) > 0 {
		lines = append(lines, styles.FaintText.Render(strings.Join(meta, " · ")))
	}
	if body := r.md.Render(s.Body, r.theme.MarkdownStyle, inner); body != "" {
		lines = append(lines, strings.Split(body, "\n")...)
	}
	if s.URL != "" {
		lines = append(lines, styles.MutedText.Underline(true).Render(s.URL))
	}
	return lines
}

// peek shows the neighbours a stacked widget keeps ready, and the slide that
// is currently leaving.
func (r cardRender) peek(c *card, v state.View, styles Styles, inner int) string {
	var left, right string
	for i, role := range v.Roles {
		if i >= len(c.def.Slides) {
			break
		}
		title := slideLabel(c.def.Slides[i], i)
		switch role {
		case slider.RoleExitingLeft:
			left = styles.MutedText.Italic(true).Render("« " + title)
		case slider.RoleExitingRight:
			right = styles.MutedText.Italic(true).Render(title + " »")
		case slider.RoleUpcomingPrev:
			if left == "" {
				left = styles.FaintText.Render("‹ " + title)
			}
		case slider.RoleUpcomingNext:
			if right == "" {
				right = styles.FaintText.Render(title + " ›")
			}
		}
	}
	return spread(left, right, inner)
}

func slideLabel(s deck.Slide, i int) string {
	if s.Title != "" {
		return s.Title
	}
	return fmt.Sprintf("Slide %d", i+1)
}

// spread places left and right at the two ends of a line of width columns.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
