package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/marquee/internal/slider"
	"github.com/five82/marquee/internal/state"
)

const wheelStep = 3

// slot is where a card sits on the page, in page rows.
type slot struct {
	top    int
	width  int
	height int
}

func (s slot) bottom() int { return s.top + s.height }

// layout stacks the cards vertically with a gap between them.
func (m Model) layout() []slot {
	if m.board == nil {
		return nil
	}
	slots := make([]slot, len(m.board.cards))
	top := 0
	for i, c := range m.board.cards {
		w, h := cardSize(c.settings, m.width)
		slots[i] = slot{top: top, width: w, height: h}
		top += h + cardGap
	}
	return slots
}

// pageHeight is the number of rows available to cards.
func (m Model) pageHeight() int {
	h := m.height - headerRows - footerRows
	if h < 1 {
		return 1
	}
	return h
}

// pageRows is the total height of the stacked cards.
func (m Model) pageRows() int {
	slots := m.layout()
	if len(slots) == 0 {
		return 0
	}
	return slots[len(slots)-1].bottom()
}

func (m *Model) scrollBy(delta int) {
	m.scrollTo(m.scroll + delta)
}

func (m *Model) scrollTo(row int) {
	m.scroll = row
	m.clampScroll()
	m.syncViewport()
}

func (m *Model) clampScroll() {
	maxScroll := m.pageRows() - m.pageHeight()
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// syncViewport tells every slider where it is relative to the visible page,
// which subscribes visible widgets to arrow keys and drops the rest.
func (m Model) syncViewport() {
	if m.board == nil || !m.ready {
		return
	}
	viewport := m.pageHeight()
	for i, s := range m.layout() {
		m.board.cards[i].widget.SetViewport(slider.Bounds{
			Top:    s.top - m.scroll,
			Bottom: s.bottom() - m.scroll,
		}, viewport)
	}
}

// moveFocus cycles focus and scrolls the focused card into view.
func (m *Model) moveFocus(delta int) {
	if m.board == nil || len(m.board.cards) == 0 {
		return
	}
	n := len(m.board.cards)
	m.focus = slider.Wrap(m.focus, delta, n)
	s := m.layout()[m.focus]
	switch {
	case s.top < m.scroll:
		m.scrollTo(s.top)
	case s.bottom() > m.scroll+m.pageHeight():
		m.scrollTo(s.bottom() - m.pageHeight())
	}
}

// renderPage renders the visible window of the page.
func (m Model) renderPage() string {
	height := m.pageHeight()
	if m.board == nil {
		msg := "No deck loaded"
		if m.snapshot.LastError != nil {
			msg = m.snapshot.LastError.Error()
		}
		lines := make([]string, height)
		lines[0] = m.theme.Styles().MutedText.Render(msg)
		return strings.Join(lines, "\n")
	}

	var page []string
	for i, s := range m.layout() {
		// Only cards that touch the window are rendered.
		if s.bottom() <= m.scroll || s.top >= m.scroll+height {
			page = append(page, make([]string, s.height+cardGap)...)
			continue
		}
		frame := m.renderer(i).render(m.board.cards[i], m.view(i), m.width)
		page = append(page, frame.lines...)
		page = append(page, make([]string, cardGap)...)
	}

	visible := make([]string, height)
	for row := 0; row < height; row++ {
		if idx := m.scroll + row; idx < len(page) {
			visible[row] = page[idx]
		}
	}
	return strings.Join(visible, "\n")
}

func (m Model) renderer(i int) cardRender {
	return cardRender{theme: m.theme, md: m.md, focused: i == m.focus}
}

// view returns the rendered state of card i. Cards whose view is gone, during
// a deck reload, show as empty.
func (m Model) view(i int) state.View {
	v, ok := m.store.View(m.board.cards[i].id)
	if !ok {
		return state.View{Active: -1}
	}
	return v
}

// cardPoint is a screen position resolved to a card.
type cardPoint struct {
	card int
	row  int // row inside the card, 0 is the top border
	col  int // column from the start of the card content
}

// cardAt maps screen coordinates to the card under them.
func (m Model) cardAt(x, y int) (cardPoint, bool) {
	row := y - headerRows
	if row < 0 || row >= m.pageHeight() {
		return cardPoint{}, false
	}
	row += m.scroll
	for i, s := range m.layout() {
		if row >= s.top && row < s.bottom() && x >= 0 && x < s.width {
			return cardPoint{card: i, row: row - s.top, col: x - cardBorder - cardPadding}, true
		}
	}
	return cardPoint{}, false
}

// handleMouse turns mouse events into clicks, touches and hover changes.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp || m.showLogs || m.board == nil {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
		return m, nil
	}

	pt, ok := m.cardAt(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if !ok {
			pt.card = -1
		}
		m.setHover(pt.card)

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !ok {
			return m, nil
		}
		m.focus = pt.card
		c := m.board.cards[pt.card]
		s := m.layout()[pt.card]
		if pt.row == s.height-cardBorder-1 {
			if h, hit := m.controlAt(pt); hit {
				switch h.kind {
				case hitPrev:
					c.widget.ClickPrev()
				case hitNext:
					c.widget.ClickNext()
				case hitDot:
					c.widget.ClickIndicator(h.index)
				}
				return m, nil
			}
		}
		m.touch = pt.card
		c.widget.TouchStart(m.px(msg.X))

	case tea.MouseActionRelease:
		if c, found := m.board.card(m.touch); found {
			c.widget.TouchEnd(m.px(msg.X))
		}
		m.touch = -1
	}
	return m, nil
}

// controlAt finds the control under pt, which must be on the controls row.
func (m Model) controlAt(pt cardPoint) (hit, bool) {
	c := m.board.cards[pt.card]
	if len(c.def.Slides) == 0 {
		return hit{}, false
	}
	v := m.view(pt.card)
	_, hits := controls(c.settings.ShowControls, make([]bool, len(v.Indicators)), Styles{})
	return hitAt(hits, pt.col)
}

// setHover moves the hover from the previous card to card i (-1 for none).
func (m *Model) setHover(i int) {
	if i == m.hover {
		return
	}
	if c, ok := m.board.card(m.hover); ok {
		c.widget.HoverLeave()
	}
	if c, ok := m.board.card(i); ok {
		c.widget.HoverEnter()
	}
	m.hover = i
}

// px converts a column to the pixel distance used for swipe detection.
func (m Model) px(col int) float64 {
	return float64(col * m.cellWidth)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
