package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/slider"
	"github.com/five82/marquee/internal/state"
)

const (
	headerRows = 1
	footerRows = 1
	cardGap    = 1

	defaultCellWidthPx = 8
	logRefresh         = time.Second
)

// Options configures the UI.
type Options struct {
	Store       *state.Store
	Reloads     <-chan struct{} // signalled after every deck load attempt
	ThemeName   string
	PrefsPath   string
	LogFile     string
	CellWidthPx int // pixel width of one column, for swipe distances
	Logger      zerolog.Logger
	Clock       slider.Clock // nil uses the system clock
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store     *state.Store
	reloads   <-chan struct{}
	prefsPath string
	logFile   string
	cellWidth int
	log       zerolog.Logger
	clock     slider.Clock
	sender    *sender
	md        *markdown

	// UI state
	keys   keyMap
	help   help.Model
	theme  Theme
	width  int
	height int
	ready  bool

	// Page state
	snapshot state.Snapshot
	board    *board
	scroll   int
	focus    int
	hover    int // card under the pointer, -1 for none
	touch    int // card holding an active touch, -1 for none

	// Overlays
	showHelp bool
	showLogs bool
	logLines []string
	logErr   error
}

// New creates a new Bubble Tea model and starts a slider for every widget of
// the deck currently in the store.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	cellWidth := opts.CellWidthPx
	if cellWidth <= 0 {
		cellWidth = defaultCellWidthPx
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	m := Model{
		store:     store,
		reloads:   opts.Reloads,
		prefsPath: prefsPath,
		logFile:   opts.LogFile,
		cellWidth: cellWidth,
		log:       opts.Logger,
		clock:     opts.Clock,
		sender:    &sender{},
		md:        newMarkdown(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     GetTheme(themeName),
		hover:     -1,
		touch:     -1,
	}
	m.rebuild()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitReloadCmd(m.reloads)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width - 2
		m.ready = true
		m.clampScroll()
		m.syncViewport()
		return m, nil

	case widgetChangedMsg:
		return m, nil

	case deckReloadedMsg:
		m.rebuild()
		return m, waitReloadCmd(m.reloads)

	case tickMsg:
		if !m.showLogs {
			return m, nil
		}
		return m, tea.Batch(readLogsCmd(m.logFile, m.pageHeight()), tickCmd(logRefresh))

	case logTailMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLogs {
		return m.renderLogs()
	}
	return m.renderMain()
}

// Close stops every slider. It is safe to call more than once.
func (m Model) Close() {
	m.board.close()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		m.showLogs = !m.showLogs
		if m.showLogs {
			return m, tea.Batch(readLogsCmd(m.logFile, m.pageHeight()), tickCmd(logRefresh))
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.showLogs = false
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
			m.log.Warn().Err(err).Msg("save prefs failed")
		}
		return m, nil
	}

	if m.showLogs {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left, m.keys.Right):
		if m.board != nil {
			m.board.router.Dispatch(slider.ParseKey(msg.String()))
		}

	case key.Matches(msg, m.keys.Next):
		if c, ok := m.board.card(m.focus); ok {
			c.widget.ClickNext()
		}

	case key.Matches(msg, m.keys.Prev):
		if c, ok := m.board.card(m.focus); ok {
			c.widget.ClickPrev()
		}

	case key.Matches(msg, m.keys.Indicator):
		if c, ok := m.board.card(m.focus); ok {
			c.widget.ClickIndicator(int(msg.String()[0] - '1'))
		}

	case key.Matches(msg, m.keys.Pause):
		if c, ok := m.board.card(m.focus); ok {
			c.togglePause()
		}

	case key.Matches(msg, m.keys.Tab):
		m.moveFocus(1)

	case key.Matches(msg, m.keys.ShiftTab):
		m.moveFocus(-1)

	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)

	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)

	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.pageHeight())

	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.pageHeight())

	case key.Matches(msg, m.keys.Top):
		m.scrollTo(0)

	case key.Matches(msg, m.keys.Bottom):
		m.scrollTo(m.pageRows())
	}

	return m, nil
}

// rebuild replaces the board when the store holds a newer deck.
func (m *Model) rebuild() {
	m.snapshot = m.store.Snapshot()
	if !m.snapshot.HasDeck {
		return
	}
	if m.board != nil && m.board.generation == m.snapshot.Generation {
		return
	}
	m.board.close()
	m.board = newBoard(m.snapshot.Deck, m.snapshot.Generation, boardDeps{
		store:  m.store,
		clock:  m.clock,
		log:    m.log,
		sender: m.sender,
	})
	m.focus = 0
	m.hover = -1
	m.touch = -1
	m.log.Info().
		Uint64("generation", m.snapshot.Generation).
		Int("widgets", len(m.board.cards)).
		Msg("board built")
	m.clampScroll()
	m.syncViewport()
}

// renderMain renders the header, the visible part of the page and the footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderPage())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	left := styles.Logo.Render("marquee")
	if title := m.snapshot.Deck.Title; title != "" {
		left += styles.MutedText.Render("  " + title)
	}
	var right string
	switch {
	case m.snapshot.LastError != nil && !m.snapshot.HasDeck:
		right = styles.DangerText.Render(m.snapshot.LastError.Error())
	case m.snapshot.IsStale():
		right = styles.WarningText.Render("reload failed: " + m.snapshot.LastError.Error())
	case m.board != nil:
		right = styles.FaintText.Render(plural(len(m.board.cards), "widget"))
	}
	return styles.Header.Width(m.width).Render(ansi.Truncate(spread(left, right, m.width-2), m.width-2, "…"))
}

func (m Model) renderFooter() string {
	return m.theme.Styles().Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// Messages

type tickMsg time.Time

type deckReloadedMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitReloadCmd(reloads <-chan struct{}) tea.Cmd {
	if reloads == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-reloads; !ok {
			return nil
		}
		return deckReloadedMsg{}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	p := newProgram(ctx, m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	} else {
		m.Close()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// newProgram builds the program for m and routes widget notifications to it.
func newProgram(ctx context.Context, m Model, opts ...tea.ProgramOption) *tea.Program {
	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	m.sender.attach(p.Send)
	return p
}
