package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/marquee/internal/logtail"
)

type logTailMsg struct {
	lines []string
	err   error
}

func readLogsCmd(path string, maxLines int) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logTailMsg{}
		}
		lines, err := logtail.Read(path, maxLines)
		if err != nil {
			return logTailMsg{err: err}
		}
		return logTailMsg{lines: logtail.FormatLines(lines)}
	}
}

// renderLogs renders the log tail overlay in place of the page.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	height := m.pageHeight()
	width := m.width - 2

	body := make([]string, 0, height)
	switch {
	case m.logErr != nil:
		body = append(body, styles.DangerText.Render(m.logErr.Error()))
	case m.logFile == "":
		body = append(body, styles.MutedText.Render("Logging to a file is disabled"))
	case len(m.logLines) == 0:
		body = append(body, styles.MutedText.Render("No log entries yet"))
	default:
		lines := m.logLines
		if len(lines) > height {
			lines = lines[len(lines)-height:]
		}
		for _, line := range lines {
			body = append(body, logLineStyle(line, styles).Render(ansi.Truncate(line, width, "…")))
		}
	}
	for len(body) < height {
		body = append(body, "")
	}

	title := styles.Logo.Render("marquee") + styles.MutedText.Render("  log  "+m.logFile)
	header := styles.Header.Width(m.width).Render(title)
	footer := styles.Footer.Width(m.width).Render("L/esc close")
	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(body, "\n"), footer)
}

func logLineStyle(line string, styles Styles) lipgloss.Style {
	switch {
	case strings.Contains(line, " ERR ") || strings.Contains(line, " FTL "):
		return styles.DangerText
	case strings.Contains(line, " WRN "):
		return styles.WarningText
	case strings.Contains(line, " DBG "):
		return styles.FaintText
	default:
		return styles.Text
	}
}
