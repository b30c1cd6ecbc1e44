package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/mood/internal/moodlog"
)

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("How are you feeling today?"))
	b.WriteString("\n\n")
	b.WriteString(m.moodPicker())
	b.WriteString("\n\n")
	b.WriteString(m.note.View())
	b.WriteByte('\n')

	switch {
	case m.errorLine != "":
		b.WriteString("\n")
		b.WriteString(m.theme.Error.Render("! " + m.errorLine))
		b.WriteByte('\n')
	case m.flash != "":
		b.WriteString("\n")
		b.WriteString(m.theme.Flash.Render(m.flash))
		b.WriteByte('\n')
	case m.statusLine != "":
		b.WriteString("\n")
		b.WriteString(m.theme.Label.Render(m.statusLine))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Quote.Render(fmt.Sprintf("%q", m.quote.Text)))
	b.WriteByte('\n')
	b.WriteString(m.theme.Author.Render("  - " + m.quote.Author))
	b.WriteByte('\n')

	if m.focus == focusEmail {
		b.WriteString("\n")
		b.WriteString(m.theme.Label.Render("Subscribe to the newsletter (Enter to send, Esc to cancel):"))
		b.WriteByte('\n')
		b.WriteString(m.email.View())
		b.WriteByte('\n')
	}

	if m.panel == panelShown {
		b.WriteString("\n")
		b.WriteString(m.theme.Panel.Render(m.historyPanel()))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help()))
	b.WriteByte('\n')

	return b.String()
}

func (m Model) moodPicker() string {
	cells := make([]string, 0, len(moodlog.Moods))
	for _, mood := range moodlog.Moods {
		kind := moodlog.KindOf(mood)
		text := fmt.Sprintf("%d %s %s", int(mood), kind.Glyph, kind.Label)
		style := m.theme.Mood
		if mood == m.selected {
			style = m.theme.Selected.Foreground(lipgloss.Color(kind.Color.ANSI()))
		}
		cells = append(cells, style.Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) historyPanel() string {
	if m.loading && m.rows == nil {
		return "Loading history..."
	}
	if len(m.rows) == 0 {
		return m.theme.Muted.Render(msgEmptyHistory)
	}

	var b strings.Builder
	for _, row := range m.rows {
		b.WriteString(m.theme.Label.Render(row.Date))
		b.WriteString("  ")
		b.WriteString(colorStyle(row.Color).Render(row.Glyph + " " + row.Label))
		if row.HasNote() {
			b.WriteString("  ")
			b.WriteString(m.theme.Muted.Render(row.Note))
		}
		b.WriteByte('\n')
	}
	if view := m.chart.View(); view != "" {
		b.WriteByte('\n')
		b.WriteString(view)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) help() string {
	switch m.focus {
	case focusNote:
		return "Enter save  Esc/Tab back to moods  ctrl+c quit"
	case focusEmail:
		return "Enter subscribe  Esc cancel  ctrl+c quit"
	}
	panel := "h show history"
	if m.panel == panelShown {
		panel = "h hide history"
	}
	return "1-5 or <-/-> pick mood  n note  Enter save  " + panel + "  r new quote  s subscribe  q quit"
}
