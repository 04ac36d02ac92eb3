package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// overlayState holds the expanded full-query panel.
type overlayState struct {
	view    viewport.Model
	queryID string
	text    string
	active  bool
}

// openOverlay replaces the table with the full text of one query.
func (m *Model) openOverlay(queryID, text string) {
	m.overlay = overlayState{queryID: queryID, text: text, active: true}
	m.overlay.resize(m.width, m.height)
	m.mode = modeOverlay
}

func (m *Model) closeOverlay() {
	m.overlay = overlayState{}
	m.mode = modeTable
}

// resize rebuilds the viewport for the current terminal size. Content is
// re-wrapped so long single-line queries stay readable.
func (o *overlayState) resize(width, height int) {
	if !o.active || width <= 0 || height <= 2 {
		return
	}
	o.view = viewport.New(width, height-2) // title + hint line
	o.view.SetContent(lipgloss.NewStyle().Width(width).Render(o.text))
}

// handleOverlayKey processes keys while the full-query panel is open.
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc", "q", "enter":
		m.closeOverlay()
		return m, nil
	}

	var cmd tea.Cmd
	m.overlay.view, cmd = m.overlay.view.Update(msg)
	return m, cmd
}

// renderOverlay renders the expanded panel: title, scrollable query text,
// and a dismissal hint.
func (m Model) renderOverlay() string {
	styles := m.theme.Styles()

	title := styles.Header.Width(m.width).Render(
		styles.Logo.Render("chtop") + "  " +
			styles.Text.Render("full query "+m.overlay.queryID),
	)
	hint := styles.Footer.Width(m.width).Render("scroll with arrows, esc to close")

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.overlay.view.View())
	b.WriteString("\n")
	b.WriteString(hint)
	return b.String()
}
