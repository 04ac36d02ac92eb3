package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptState wraps the query-ID input line.
type promptState struct {
	input textinput.Model
}

// openPrompt enters modePrompt for the given action. The prompt is the one
// intentional suspension of the refresh cadence; it is bounded by the
// configured timeout and by Esc.
func (m Model) openPrompt(kind actionKind) (tea.Model, tea.Cmd) {
	input := textinput.New()
	input.Placeholder = "query_id"
	input.CharLimit = 128
	input.Width = 48
	input.Focus()

	m.prompt = promptState{input: input}
	m.promptKind = kind
	m.promptSeq++
	m.mode = modePrompt

	return m, tea.Batch(
		textinput.Blink,
		promptTimeoutCmd(m.cfg.PromptTimeout, m.promptSeq),
	)
}

// closePrompt abandons the prompt and resumes the normal cadence.
func (m *Model) closePrompt() {
	m.prompt = promptState{}
	m.mode = modeTable
}

// handlePromptKey processes keys while the operator types a query ID.
func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		// Aborted prompt: no backend call, display untouched.
		m.closePrompt()
		return m, nil

	case "enter":
		queryID := strings.TrimSpace(m.prompt.input.Value())
		kind := m.promptKind
		m.closePrompt()
		if queryID == "" {
			return m, nil
		}
		return m, executeActionCmd(m.ctx, m.client, kind, queryID, m.cfg.Timeout)
	}

	var cmd tea.Cmd
	m.prompt.input, cmd = m.prompt.input.Update(msg)
	return m, cmd
}

// promptTimeoutCmd schedules the prompt's idle timeout. The sequence number
// ties the expiry to one specific prompt so a late message cannot close a
// newer one.
func promptTimeoutCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return promptExpiredMsg(seq)
	})
}

// renderPrompt renders the input line shown below the table.
func (m Model) renderPrompt() string {
	styles := m.theme.Styles()

	label := "Query ID to inspect:"
	if m.promptKind == actionKill {
		label = "Query ID to kill:"
	}

	hint := styles.FaintText.Render("enter to confirm, esc to cancel")
	return " " + styles.PromptLabel.Render(label) + " " + m.prompt.input.View() + "  " + hint
}
