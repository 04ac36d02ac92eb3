package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/exads/chtop/internal/clickhouse"
)

// actionKind identifies the two operator actions that need a query ID.
type actionKind int

const (
	actionShowFull actionKind = iota
	actionKill
)

func (k actionKind) String() string {
	if k == actionKill {
		return "kill"
	}
	return "show full query"
}

// actionResultMsg carries the outcome of one backend action back into the
// update loop. Results are attributed by query ID, not by arrival order, so
// back-to-back actions on different IDs cannot mislabel each other.
type actionResultMsg struct {
	kind    actionKind
	queryID string
	text    string // full query text for actionShowFull
	err     error
}

// executeActionCmd runs a backend action off the render loop with its own
// timeout. The live table keeps refreshing while this is in flight.
func executeActionCmd(ctx context.Context, backend clickhouse.Backend, kind actionKind, queryID string, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		actionCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		msg := actionResultMsg{kind: kind, queryID: queryID}
		switch kind {
		case actionShowFull:
			msg.text, msg.err = backend.FetchFullQuery(actionCtx, queryID)
		case actionKill:
			msg.err = backend.KillQuery(actionCtx, queryID)
		}
		return msg
	}
}

// handleActionResult folds an action outcome into the display: full query
// text opens the overlay, everything else becomes a footer notice.
func (m Model) handleActionResult(msg actionResultMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil && msg.kind == actionShowFull {
		if m.mode == modeTable {
			m.openOverlay(msg.queryID, msg.text)
			return m, nil
		}
		// The operator is already typing the next ID; don't steal the
		// prompt, just confirm in the footer.
		m.setNotice(fmt.Sprintf("fetched full text of %s", msg.queryID), true)
		return m, nil
	}

	m.setNotice(resultNotice(msg), msg.err == nil)
	return m, nil
}

func (m *Model) setNotice(text string, ok bool) {
	m.notice = notice{text: text, ok: ok, expires: time.Now().Add(noticeTTL)}
}

// resultNotice renders an action outcome as one footer line.
func resultNotice(msg actionResultMsg) string {
	if msg.err == nil {
		// Only the kill acknowledgement lands here. The wording is careful:
		// cancellation was requested, the query may still be running.
		return fmt.Sprintf("kill requested for %s (asynchronous)", msg.queryID)
	}
	switch {
	case errors.Is(msg.err, clickhouse.ErrNotFound):
		return fmt.Sprintf("%s not found (already finished?)", msg.queryID)
	case errors.Is(msg.err, clickhouse.ErrUnavailable):
		return fmt.Sprintf("%s failed: server unavailable", msg.kind)
	default:
		return fmt.Sprintf("%s failed: %v", msg.kind, msg.err)
	}
}
