package ui

import (
	"fmt"
	"strings"
)

// renderHeader renders the top status bar: logo, server, and query count.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	dot := styles.SuccessText.Render("●")
	if m.snapshot.Offline(m.cfg.FailThreshold) {
		dot = styles.DangerText.Render("●")
	} else if m.snapshot.LastError != nil {
		dot = styles.WarningText.Render("●")
	}

	count := len(m.snapshot.Processes)
	label := "queries"
	if count == 1 {
		label = "query"
	}

	parts := []string{
		styles.Logo.Render("chtop"),
		dot + " " + styles.AccentText.Render(m.cfg.Addr),
		styles.Text.Render(fmt.Sprintf("%d running %s", count, label)),
	}
	if m.cfg.User != "" {
		parts = append(parts, styles.MutedText.Render("as "+m.cfg.User))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderCommandBar renders the key hints line.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	hints := []struct{ key, desc string }{
		{"q", "quit"},
		{"f", "full query"},
		{"k", "kill query"},
		{"T", "theme"},
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, styles.AccentText.Render("<"+h.key+">")+" "+styles.FaintText.Render(h.desc))
	}
	return " " + strings.Join(parts, "  ")
}
