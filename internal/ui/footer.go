package ui

import (
	"fmt"
	"strings"
)

// renderFooter renders the status line: last fetch result, escalated to a
// persistent banner when the server has been unreachable for several polls
// in a row. Action results ride along as a transient notice.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	var parts []string
	switch {
	case snap.Offline(m.cfg.FailThreshold):
		parts = append(parts, styles.Banner.Render(
			fmt.Sprintf("CLICKHOUSE UNREACHABLE (%d failed polls, retrying)", snap.ConsecutiveFailures)))
		if !snap.LastUpdated.IsZero() {
			parts = append(parts, styles.MutedText.Render("last data "+snap.LastUpdated.Format("15:04:05")))
		}

	case snap.LastError != nil:
		parts = append(parts,
			styles.WarningText.Render("fetch failed: "+truncate(snap.LastError.Error(), 60)),
			styles.MutedText.Render("showing last good data"))

	case !snap.LastUpdated.IsZero():
		parts = append(parts, styles.MutedText.Render("updated "+snap.LastUpdated.Format("15:04:05")))
	}

	if m.notice.text != "" {
		noticeStyle := styles.SuccessText
		if !m.notice.ok {
			noticeStyle = styles.DangerText
		}
		parts = append(parts, noticeStyle.Render(truncate(m.notice.text, 80)))
	}

	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  "))
}
