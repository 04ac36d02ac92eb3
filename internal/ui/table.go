package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/exads/chtop/internal/clickhouse"
)

// Terminal width thresholds for responsive layouts.
const (
	// layoutCompactWidth is the threshold below which the Host and Kind
	// columns are dropped.
	layoutCompactWidth = 110

	// colGap is the padding between columns.
	colGap = 2

	// minQueryWidth is the floor for the query text column.
	minQueryWidth = 16
)

// column describes one table column.
type column struct {
	title string
	width int
	right bool
}

// tableColumns computes the column layout for a terminal width. The query
// text always takes whatever is left.
func tableColumns(width int) []column {
	compact := width < layoutCompactWidth

	cols := []column{
		{title: "ID", width: 36},
		{title: "User", width: 10},
	}
	if !compact {
		cols = append(cols, column{title: "Host", width: 21})
	}
	cols = append(cols,
		column{title: "Elapsed", width: 9, right: true},
		column{title: "Memory", width: 10, right: true},
	)
	if !compact {
		cols = append(cols, column{title: "Kind", width: 7})
	}

	used := 0
	for _, c := range cols {
		used += c.width + colGap
	}
	queryWidth := width - used
	if queryWidth < minQueryWidth {
		queryWidth = minQueryWidth
	}
	return append(cols, column{title: "Query", width: queryWidth})
}

// sortProcesses orders a snapshot for display: longest running first, ties
// broken by ascending query ID. The ordering is total, so rows do not
// jitter between refreshes with similar data. The input is not modified.
func sortProcesses(procs []clickhouse.Process) []clickhouse.Process {
	sorted := append([]clickhouse.Process(nil), procs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Elapsed != sorted[j].Elapsed {
			return sorted[i].Elapsed > sorted[j].Elapsed
		}
		return sorted[i].QueryID < sorted[j].QueryID
	})
	return sorted
}

// renderTable renders the process table into a fixed width and height.
func (m Model) renderTable(width, height int) string {
	styles := m.theme.Styles()
	cols := tableColumns(width)
	procs := sortProcesses(m.snapshot.Processes)

	lines := make([]string, 0, height)

	// Header row.
	headers := make([]string, 0, len(cols))
	for _, c := range cols {
		headers = append(headers, styles.TableHeader.Render(pad(c.title, c)))
	}
	lines = append(lines, " "+strings.Join(headers, strings.Repeat(" ", colGap)))

	if len(procs) == 0 {
		lines = append(lines, "", " "+styles.MutedText.Render("No running queries"))
	} else {
		maxRows := height - 1
		shown := len(procs)
		overflow := 0
		if shown > maxRows && maxRows > 0 {
			shown = maxRows - 1
			overflow = len(procs) - shown
		}
		for _, p := range procs[:shown] {
			lines = append(lines, " "+m.renderRow(p, cols, styles))
		}
		if overflow > 0 {
			lines = append(lines, " "+styles.FaintText.Render(fmt.Sprintf("… %d more", overflow)))
		}
	}

	// Pad to the full height so the footer stays pinned to the bottom.
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

// renderRow renders one process across the column layout.
func (m Model) renderRow(p clickhouse.Process, cols []column, styles Styles) string {
	cells := make([]string, 0, len(cols))
	for _, c := range cols {
		var text string
		style := styles.Text
		switch c.title {
		case "ID":
			text = p.QueryID
		case "User":
			text = p.User
		case "Host":
			text = p.Address
			style = styles.MutedText
		case "Elapsed":
			text = formatElapsed(p.Elapsed)
			style = styles.WarningText
		case "Memory":
			text = formatBytes(p.MemoryBytes)
		case "Kind":
			text = p.Kind
			style = styles.KindStyle(p.Kind)
		case "Query":
			text = collapseSpaces(p.Query)
			style = styles.MutedText
		}
		cells = append(cells, style.Render(pad(truncate(text, c.width), c)))
	}
	return strings.Join(cells, strings.Repeat(" ", colGap))
}

// pad aligns a cell value within its column.
func pad(s string, c column) string {
	if c.right {
		return padLeft(s, c.width)
	}
	return padRight(s, c.width)
}
