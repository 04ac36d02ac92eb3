package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/exads/chtop/internal/clickhouse"
)

func TestSortProcesses_LongestRunningFirst(t *testing.T) {
	procs := []clickhouse.Process{
		{QueryID: "Q1", Elapsed: 5 * time.Second, User: "a"},
		{QueryID: "Q2", Elapsed: 12 * time.Second, User: "b"},
		{QueryID: "Q3", Elapsed: 8 * time.Second},
	}

	sorted := sortProcesses(procs)
	ids := make([]string, 0, len(sorted))
	for _, p := range sorted {
		ids = append(ids, p.QueryID)
	}
	if got := strings.Join(ids, ","); got != "Q2,Q3,Q1" {
		t.Fatalf("order = %s, want Q2,Q3,Q1", got)
	}

	// The input slice is left untouched.
	if procs[0].QueryID != "Q1" {
		t.Fatalf("sortProcesses mutated its input: %#v", procs)
	}
}

func TestSortProcesses_TiesBreakByID(t *testing.T) {
	procs := []clickhouse.Process{
		{QueryID: "zz", Elapsed: 5 * time.Second},
		{QueryID: "aa", Elapsed: 5 * time.Second},
		{QueryID: "mm", Elapsed: 5 * time.Second},
	}
	sorted := sortProcesses(procs)
	if sorted[0].QueryID != "aa" || sorted[1].QueryID != "mm" || sorted[2].QueryID != "zz" {
		t.Fatalf("tie order = %v, want aa,mm,zz", sorted)
	}
}

func TestTableColumns_ResponsiveLayout(t *testing.T) {
	wide := tableColumns(160)
	compact := tableColumns(80)

	if !hasColumn(wide, "Host") || !hasColumn(wide, "Kind") {
		t.Fatalf("wide layout missing Host/Kind: %v", wide)
	}
	if hasColumn(compact, "Host") || hasColumn(compact, "Kind") {
		t.Fatalf("compact layout should drop Host/Kind: %v", compact)
	}

	// Query column is always last and never below its floor.
	last := compact[len(compact)-1]
	if last.title != "Query" || last.width < minQueryWidth {
		t.Fatalf("query column = %+v, want last with width >= %d", last, minQueryWidth)
	}
}

func hasColumn(cols []column, title string) bool {
	for _, c := range cols {
		if c.title == title {
			return true
		}
	}
	return false
}

func TestRenderTable_RowOrderAndOverflow(t *testing.T) {
	m := newTestModel(t, nil)
	m.snapshot.Processes = []clickhouse.Process{
		{QueryID: "Q1", Elapsed: 5 * time.Second, User: "a", Query: "SELECT 1"},
		{QueryID: "Q2", Elapsed: 12 * time.Second, User: "b", Query: "SELECT 2"},
	}

	out := m.renderTable(120, 20)
	q1 := strings.Index(out, "Q1")
	q2 := strings.Index(out, "Q2")
	if q1 < 0 || q2 < 0 {
		t.Fatalf("rendered table missing rows:\n%s", out)
	}
	if q2 > q1 {
		t.Fatalf("Q2 (12s) must render above Q1 (5s):\n%s", out)
	}

	// Overflow gets summarized instead of silently cut.
	many := make([]clickhouse.Process, 12)
	for i := range many {
		many[i] = clickhouse.Process{QueryID: string(rune('a' + i)), Elapsed: time.Duration(i) * time.Second}
	}
	m.snapshot.Processes = many
	out = m.renderTable(120, 6)
	if !strings.Contains(out, "more") {
		t.Fatalf("overflow summary missing:\n%s", out)
	}
	if got := strings.Count(out, "\n") + 1; got != 6 {
		t.Fatalf("rendered %d lines, want exactly 6", got)
	}
}

func TestRenderTable_EmptySnapshot(t *testing.T) {
	m := newTestModel(t, nil)
	out := m.renderTable(120, 10)
	if !strings.Contains(out, "No running queries") {
		t.Fatalf("empty table message missing:\n%s", out)
	}
}
