package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/exads/chtop/internal/clickhouse"
	"github.com/exads/chtop/internal/config"
	"github.com/exads/chtop/internal/state"
)

// scriptedBackend records action calls and returns canned results.
type scriptedBackend struct {
	fullText  string
	fullErr   error
	killErr   error
	fullCalls []string
	killCalls []string
}

func (s *scriptedBackend) ListProcesses(ctx context.Context) ([]clickhouse.Process, error) {
	return nil, nil
}

func (s *scriptedBackend) FetchFullQuery(ctx context.Context, queryID string) (string, error) {
	s.fullCalls = append(s.fullCalls, queryID)
	return s.fullText, s.fullErr
}

func (s *scriptedBackend) KillQuery(ctx context.Context, queryID string) error {
	s.killCalls = append(s.killCalls, queryID)
	return s.killErr
}

func newTestModel(t *testing.T, backend clickhouse.Backend) Model {
	t.Helper()
	if backend == nil {
		backend = &scriptedBackend{}
	}
	m := New(Options{
		Client: backend,
		Store:  &state.Store{},
		Config: config.Config{
			Addr:          "127.0.0.1:8123",
			Refresh:       50 * time.Millisecond,
			Timeout:       time.Second,
			FailThreshold: 3,
			PromptTimeout: time.Second,
		},
	})
	m.ready = true
	m.width = 120
	m.height = 40
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want ui.Model", next)
	}
	return model, cmd
}

func TestView_DeterministicForSameModel(t *testing.T) {
	m := newTestModel(t, nil)
	m.snapshot.Processes = []clickhouse.Process{
		{QueryID: "Q1", User: "alice", Elapsed: 5 * time.Second, MemoryBytes: 1 << 20, Query: "SELECT 1", Kind: "Select"},
		{QueryID: "Q2", User: "bob", Elapsed: 12 * time.Second, Query: "SELECT 2"},
	}
	m.snapshot.LastUpdated = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first := m.View()
	second := m.View()
	if first != second {
		t.Fatal("View() is not deterministic for identical model state")
	}
	if !strings.Contains(first, "Q2") || !strings.Contains(first, "Q1") {
		t.Fatalf("View missing process rows:\n%s", first)
	}
}

func TestQuit_Idempotent(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(t, m, keyRunes("q"))
	if !m.quitting {
		t.Fatal("quitting = false after q, want true")
	}
	if cmd == nil {
		t.Fatal("cmd = nil after q, want tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("cmd() = %T, want tea.QuitMsg", cmd())
	}

	// A second quit is a no-op repeat, not an error.
	m, cmd = update(t, m, keyRunes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("second q should remain in shutdown")
	}
}

func TestUnknownKeysIgnored(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := update(t, m, keyRunes("x"))
	if next.mode != modeTable || next.quitting || cmd != nil {
		t.Fatalf("unknown key changed state: mode=%v quitting=%v cmd=%v", next.mode, next.quitting, cmd)
	}
}

func TestPrompt_EscAbortsWithoutBackendCall(t *testing.T) {
	backend := &scriptedBackend{}
	m := newTestModel(t, backend)

	m, _ = update(t, m, keyRunes("k"))
	if m.mode != modePrompt {
		t.Fatalf("mode = %v after k, want modePrompt", m.mode)
	}

	m, _ = update(t, m, keyRunes("Q1"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeTable {
		t.Fatalf("mode = %v after esc, want modeTable", m.mode)
	}
	if cmd != nil {
		t.Fatalf("cmd = %v after esc, want nil", cmd)
	}
	if len(backend.killCalls) != 0 {
		t.Fatalf("kill calls = %v, want none after aborted prompt", backend.killCalls)
	}
}

func TestPrompt_EmptyEnterIsNoOp(t *testing.T) {
	backend := &scriptedBackend{}
	m := newTestModel(t, backend)

	m, _ = update(t, m, keyRunes("f"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeTable || cmd != nil {
		t.Fatalf("empty enter: mode=%v cmd=%v, want table/nil", m.mode, cmd)
	}
	if len(backend.fullCalls) != 0 {
		t.Fatalf("full-query calls = %v, want none", backend.fullCalls)
	}
}

func TestPrompt_TimeoutAbandonsAction(t *testing.T) {
	backend := &scriptedBackend{}
	m := newTestModel(t, backend)

	m, _ = update(t, m, keyRunes("f"))
	seq := m.promptSeq

	// A stale expiry from an earlier prompt is ignored.
	m, _ = update(t, m, promptExpiredMsg(seq-1))
	if m.mode != modePrompt {
		t.Fatalf("stale expiry closed the prompt")
	}

	m, _ = update(t, m, promptExpiredMsg(seq))
	if m.mode != modeTable {
		t.Fatalf("mode = %v after expiry, want modeTable", m.mode)
	}
	if len(backend.fullCalls) != 0 {
		t.Fatalf("full-query calls = %v, want none after timeout", backend.fullCalls)
	}
}

func TestShowFull_OpensOverlay(t *testing.T) {
	backend := &scriptedBackend{fullText: "SELECT * FROM big_table WHERE x = 1"}
	m := newTestModel(t, backend)

	m, _ = update(t, m, keyRunes("f"))
	m, _ = update(t, m, keyRunes("Q1"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no action command")
	}

	msg, ok := cmd().(actionResultMsg)
	if !ok {
		t.Fatalf("cmd() = %T, want actionResultMsg", cmd())
	}
	if msg.queryID != "Q1" || msg.err != nil {
		t.Fatalf("result = %+v, want Q1 success", msg)
	}
	if backend.fullCalls[0] != "Q1" {
		t.Fatalf("backend asked for %v, want Q1", backend.fullCalls)
	}

	m, _ = update(t, m, msg)
	if m.mode != modeOverlay {
		t.Fatalf("mode = %v after result, want modeOverlay", m.mode)
	}
	out := m.View()
	if !strings.Contains(out, "Q1") || !strings.Contains(out, "big_table") {
		t.Fatalf("overlay missing query text:\n%s", out)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeTable {
		t.Fatalf("mode = %v after dismiss, want modeTable", m.mode)
	}
}

func TestKill_NotFoundSurfacesNoticeAndStaysIdle(t *testing.T) {
	backend := &scriptedBackend{killErr: clickhouse.ErrNotFound}
	m := newTestModel(t, backend)

	m, _ = update(t, m, keyRunes("k"))
	m, _ = update(t, m, keyRunes("Q1"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no action command")
	}

	m, _ = update(t, m, cmd())
	if m.mode != modeTable {
		t.Fatalf("mode = %v after NotFound, want modeTable", m.mode)
	}
	if !strings.Contains(m.notice.text, "Q1 not found") {
		t.Fatalf("notice = %q, want Q1 not found", m.notice.text)
	}
	if !strings.Contains(m.View(), "Q1 not found") {
		t.Fatal("footer does not show the NotFound notice")
	}
}

func TestKill_SuccessWordsItAsRequest(t *testing.T) {
	backend := &scriptedBackend{}
	m := newTestModel(t, backend)

	m, _ = update(t, m, keyRunes("k"))
	m, _ = update(t, m, keyRunes("Q9"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())

	if !strings.Contains(m.notice.text, "kill requested for Q9") {
		t.Fatalf("notice = %q, want an asynchronous-request wording", m.notice.text)
	}
	if !m.notice.ok {
		t.Fatal("kill acknowledgement marked as failure")
	}
}

func TestTick_SkipsRefreshWhilePrompting(t *testing.T) {
	m := newTestModel(t, nil)

	// Idle tick: re-arm plus snapshot fetch.
	_, cmd := update(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick produced no command")
	}
	if batch, ok := cmd().(tea.BatchMsg); !ok || len(batch) != 2 {
		t.Fatalf("idle tick = %T, want batch of re-arm + fetch", cmd())
	}

	// Prompting tick: re-arm only, the display stays frozen.
	m, _ = update(t, m, keyRunes("f"))
	_, cmd = update(t, m, tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("prompt tick produced no command")
	}
	if _, ok := cmd().(tickMsg); !ok {
		t.Fatalf("prompt tick = %T, want bare re-arm", cmd())
	}
}

func TestNotice_ExpiresOnTick(t *testing.T) {
	m := newTestModel(t, nil)
	m.setNotice("kill requested for Q1 (asynchronous)", true)

	m, _ = update(t, m, tickMsg(time.Now()))
	if m.notice.text == "" {
		t.Fatal("notice expired immediately")
	}

	m, _ = update(t, m, tickMsg(time.Now().Add(noticeTTL+time.Second)))
	if m.notice.text != "" {
		t.Fatalf("notice = %q, want expired", m.notice.text)
	}
}

func TestFooter_EscalatesToPersistentBanner(t *testing.T) {
	m := newTestModel(t, nil)
	m.snapshot.Processes = []clickhouse.Process{{QueryID: "Q1", Elapsed: time.Second}}
	m.snapshot.LastError = clickhouse.ErrUnavailable
	m.snapshot.ConsecutiveFailures = 1

	out := m.View()
	if !strings.Contains(out, "fetch failed") || strings.Contains(out, "UNREACHABLE") {
		t.Fatalf("single failure should warn, not banner:\n%s", out)
	}
	// The last good snapshot stays on screen.
	if !strings.Contains(out, "Q1") {
		t.Fatalf("table lost last good data during failure:\n%s", out)
	}

	m.snapshot.ConsecutiveFailures = 3
	out = m.View()
	if !strings.Contains(out, "UNREACHABLE") {
		t.Fatalf("threshold failures should escalate to banner:\n%s", out)
	}
	if !strings.Contains(out, "Q1") {
		t.Fatalf("table lost last good data while offline:\n%s", out)
	}
}

func TestThemeCycle(t *testing.T) {
	m := newTestModel(t, nil)
	m.prefsPath = "" // don't touch the real prefs file in tests

	start := m.theme.Name
	m, _ = update(t, m, keyRunes("T"))
	if m.theme.Name == start {
		t.Fatalf("theme did not change from %q", start)
	}

	// Cycling through all themes comes back around.
	for i := 0; i < len(ThemeNames())-1; i++ {
		m, _ = update(t, m, keyRunes("T"))
	}
	if m.theme.Name != start {
		t.Fatalf("theme cycle ended at %q, want %q", m.theme.Name, start)
	}
}

func TestSnapshotMsg_ReplacesWholesale(t *testing.T) {
	m := newTestModel(t, nil)
	m.snapshot.Processes = []clickhouse.Process{{QueryID: "old"}}

	m, _ = update(t, m, snapshotMsg(state.Snapshot{
		Processes: []clickhouse.Process{{QueryID: "new"}},
	}))
	if len(m.snapshot.Processes) != 1 || m.snapshot.Processes[0].QueryID != "new" {
		t.Fatalf("snapshot = %#v, want wholesale replacement", m.snapshot.Processes)
	}
}
