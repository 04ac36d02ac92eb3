package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/exads/chtop/internal/clickhouse"
	"github.com/exads/chtop/internal/config"
	"github.com/exads/chtop/internal/prefs"
	"github.com/exads/chtop/internal/state"
)

// mode tracks what the keyboard is currently driving.
type mode int

const (
	// modeTable is the idle state: live table, single-key commands.
	modeTable mode = iota
	// modePrompt is the one sanctioned suspension of the refresh cadence:
	// the operator is typing a query ID.
	modePrompt
	// modeOverlay shows a fetched full query text over the table.
	modeOverlay
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    clickhouse.Backend
	Store     *state.Store
	Config    config.Config
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    clickhouse.Backend
	store     *state.Store
	cfg       config.Config
	prefsPath string

	// UI state
	theme    Theme
	mode     mode
	width    int
	height   int
	ready    bool
	quitting bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Prompt state (modePrompt)
	prompt     promptState
	promptSeq  int
	promptKind actionKind

	// Overlay state (modeOverlay)
	overlay overlayState

	// Transient action-result notice shown in the footer.
	notice notice
}

// notice is a short footer message describing the last action result. It is
// replaced by the next action and expires on its own.
type notice struct {
	text    string
	ok      bool
	expires time.Time
}

// noticeTTL is how long an action result stays in the footer.
const noticeTTL = 10 * time.Second

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := opts.Config
	if cfg.Refresh <= 0 {
		cfg.Refresh = config.DefaultRefresh
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultTimeout
	}
	if cfg.FailThreshold <= 0 {
		cfg.FailThreshold = config.DefaultFailThreshold
	}
	if cfg.PromptTimeout <= 0 {
		cfg.PromptTimeout = config.DefaultPromptTimeout
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		cfg:       cfg,
		prefsPath: prefsPath,
		theme:     GetTheme(opts.ThemeName),
		mode:      modeTable,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.cfg.Refresh),
	}
	// Pull the seeded snapshot immediately so the first frame has data.
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.overlay.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		return m, nil

	case actionResultMsg:
		return m.handleActionResult(msg)

	case promptExpiredMsg:
		// A stale expiry (the prompt it belonged to is gone) is ignored.
		if m.mode == modePrompt && int(msg) == m.promptSeq {
			m.closePrompt()
		}
		return m, nil
	}

	return m, nil
}

// handleTick processes the polling tick. The tick keeps firing while a
// prompt is open, but the snapshot refresh is skipped so the display stays
// frozen for the duration of the interaction.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.cfg.Refresh)}

	if m.mode != modePrompt && m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.notice.text != "" && now.After(m.notice.expires) {
		m.notice = notice{}
	}

	return m, tea.Batch(cmds...)
}

// handleKey routes keyboard input by mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modePrompt:
		return m.handlePromptKey(msg)
	case modeOverlay:
		return m.handleOverlayKey(msg)
	}
	return m.handleTableKey(msg)
}

// handleTableKey processes keys in the idle state. Unrecognized keys are
// deliberately ignored.
func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		// Repeated quit presses collapse into the single shutdown.
		m.quitting = true
		return m, tea.Quit

	case "f":
		return m.openPrompt(actionShowFull)

	case "k":
		return m.openPrompt(actionKill)

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model. Rendering is a pure function of the model:
// the same model and dimensions always produce the same frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.mode == modeOverlay {
		return m.renderOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderTable(m.width, m.tableHeight()))
	b.WriteString("\n")
	if m.mode == modePrompt {
		b.WriteString(m.renderPrompt())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

// tableHeight returns the rows available to the process table after the
// fixed chrome lines.
func (m Model) tableHeight() int {
	h := m.height - 3 // header + command bar + footer
	if m.mode == modePrompt {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type promptExpiredMsg int

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until quit or context
// cancellation. Cancellation (SIGINT/SIGTERM) counts as a clean exit.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
