// Package ui implements the chtop terminal dashboard with Bubble Tea.
//
// # Event flow
//
// The Model is a state machine with three modes:
//
//   - table: the live process table. A tick message arrives on the refresh
//     interval, pulls the latest snapshot from the state store, and re-arms
//     itself. Keys: q quits, f and k open the query-ID prompt, T cycles the
//     theme.
//   - prompt: the operator is typing a query ID. Ticks keep firing but skip
//     the snapshot refresh, so the display is frozen for exactly as long as
//     the interaction lasts. The prompt is bounded by a timeout and by Esc;
//     both abandon the action without touching the backend.
//   - overlay: a fetched full query text fills the screen in a scrollable
//     viewport until dismissed.
//
// Backend actions (full-text lookup, kill request) run as commands off the
// update loop with their own timeouts, so a slow server never freezes the
// table. Results come back as messages attributed by query ID and surface
// either as the overlay (full text) or as a transient footer notice (kill
// acknowledgement, errors).
//
// # Rendering
//
// View is a pure function of the Model: identical model state and terminal
// dimensions produce identical frames. Rows are sorted by descending
// elapsed time with ties broken by query ID, so ordering is stable across
// refreshes. The footer carries the last fetch time, a warning for a single
// failed poll, and a persistent banner once consecutive failures pass the
// configured threshold. The table always shows the last good snapshot;
// a bad poll never blanks it.
package ui
