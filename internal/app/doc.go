// Package app wires chtop together: configuration, the ClickHouse client,
// the background poller, and the UI.
//
// Run performs one synchronous fetch before anything else. If that probe
// fails the process exits non-zero instead of opening a dashboard with no
// data behind it; every later fetch failure is survivable and surfaces in
// the UI footer instead.
//
// The poller is the only writer to the state.Store. It ticks at the
// configured interval (default 3s), bounds each fetch with the request
// timeout, and never stops on failure. Slow servers therefore cost at most
// one timed-out fetch per tick, never a frozen display.
package app
