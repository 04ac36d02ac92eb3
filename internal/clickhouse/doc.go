// Package clickhouse implements the client side of the ClickHouse HTTP
// interface that chtop depends on.
//
// Three capabilities are exposed through the Backend interface:
//
//   - ListProcesses: a snapshot of system.processes, one Process per
//     running query
//   - FetchFullQuery: the complete text of one query by ID, consulting
//     system.processes first and today's system.query_log as a fallback
//   - KillQuery: an asynchronous KILL QUERY request; the server only begins
//     cancellation, it does not wait for the query to stop
//
// All statements are sent as FORMAT JSON over the HTTP interface
// (GET /?query=... for reads, POST for KILL). Credentials travel as
// X-ClickHouse-User / X-ClickHouse-Key headers.
//
// Failures map onto two sentinel errors: ErrUnavailable for transport
// problems, timeouts, and HTTP error statuses, and ErrNotFound when a query
// ID has vanished between the snapshot and the action. Both wrap the
// underlying cause and are matched with errors.Is.
//
// Row decoding is deliberately tolerant: ClickHouse quotes 64-bit integers
// in JSON output by default, and a malformed value in one column must not
// cost the whole snapshot. Numeric fields decode to zero on bad input.
package clickhouse
