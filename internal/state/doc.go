// Package state holds the snapshot of running queries shared between the
// background poller and the UI.
//
// The Store is the single synchronization point in chtop: the poller writes
// whole snapshots, the UI reads whole snapshots, and neither side ever sees
// a half-updated process list. Snapshots are copied on the way in and on the
// way out, so a frame rendered from one snapshot stays internally consistent
// even while the next poll lands.
//
// A failed poll does not clear the last good process list; it records the
// error and bumps ConsecutiveFailures so the UI can escalate from a footer
// message to a persistent offline banner without losing the table.
package state
