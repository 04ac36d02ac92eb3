// Package config loads chtop's configuration from
// ~/.config/chtop/config.toml (or an explicit path).
//
// All fields are optional; a missing file yields a config that points at a
// local ClickHouse on 127.0.0.1:8123 with the documented defaults: 3 second
// refresh, 5 second request timeout, offline banner after 3 consecutive
// failed polls, 30 second query-ID prompt timeout.
//
// Example:
//
//	addr = "ch01.internal:8123"
//	user = "monitor"
//	password = "..."
//	refresh_seconds = 5
//	fail_threshold = 3
//
// Credentials are passed through to the server untouched; chtop performs no
// authentication of its own.
package config
