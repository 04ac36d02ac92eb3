package clickhouse

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Process describes one entry of system.processes at fetch time. Values are
// immutable once decoded; a new slice is built on every poll.
type Process struct {
	QueryID     string
	User        string
	Address     string
	Elapsed     time.Duration
	MemoryBytes int64
	Query       string
	Kind        string
}

// queryResult mirrors the envelope of a ClickHouse FORMAT JSON response.
// Only the data rows are of interest; meta and statistics are ignored.
type queryResult[T any] struct {
	Data []T `json:"data"`
}

// processRow is the wire form of a system.processes row. Numeric fields use
// tolerant decoders because ClickHouse quotes 64-bit integers in JSON by
// default (output_format_json_quote_64bit_integers) and because a malformed
// value must degrade to zero instead of discarding the whole snapshot.
type processRow struct {
	QueryID     string       `json:"query_id"`
	User        string       `json:"user"`
	Address     string       `json:"address"`
	Elapsed     looseFloat64 `json:"elapsed"`
	MemoryUsage looseInt64   `json:"memory_usage"`
	Query       string       `json:"query"`
	QueryKind   string       `json:"query_kind"`
}

// queryTextRow carries the single column returned by full-query lookups.
type queryTextRow struct {
	Query string `json:"query"`
}

// killRow mirrors one row of a KILL QUERY result set.
type killRow struct {
	QueryID    string `json:"query_id"`
	KillStatus string `json:"kill_status"`
}

func (r processRow) toProcess() Process {
	elapsed := time.Duration(float64(r.Elapsed) * float64(time.Second))
	if elapsed < 0 {
		elapsed = 0
	}
	return Process{
		QueryID:     r.QueryID,
		User:        r.User,
		Address:     r.Address,
		Elapsed:     elapsed,
		MemoryBytes: int64(r.MemoryUsage),
		Query:       r.Query,
		Kind:        r.QueryKind,
	}
}

// looseFloat64 decodes from a JSON number or a quoted number. Anything else
// decodes to zero rather than failing the row.
type looseFloat64 float64

func (f *looseFloat64) UnmarshalJSON(data []byte) error {
	*f = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			*f = looseFloat64(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = looseFloat64(v)
	}
	return nil
}

// looseInt64 decodes from a JSON number or a quoted number, defaulting to
// zero on malformed input.
type looseInt64 int64

func (i *looseInt64) UnmarshalJSON(data []byte) error {
	*i = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			*i = looseInt64(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*i = looseInt64(v)
	}
	return nil
}
