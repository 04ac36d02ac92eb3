package clickhouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Backend defines the server capabilities chtop consumes. This interface is
// implemented by *Client and can be used for testing.
type Backend interface {
	ListProcesses(ctx context.Context) ([]Process, error)
	FetchFullQuery(ctx context.Context, queryID string) (string, error)
	KillQuery(ctx context.Context, queryID string) error
}

// Ensure Client implements Backend at compile time.
var _ Backend = (*Client)(nil)

// Sentinel errors for the two failure classes callers branch on.
var (
	// ErrNotFound reports that a query ID no longer corresponds to anything
	// the server knows about. Expected: queries finish between the snapshot
	// and the action.
	ErrNotFound = errors.New("query not found")

	// ErrUnavailable reports a transport failure, timeout, or HTTP error
	// from the server. Transient; the next tick or action retries.
	ErrUnavailable = errors.New("clickhouse unavailable")
)

// Client talks to the ClickHouse HTTP interface.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	user      string
	password  string
	userAgent string
}

const (
	defaultAddr      = "127.0.0.1:8123"
	defaultUserAgent = "chtop/0.1"
	defaultTimeout   = 5 * time.Second
)

const (
	listProcessesSQL = "SELECT query_id, user, address, elapsed, memory_usage, query, query_kind FROM system.processes FORMAT JSON"
	runningQuerySQL  = "SELECT query FROM system.processes WHERE query_id = '%s' FORMAT JSON"
	loggedQuerySQL   = "SELECT query FROM system.query_log WHERE query_id = '%s' AND event_date = today() LIMIT 1 FORMAT JSON"
	killQuerySQL     = "KILL QUERY WHERE query_id = '%s' ASYNC FORMAT JSON"
)

// Options configure a Client. Zero values fall back to defaults; User and
// Password are passed through to the server untouched.
type Options struct {
	Addr     string
	User     string
	Password string
	Timeout  time.Duration
}

// NewClient builds a Client for the given host:port address.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.Addr)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		user:      opts.User,
		password:  opts.Password,
		userAgent: defaultUserAgent,
	}, nil
}

// ListProcesses retrieves the currently running queries from
// system.processes. Rows with missing or malformed fields are kept with
// zero-valued fields rather than dropped.
func (c *Client) ListProcesses(ctx context.Context) ([]Process, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload queryResult[processRow]
	if err := c.query(ctx, http.MethodGet, listProcessesSQL, &payload); err != nil {
		return nil, err
	}
	procs := make([]Process, 0, len(payload.Data))
	for _, row := range payload.Data {
		procs = append(procs, row.toProcess())
	}
	return procs, nil
}

// FetchFullQuery returns the complete text of the query with the given ID.
// It prefers the still-running entry in system.processes and falls back to
// today's system.query_log entries for queries that just finished. An ID
// unknown to both returns ErrNotFound.
func (c *Client) FetchFullQuery(ctx context.Context, queryID string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	id, err := sanitizeID(queryID)
	if err != nil {
		return "", err
	}
	for _, sql := range []string{
		fmt.Sprintf(runningQuerySQL, id),
		fmt.Sprintf(loggedQuerySQL, id),
	} {
		var payload queryResult[queryTextRow]
		if err := c.query(ctx, http.MethodGet, sql, &payload); err != nil {
			return "", err
		}
		if len(payload.Data) > 0 {
			return payload.Data[0].Query, nil
		}
	}
	return "", fmt.Errorf("query %q: %w", queryID, ErrNotFound)
}

// KillQuery asks the server to begin cancelling the query with the given ID.
// The request is asynchronous on the server side: a nil error means
// cancellation was requested, not that the query has stopped.
func (c *Client) KillQuery(ctx context.Context, queryID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	id, err := sanitizeID(queryID)
	if err != nil {
		return err
	}
	var payload queryResult[killRow]
	if err := c.query(ctx, http.MethodPost, fmt.Sprintf(killQuerySQL, id), &payload); err != nil {
		return err
	}
	if len(payload.Data) == 0 {
		return fmt.Errorf("query %q: %w", queryID, ErrNotFound)
	}
	return nil
}

// query runs one SQL statement through the HTTP interface and decodes the
// FORMAT JSON response into dest.
func (c *Client) query(ctx context.Context, method, sql string, dest any) error {
	values := url.Values{}
	values.Set("query", sql)
	reqURL := c.baseURL.ResolveReference(&url.URL{RawQuery: values.Encode()})

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.user != "" {
		req.Header.Set("X-ClickHouse-User", c.user)
	}
	if c.password != "" {
		req.Header.Set("X-ClickHouse-Key", c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		detail := readErrorDetail(resp.Body)
		if detail != "" {
			return fmt.Errorf("server returned status %d: %s: %w", resp.StatusCode, detail, ErrUnavailable)
		}
		return fmt.Errorf("server returned status %d: %w", resp.StatusCode, ErrUnavailable)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w: %w", ErrUnavailable, err)
	}
	return nil
}

// readErrorDetail pulls the first line of an error body for display. Bodies
// are capped; ClickHouse error messages are short but stack traces are not.
func readErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil {
		return ""
	}
	detail := strings.TrimSpace(string(raw))
	if idx := strings.IndexByte(detail, '\n'); idx >= 0 {
		detail = detail[:idx]
	}
	return detail
}

// sanitizeID validates and escapes an operator-supplied query ID before it
// is interpolated into SQL.
func sanitizeID(queryID string) (string, error) {
	trimmed := strings.TrimSpace(queryID)
	if trimmed == "" {
		return "", fmt.Errorf("query id is empty")
	}
	escaped := strings.ReplaceAll(trimmed, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return escaped, nil
}

func parseBaseURL(addr string) (*url.URL, error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		trimmed = defaultAddr
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server address %q: %w", addr, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
