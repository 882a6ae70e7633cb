package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"signalscout/app/schema"
)

// Loader fetches the signal feed and owns its State. Overlapping loads are
// fenced with a monotonic sequence number: only the most recently issued
// load may apply its result, superseded responses are discarded.
type Loader struct {
	httpClient *http.Client
	userAgent  string
	onChange   func(State)

	mu    sync.Mutex
	state State
	seq   atomic.Uint64
}

// NewLoader creates an idle loader. onChange, if non-nil, fires after every
// state transition with a snapshot of the new state.
func NewLoader(httpClient *http.Client, userAgent string, onChange func(State)) *Loader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Loader{
		httpClient: httpClient,
		userAgent:  userAgent,
		onChange:   onChange,
		state:      State{Status: StatusIdle, Records: []schema.Record{}},
	}
}

// Load fetches url and replaces the record set wholesale on success. On
// failure the previous records and the stale flag are left untouched.
func (l *Loader) Load(ctx context.Context, url string) error {
	id := l.seq.Add(1)
	l.transition(func(s *State) {
		s.Status = StatusLoading
	})

	body, err := l.fetch(ctx, url)
	if err != nil {
		l.fail(id, err)
		return err
	}

	records, err := parseRecords(body)
	if err != nil {
		l.fail(id, err)
		return err
	}

	if !l.apply(id, records) {
		slog.Debug("Discarding superseded feed response", "url", url, "request_id", id)
		return nil
	}

	slog.Info("Feed loaded", "url", url, "records", len(records))
	return nil
}

// LoadFromText parses uploaded UTF-8 text as a JSON array of raw records.
// A parse failure is recoverable and leaves existing records in place. An
// upload also supersedes any fetch still in flight.
func (l *Loader) LoadFromText(text string) error {
	id := l.seq.Add(1)

	records, err := parseRecords([]byte(text))
	if err != nil {
		l.fail(id, err)
		return err
	}

	l.apply(id, records)
	slog.Info("Feed loaded from upload", "records", len(records))
	return nil
}

// MarkStale flags the loaded feed as possibly outdated. Called by the
// staleness timer; never performs I/O.
func (l *Loader) MarkStale() {
	l.transition(func(s *State) {
		s.Stale = true
	})
}

// State returns a snapshot of the current feed state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, &LoadError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", l.userAgent)
	// Always request fresh bytes; staleness handling is ours, not an
	// intermediary cache's.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, &LoadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{URL: url, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	return body, nil
}

func parseRecords(data []byte) ([]schema.Record, error) {
	var raws []schema.RawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &ParseError{Err: err}
	}

	records := make([]schema.Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, schema.Normalize(raw))
	}
	return records, nil
}

// apply installs a load result if its request id is still current.
func (l *Loader) apply(id uint64, records []schema.Record) bool {
	if id != l.seq.Load() {
		return false
	}
	l.transition(func(s *State) {
		s.Status = StatusLoaded
		s.Records = records
		s.ErrorMessage = ""
		s.Stale = false
	})
	return true
}

// fail records a load failure. Records and the stale flag are untouched.
func (l *Loader) fail(id uint64, err error) {
	if id != l.seq.Load() {
		slog.Debug("Discarding superseded feed failure", "request_id", id, "error", err)
		return
	}
	slog.Error("Feed load failed", "error", err)
	l.transition(func(s *State) {
		s.Status = StatusError
		s.ErrorMessage = err.Error()
	})
}

func (l *Loader) transition(fn func(*State)) {
	l.mu.Lock()
	fn(&l.state)
	snap := l.snapshot()
	l.mu.Unlock()

	if l.onChange != nil {
		l.onChange(snap)
	}
}

// snapshot must be called with the lock held.
func (l *Loader) snapshot() State {
	snap := l.state
	snap.Records = make([]schema.Record, len(l.state.Records))
	copy(snap.Records, l.state.Records)
	return snap
}
