package feed

import (
	"fmt"

	"signalscout/app/schema"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// State is the feed lifecycle snapshot. Records survive failed reloads;
// Stale is advisory only and never triggers a fetch by itself.
type State struct {
	Status       Status
	Records      []schema.Record
	ErrorMessage string
	Stale        bool
}

// LoadError is a network or HTTP-status failure. Previous records are
// retained; retry is manual.
type LoadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *LoadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("feed fetch failed: HTTP %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("feed fetch failed: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError is malformed feed text (fetched or uploaded). Recoverable:
// previous records are retained.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("feed is not a JSON array of records: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
