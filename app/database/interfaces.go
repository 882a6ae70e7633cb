package database

import (
	"time"

	"signalscout/app/schema"
)

// ArchivedSignal is one row of the long-term archive: the subset of a
// record worth keeping across feed replacements, keyed by source URL.
type ArchivedSignal struct {
	SourceURL   string
	Date        string
	Signal      string
	SourceTitle string
	MissionLink string
	Archetype   string
	Focus       string
	Brand       string
	TotalScore  float64
	FirstSeenAt time.Time
	LastSeenAt  time.Time
}

type SignalRepository interface {
	ArchiveRecords(records []schema.Record) (int, error)
	GetSignalCount() (int, error)
	GetRecentSignals(limit int) ([]ArchivedSignal, error)

	LogExport(format string, recordCount int) error
	GetExportCount() (int, error)
}
