package database

import (
	"fmt"

	"signalscout/app/schema"
)

var _ SignalRepository = (*SignalRepo)(nil)

// SignalRepo persists loaded signals and export activity. The archive is
// append-mostly: a record seen again only bumps its last_seen_at and
// refreshes the mutable columns.
type SignalRepo struct {
	db *DB
}

func NewSignalRepo(db *DB) *SignalRepo {
	return &SignalRepo{db: db}
}

// ArchiveRecords upserts records keyed by source URL and returns how many
// rows were written. Records without a source URL are skipped: the archive
// has nothing stable to key them by.
func (r *SignalRepo) ArchiveRecords(records []schema.Record) (int, error) {
	written := 0
	for _, rec := range records {
		if rec.SourceURL == "" {
			continue
		}

		_, err := r.db.Exec(`
			INSERT INTO signals (
				source_url, date, signal, source_title, mission_links,
				archetype, focus, brand, total_score
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (source_url) DO UPDATE SET
				date = excluded.date,
				signal = excluded.signal,
				source_title = excluded.source_title,
				mission_links = excluded.mission_links,
				archetype = excluded.archetype,
				focus = excluded.focus,
				brand = excluded.brand,
				total_score = excluded.total_score,
				last_seen_at = CURRENT_TIMESTAMP
		`, rec.SourceURL, rec.Date, rec.Signal, rec.SourceTitle,
			string(rec.MissionLink), string(rec.Archetype),
			string(rec.Focus), string(rec.Brand), rec.TotalScore)

		if err != nil {
			return written, fmt.Errorf("failed to archive signal: %w", err)
		}
		written++
	}

	return written, nil
}

func (r *SignalRepo) GetSignalCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM signals`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count signals: %w", err)
	}
	return count, nil
}

// GetRecentSignals returns the most recently seen archive rows.
func (r *SignalRepo) GetRecentSignals(limit int) ([]ArchivedSignal, error) {
	rows, err := r.db.Query(`
		SELECT source_url, date, signal, source_title, mission_links,
		       archetype, focus, brand, total_score, first_seen_at, last_seen_at
		FROM signals
		ORDER BY last_seen_at DESC, source_url
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent signals: %w", err)
	}
	defer rows.Close()

	var signals []ArchivedSignal
	for rows.Next() {
		var s ArchivedSignal
		err := rows.Scan(
			&s.SourceURL, &s.Date, &s.Signal, &s.SourceTitle, &s.MissionLink,
			&s.Archetype, &s.Focus, &s.Brand, &s.TotalScore,
			&s.FirstSeenAt, &s.LastSeenAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signal row: %w", err)
		}
		signals = append(signals, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signal rows: %w", err)
	}

	return signals, nil
}

func (r *SignalRepo) LogExport(format string, recordCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO export_log (format, record_count) VALUES (?, ?)
	`, format, recordCount)
	if err != nil {
		return fmt.Errorf("failed to log export: %w", err)
	}
	return nil
}

func (r *SignalRepo) GetExportCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM export_log`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count exports: %w", err)
	}
	return count, nil
}
