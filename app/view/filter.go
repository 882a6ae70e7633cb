package view

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"signalscout/app/schema"
)

var folder = cases.Fold()

// Matches reports whether a record passes the current filter state. The
// predicates are independent and combined with AND; their order is a
// performance choice only.
func Matches(rec schema.Record, s State) bool {
	return matchesMission(rec, s) &&
		matchesArchetype(rec, s) &&
		matchesFocus(rec, s) &&
		matchesBrand(rec, s) &&
		matchesDateRange(rec, s) &&
		matchesMinScore(rec, s) &&
		matchesQuery(rec, s)
}

func matchesMission(rec schema.Record, s State) bool {
	return s.Missions[rec.MissionLink]
}

func matchesArchetype(rec schema.Record, s State) bool {
	return s.Archetypes[rec.Archetype]
}

func matchesFocus(rec schema.Record, s State) bool {
	return s.Focus == Any || string(rec.Focus) == s.Focus
}

func matchesBrand(rec schema.Record, s State) bool {
	return s.Brand == Any || string(rec.Brand) == s.Brand
}

// matchesDateRange compares calendar dates, not strings. Records without a
// date are unanchored and always pass; an empty bound is open on that side.
func matchesDateRange(rec schema.Record, s State) bool {
	if rec.Date == "" {
		return true
	}

	recDate, err := time.Parse("2006-01-02", rec.Date)
	if err != nil {
		// Normalization guarantees a parseable or empty date; treat a
		// stray value as unanchored rather than silently excluding it.
		return true
	}

	if s.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", s.DateFrom); err == nil && recDate.Before(from) {
			return false
		}
	}
	if s.DateTo != "" {
		if to, err := time.Parse("2006-01-02", s.DateTo); err == nil && recDate.After(to) {
			return false
		}
	}
	return true
}

func matchesMinScore(rec schema.Record, s State) bool {
	return rec.TotalScore >= s.MinScore
}

// matchesQuery does a case-folded substring search over the record's text
// fields and tag lists. An empty (or whitespace-only) query always passes.
func matchesQuery(rec schema.Record, s State) bool {
	query := strings.TrimSpace(s.Query)
	if query == "" {
		return true
	}

	parts := []string{
		rec.Signal,
		rec.BriefSummary,
		rec.SourceTitle,
		rec.EquityConsequence,
	}
	parts = append(parts, rec.MissionTags...)
	parts = append(parts, rec.CategoryTags...)

	haystack := folder.String(strings.Join(parts, " "))
	return strings.Contains(haystack, folder.String(query))
}
