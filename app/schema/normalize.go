package schema

import (
	"encoding/json"
	"math"
	"time"
)

// Normalize coerces a raw wire record into a canonical Record. It is a
// total function: malformed or missing fields are replaced by their
// defaults, never reported. Idempotent by construction, since every
// canonical value survives its own coercion unchanged.
func Normalize(raw RawRecord) Record {
	return Record{
		Date:              normalizeDate(raw["date"]),
		Signal:            stringOr(raw["signal"], ""),
		SourceTitle:       stringOr(raw["source_title"], ""),
		SourceURL:         stringOr(raw["source_url"], ""),
		MissionLink:       normalizeMission(raw["mission_links"]),
		Archetype:         normalizeArchetype(raw["archetype"]),
		BriefSummary:      stringOr(raw["brief_summary"], ""),
		EquityConsequence: stringOr(raw["equity_consequence"], ""),
		Focus:             normalizeFocus(raw["focus"]),
		Brand:             normalizeBrand(raw["brand"]),
		Credibility:       numberOrZero(raw["credibility"]),
		Relevance:         numberOrZero(raw["relevance"]),
		Novelty:           numberOrZero(raw["novelty"]),
		ArchetypeFit:      numberOrZero(raw["archetype_fit"]),
		ScoreRecency:      numberOrZero(raw["score_recency"]),
		TotalScore:        numberOrZero(raw["total_score"]),
		Tags:              stringSliceOrEmpty(raw["tags"]),
		MissionTags:       stringSliceOrEmpty(raw["mission_tags"]),
		CategoryTags:      stringSliceOrEmpty(raw["category_tags"]),
	}
}

func stringOr(v interface{}, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}

// normalizeDate accepts only YYYY-MM-DD; anything else becomes empty, which
// the date filter treats as unanchored.
func normalizeDate(v interface{}) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return ""
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ""
	}
	return s
}

func normalizeMission(v interface{}) Mission {
	if m := Mission(stringOr(v, "")); m.Valid() {
		return m
	}
	return DefaultMission
}

func normalizeArchetype(v interface{}) Archetype {
	if a := Archetype(stringOr(v, "")); a.Valid() {
		return a
	}
	return DefaultArchetype
}

func normalizeFocus(v interface{}) Focus {
	if f := Focus(stringOr(v, "")); f.Valid() {
		return f
	}
	return DefaultFocus
}

func normalizeBrand(v interface{}) Brand {
	if b := Brand(stringOr(v, "")); b.Valid() {
		return b
	}
	return DefaultBrand
}

// numberOrZero coerces any numeric input to float64. Non-numeric input,
// NaN and infinities all collapse to 0, the single numeric default.
func numberOrZero(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// stringSliceOrEmpty accepts only an ordered sequence of strings. A single
// string (even a comma-separated one) is not split; it becomes empty.
func stringSliceOrEmpty(v interface{}) []string {
	switch seq := v.(type) {
	case []string:
		out := make([]string, len(seq))
		copy(out, seq)
		return out
	case []interface{}:
		out := make([]string, 0, len(seq))
		for _, el := range seq {
			s, ok := el.(string)
			if !ok {
				return []string{}
			}
			out = append(out, s)
		}
		return out
	default:
		return []string{}
	}
}
