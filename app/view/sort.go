package view

import (
	"sort"
	"strconv"
	"strings"

	"signalscout/app/schema"
)

// numericKeys are the sort keys compared as numbers; every other key is
// compared as a case-sensitive string on its wire representation.
var numericKeys = map[string]bool{
	"credibility":   true,
	"relevance":     true,
	"novelty":       true,
	"archetype_fit": true,
	"score_recency": true,
	"total_score":   true,
}

// Sort orders records by the given key and direction. The sort is stable:
// records with equal key values keep their relative input order in both
// directions. The input slice is not modified.
func Sort(records []schema.Record, key string, dir SortDirection) []schema.Record {
	out := make([]schema.Record, len(records))
	copy(out, records)

	if numericKeys[key] {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := numericValue(out[i], key), numericValue(out[j], key)
			if dir == SortDesc {
				return b < a
			}
			return a < b
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := stringValue(out[i], key), stringValue(out[j], key)
		if dir == SortDesc {
			return b < a
		}
		return a < b
	})
	return out
}

func numericValue(rec schema.Record, key string) float64 {
	switch key {
	case "credibility":
		return rec.Credibility
	case "relevance":
		return rec.Relevance
	case "novelty":
		return rec.Novelty
	case "archetype_fit":
		return rec.ArchetypeFit
	case "score_recency":
		return rec.ScoreRecency
	case "total_score":
		return rec.TotalScore
	default:
		return 0
	}
}

// stringValue returns the record field as a string, with sequence fields
// joined the same way they are exported. Unknown keys compare as empty.
func stringValue(rec schema.Record, key string) string {
	switch key {
	case "date":
		return rec.Date
	case "signal":
		return rec.Signal
	case "source_title":
		return rec.SourceTitle
	case "source_url":
		return rec.SourceURL
	case "mission_links":
		return string(rec.MissionLink)
	case "archetype":
		return string(rec.Archetype)
	case "brief_summary":
		return rec.BriefSummary
	case "equity_consequence":
		return rec.EquityConsequence
	case "focus":
		return string(rec.Focus)
	case "brand":
		return string(rec.Brand)
	case "tags":
		return strings.Join(rec.Tags, ",")
	case "mission_tags":
		return strings.Join(rec.MissionTags, ",")
	case "category_tags":
		return strings.Join(rec.CategoryTags, ",")
	default:
		return ""
	}
}

// ValidSortKey reports whether key names a sortable record field.
func ValidSortKey(key string) bool {
	if numericKeys[key] {
		return true
	}
	switch key {
	case "date", "signal", "source_title", "source_url", "mission_links",
		"archetype", "brief_summary", "equity_consequence", "focus",
		"brand", "tags", "mission_tags", "category_tags":
		return true
	}
	return false
}

// FormatScore renders a score the way the wire format writes numbers:
// shortest representation, no trailing zeros.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
