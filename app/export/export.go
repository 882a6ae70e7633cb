// Package export serializes record sequences for download. CSV follows the
// wire column order; JSON is the canonical record array, pretty-printed.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"signalscout/app/schema"
)

// Columns is the fixed CSV header, identical to the wire field list.
var Columns = []string{
	"date",
	"signal",
	"source_title",
	"source_url",
	"mission_links",
	"archetype",
	"brief_summary",
	"equity_consequence",
	"focus",
	"brand",
	"credibility",
	"relevance",
	"novelty",
	"archetype_fit",
	"score_recency",
	"total_score",
	"tags",
	"mission_tags",
	"category_tags",
}

// ToCSV renders records as CSV text. Every cell is quoted, embedded quotes
// are doubled and embedded newlines collapse to a single space. Tag lists
// are joined with "," — lossy when a tag itself contains a comma; the JSON
// export is the faithful format.
func ToCSV(records []schema.Record) string {
	var buf bytes.Buffer

	for i, col := range Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeCell(&buf, col)
	}
	buf.WriteByte('\n')

	for _, rec := range records {
		for i := range Columns {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCell(&buf, cellValue(rec, Columns[i]))
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}

// ToJSON renders the canonical record array, pretty-printed. A nil input
// still serializes as an empty array.
func ToJSON(records []schema.Record) (string, error) {
	if records == nil {
		records = []schema.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal records: %w", err)
	}
	return string(data), nil
}

func cellValue(rec schema.Record, col string) string {
	switch col {
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
	case "credibility":
		return formatNumber(rec.Credibility)
	case "relevance":
		return formatNumber(rec.Relevance)
	case "novelty":
		return formatNumber(rec.Novelty)
	case "archetype_fit":
		return formatNumber(rec.ArchetypeFit)
	case "score_recency":
		return formatNumber(rec.ScoreRecency)
	case "total_score":
		return formatNumber(rec.TotalScore)
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

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// writeCell quotes a single cell. CSV has no in-cell line breaks here, so
// newlines become a single space before quoting.
func writeCell(buf *bytes.Buffer, value string) {
	value = newlineReplacer.Replace(value)
	buf.WriteByte('"')
	buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
	buf.WriteByte('"')
}
