package schema

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestNormalize_EmptyRecord(t *testing.T) {
	rec := Normalize(RawRecord{})

	if rec.Date != "" {
		t.Errorf("Expected empty date, got '%s'", rec.Date)
	}
	if rec.Signal != "" {
		t.Errorf("Expected empty signal, got '%s'", rec.Signal)
	}
	if rec.MissionLink != MissionAHL {
		t.Errorf("Expected default mission AHL, got '%s'", rec.MissionLink)
	}
	if rec.Archetype != ArchetypeShapeOfThings {
		t.Errorf("Expected default archetype shape_of_things, got '%s'", rec.Archetype)
	}
	if rec.Focus != FocusSocial {
		t.Errorf("Expected default focus social, got '%s'", rec.Focus)
	}
	if rec.Brand != BrandMedia {
		t.Errorf("Expected default brand media, got '%s'", rec.Brand)
	}
	if rec.TotalScore != 0 {
		t.Errorf("Expected total score 0, got %f", rec.TotalScore)
	}
	if rec.Tags == nil || len(rec.Tags) != 0 {
		t.Errorf("Expected empty tags slice, got %v", rec.Tags)
	}
	if rec.MissionTags == nil || len(rec.MissionTags) != 0 {
		t.Errorf("Expected empty mission tags slice, got %v", rec.MissionTags)
	}
	if rec.CategoryTags == nil || len(rec.CategoryTags) != 0 {
		t.Errorf("Expected empty category tags slice, got %v", rec.CategoryTags)
	}
}

func TestNormalize_ValidRecord(t *testing.T) {
	raw := RawRecord{
		"date":               "2024-03-15",
		"signal":             "Community heat networks expand",
		"source_title":       "Example Journal",
		"source_url":         "https://example.com/a",
		"mission_links":      "ASF",
		"archetype":          "canary",
		"brief_summary":      "A **bold** claim",
		"equity_consequence": "Lower bills",
		"focus":              "tech",
		"brand":              "PH",
		"credibility":        4.5,
		"relevance":          3.0,
		"novelty":            2.5,
		"archetype_fit":      4.0,
		"score_recency":      1.0,
		"total_score":        4.2,
		"tags":               []interface{}{"energy"},
		"mission_tags":       []interface{}{"ASF", "AHL"},
		"category_tags":      []interface{}{"Heat / Controls"},
	}

	rec := Normalize(raw)

	if rec.Date != "2024-03-15" {
		t.Errorf("Expected date '2024-03-15', got '%s'", rec.Date)
	}
	if rec.MissionLink != MissionASF {
		t.Errorf("Expected mission ASF, got '%s'", rec.MissionLink)
	}
	if rec.Archetype != ArchetypeCanary {
		t.Errorf("Expected archetype canary, got '%s'", rec.Archetype)
	}
	if rec.Focus != FocusTech {
		t.Errorf("Expected focus tech, got '%s'", rec.Focus)
	}
	if rec.Brand != BrandPH {
		t.Errorf("Expected brand PH, got '%s'", rec.Brand)
	}
	if rec.TotalScore != 4.2 {
		t.Errorf("Expected total score 4.2, got %f", rec.TotalScore)
	}
	if !reflect.DeepEqual(rec.MissionTags, []string{"ASF", "AHL"}) {
		t.Errorf("Expected mission tags [ASF AHL], got %v", rec.MissionTags)
	}
	if !reflect.DeepEqual(rec.CategoryTags, []string{"Heat / Controls"}) {
		t.Errorf("Expected category tags [Heat / Controls], got %v", rec.CategoryTags)
	}
}

func TestNormalize_MalformedFields(t *testing.T) {
	raw := RawRecord{
		"date":          "not-a-date",
		"signal":        42,
		"mission_links": "XYZ",
		"archetype":     []string{"canary"},
		"focus":         nil,
		"brand":         3.14,
		"total_score":   "high",
		"credibility":   math.NaN(),
		"relevance":     math.Inf(1),
		"tags":          "a,b,c",
		"mission_tags":  map[string]interface{}{"x": "y"},
		"category_tags": []interface{}{"ok", 7},
	}

	rec := Normalize(raw)

	if rec.Date != "" {
		t.Errorf("Malformed date should normalize to empty, got '%s'", rec.Date)
	}
	if rec.Signal != "" {
		t.Errorf("Non-string signal should normalize to empty, got '%s'", rec.Signal)
	}
	if rec.MissionLink != MissionAHL {
		t.Errorf("Unknown mission should default to AHL, got '%s'", rec.MissionLink)
	}
	if rec.Archetype != ArchetypeShapeOfThings {
		t.Errorf("Malformed archetype should default, got '%s'", rec.Archetype)
	}
	if rec.Focus != FocusSocial {
		t.Errorf("Missing focus should default to social, got '%s'", rec.Focus)
	}
	if rec.Brand != BrandMedia {
		t.Errorf("Malformed brand should default to media, got '%s'", rec.Brand)
	}
	if rec.TotalScore != 0 {
		t.Errorf("Non-numeric score should coerce to 0, got %f", rec.TotalScore)
	}
	if rec.Credibility != 0 {
		t.Errorf("NaN should coerce to 0, got %f", rec.Credibility)
	}
	if rec.Relevance != 0 {
		t.Errorf("Inf should coerce to 0, got %f", rec.Relevance)
	}
	if len(rec.Tags) != 0 {
		t.Errorf("Comma-separated string must not be split into tags, got %v", rec.Tags)
	}
	if len(rec.MissionTags) != 0 {
		t.Errorf("Non-sequence mission tags should be empty, got %v", rec.MissionTags)
	}
	if len(rec.CategoryTags) != 0 {
		t.Errorf("Mixed-type sequence should be empty, got %v", rec.CategoryTags)
	}
}

func TestNormalize_IntegerScores(t *testing.T) {
	rec := Normalize(RawRecord{"total_score": 3, "novelty": int64(2)})
	if rec.TotalScore != 3.0 {
		t.Errorf("Expected total score 3.0, got %f", rec.TotalScore)
	}
	if rec.Novelty != 2.0 {
		t.Errorf("Expected novelty 2.0, got %f", rec.Novelty)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	raws := []RawRecord{
		{},
		{"signal": "A", "total_score": 4.2, "mission_links": "ASF"},
		{"date": "bogus", "tags": []interface{}{"x", 1}, "focus": "tech"},
		{"brief_summary": "line1\n\nline2", "category_tags": []interface{}{"Heat / Controls"}},
	}

	for i, raw := range raws {
		once := Normalize(raw)
		twice := Normalize(roundTrip(t, once))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Record %d: normalize is not idempotent:\nonce:  %+v\ntwice: %+v", i, once, twice)
		}
	}
}

// roundTrip converts a canonical record back into wire form, the way it
// would arrive after a JSON export/import cycle.
func roundTrip(t *testing.T, rec Record) RawRecord {
	t.Helper()

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Failed to marshal record: %v", err)
	}

	var raw RawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Failed to unmarshal record: %v", err)
	}
	return raw
}
