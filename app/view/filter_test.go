package view

import (
	"testing"

	"signalscout/app/schema"
)

func defaultState() State {
	return NewState(25)
}

func TestMatches_DefaultStatePassesEverything(t *testing.T) {
	rec := schema.Normalize(schema.RawRecord{
		"signal": "A", "total_score": 4.2, "mission_links": "ASF",
	})

	if !Matches(rec, defaultState()) {
		t.Errorf("Default state should pass any normalized record")
	}
}

func TestMatches_MissionToggle(t *testing.T) {
	rec := schema.Normalize(schema.RawRecord{"mission_links": "ASF"})

	state := defaultState()
	state.Missions[schema.MissionASF] = false

	if Matches(rec, state) {
		t.Errorf("Record with excluded mission should not pass")
	}

	state.Missions[schema.MissionASF] = true
	if !Matches(rec, state) {
		t.Errorf("Record with included mission should pass")
	}
}

func TestMatches_ArchetypeToggle(t *testing.T) {
	rec := schema.Normalize(schema.RawRecord{"archetype": "canary"})

	state := defaultState()
	state.Archetypes[schema.ArchetypeCanary] = false

	if Matches(rec, state) {
		t.Errorf("Record with excluded archetype should not pass")
	}
}

func TestMatches_FocusAndBrand(t *testing.T) {
	rec := schema.Normalize(schema.RawRecord{"focus": "tech", "brand": "PH"})

	state := defaultState()
	if !Matches(rec, state) {
		t.Errorf("Focus 'any' should pass every record")
	}

	state.Focus = "tech"
	if !Matches(rec, state) {
		t.Errorf("Matching focus should pass")
	}

	state.Focus = "social"
	if Matches(rec, state) {
		t.Errorf("Mismatched focus should not pass")
	}

	state = defaultState()
	state.Brand = "media"
	if Matches(rec, state) {
		t.Errorf("Mismatched brand should not pass")
	}
}

func TestMatches_MinScoreInclusiveBoundary(t *testing.T) {
	state := defaultState()
	state.MinScore = 3.5

	below := schema.Normalize(schema.RawRecord{"total_score": 3.4})
	if Matches(below, state) {
		t.Errorf("Score 3.4 should be excluded by minScore 3.5")
	}

	boundary := schema.Normalize(schema.RawRecord{"total_score": 3.5})
	if !Matches(boundary, state) {
		t.Errorf("Score 3.5 should be included by minScore 3.5 (inclusive)")
	}
}

func TestMatches_DateRange(t *testing.T) {
	state := defaultState()
	state.DateFrom = "2024-01-01"
	state.DateTo = "2024-01-31"

	tests := []struct {
		date     string
		expected bool
	}{
		{"", true}, // unanchored records always pass
		{"2024-01-01", true},
		{"2024-01-31", true},
		{"2024-01-15", true},
		{"2023-12-31", false},
		{"2024-02-01", false},
	}

	for _, test := range tests {
		rec := schema.Normalize(schema.RawRecord{"date": test.date})
		if Matches(rec, state) != test.expected {
			t.Errorf("Date %q in [2024-01-01, 2024-01-31]: expected %v", test.date, test.expected)
		}
	}
}

func TestMatches_DateRangeOpenEnds(t *testing.T) {
	rec := schema.Normalize(schema.RawRecord{"date": "2022-06-01"})

	state := defaultState()
	state.DateTo = "2024-01-01"
	if !Matches(rec, state) {
		t.Errorf("Open from-bound should pass earlier dates")
	}

	state = defaultState()
	state.DateFrom = "2023-01-01"
	if Matches(rec, state) {
		t.Errorf("Record before from-bound should not pass")
	}
}

func TestMatches_QuerySearchesTags(t *testing.T) {
	rec := schema.Normalize(schema.RawRecord{
		"category_tags": []interface{}{"Heat / Controls"},
	})

	state := defaultState()
	state.Query = "heat"

	if !Matches(rec, state) {
		t.Errorf("Query 'heat' should match category tag 'Heat / Controls' with empty signal and summary")
	}
}

func TestMatches_QueryCaseFoldedAndTrimmed(t *testing.T) {
	rec := schema.Normalize(schema.RawRecord{"signal": "Großstadt networks"})

	state := defaultState()
	state.Query = "  GROSSSTADT  "
	if !Matches(rec, state) {
		t.Errorf("Query should be trimmed and case-folded before matching")
	}

	state.Query = "   "
	if !Matches(rec, state) {
		t.Errorf("Whitespace-only query should pass everything")
	}
}

func TestMatches_QueryMiss(t *testing.T) {
	rec := schema.Normalize(schema.RawRecord{"signal": "solar"})

	state := defaultState()
	state.Query = "wind"
	if Matches(rec, state) {
		t.Errorf("Record without the query substring should not pass")
	}
}

// The predicates are independent, so any one failing must fail the whole
// conjunction regardless of the others.
func TestMatches_PredicatesAreConjunctive(t *testing.T) {
	rec := schema.Normalize(schema.RawRecord{
		"signal":        "heat pumps",
		"mission_links": "ASF",
		"focus":         "tech",
		"total_score":   4.0,
		"date":          "2024-05-01",
	})

	passing := defaultState()
	passing.Query = "heat"
	passing.Focus = "tech"
	passing.MinScore = 3.0
	passing.DateFrom = "2024-01-01"

	if !Matches(rec, passing) {
		t.Fatalf("Record should pass the combined state")
	}

	breakers := []func(*State){
		func(s *State) { s.Missions[schema.MissionASF] = false },
		func(s *State) { s.Archetypes[schema.ArchetypeShapeOfThings] = false },
		func(s *State) { s.Focus = "social" },
		func(s *State) { s.Brand = "PH" },
		func(s *State) { s.MinScore = 4.5 },
		func(s *State) { s.DateTo = "2024-01-01" },
		func(s *State) { s.Query = "zzz" },
	}

	for i, breaker := range breakers {
		state := passing.Clone()
		breaker(&state)
		if Matches(rec, state) {
			t.Errorf("Breaking predicate %d should fail the conjunction", i)
		}
	}
}
