package view

import (
	"testing"

	"signalscout/app/schema"
)

func testRecords() []schema.Record {
	records := make([]schema.Record, 0, 6)
	for _, raw := range []schema.RawRecord{
		{"signal": "heat pumps", "total_score": 4.2, "mission_links": "ASF", "focus": "tech"},
		{"signal": "community gardens", "total_score": 3.1, "mission_links": "AHL", "focus": "social"},
		{"signal": "grid storage", "total_score": 3.9, "mission_links": "AFS", "focus": "tech"},
		{"signal": "retrofit coops", "total_score": 2.2, "mission_links": "AHL", "focus": "social"},
		{"signal": "heat networks", "total_score": 4.8, "mission_links": "ASF", "focus": "both"},
		{"signal": "civic assemblies", "total_score": 1.5, "mission_links": "AFS", "focus": "social"},
	} {
		records = append(records, schema.Normalize(raw))
	}
	return records
}

func TestController_RecomputesOnStateChange(t *testing.T) {
	ctrl := NewController(NewState(25), Observers{})
	ctrl.SetRecords(testRecords())

	d := ctrl.Derived()
	if d.Total != 6 {
		t.Fatalf("Expected 6 matches with default state, got %d", d.Total)
	}
	if d.Rows[0].Signal != "heat networks" {
		t.Errorf("Default sort is total_score desc, expected 'heat networks' first, got '%s'", d.Rows[0].Signal)
	}

	d = ctrl.SetQuery("heat")
	if d.Total != 2 {
		t.Errorf("Expected 2 matches for query 'heat', got %d", d.Total)
	}
}

func TestController_PageResetRules(t *testing.T) {
	ctrl := NewController(NewState(2), Observers{})
	ctrl.SetRecords(testRecords())

	d := ctrl.SetPage(2)
	if d.Page != 2 {
		t.Fatalf("Expected page 2, got %d", d.Page)
	}

	// A filter mutation resets to page 1.
	d = ctrl.SetMinScore(1.0)
	if d.Page != 1 {
		t.Errorf("Filter change should reset page to 1, got %d", d.Page)
	}

	ctrl.SetPage(2)
	// A sort-direction toggle keeps the page.
	d = ctrl.SetSortDir(SortAsc)
	if d.Page != 2 {
		t.Errorf("Sort direction change should keep the page, got %d", d.Page)
	}

	// Selecting the same sort key toggles direction and keeps the page.
	d = ctrl.SetSortKey(DefaultSortKey)
	if d.Page != 2 {
		t.Errorf("Re-selecting the active sort key toggles direction, page should stay 2, got %d", d.Page)
	}
	if ctrl.State().SortDir != SortDesc {
		t.Errorf("Expected direction toggled back to desc, got %s", ctrl.State().SortDir)
	}

	// A new sort key resets the page.
	d = ctrl.SetSortKey("signal")
	if d.Page != 1 {
		t.Errorf("New sort key should reset page to 1, got %d", d.Page)
	}

	// A page-size change keeps the page (clamped).
	ctrl.SetPage(2)
	d = ctrl.SetPageSize(3)
	if d.Page != 2 {
		t.Errorf("Page size change should keep the page where possible, got %d", d.Page)
	}
}

func TestController_PageClampedToRange(t *testing.T) {
	ctrl := NewController(NewState(2), Observers{})
	ctrl.SetRecords(testRecords())

	d := ctrl.SetPage(99)
	if d.Page != 3 {
		t.Errorf("Out-of-range page should clamp to last page 3, got %d", d.Page)
	}
	if len(d.Rows) != 2 {
		t.Errorf("Clamped page should render rows, got %d", len(d.Rows))
	}
}

func TestController_ViewChangeObserver(t *testing.T) {
	var gotState State
	var gotTotal int
	calls := 0

	ctrl := NewController(NewState(25), Observers{
		OnViewChange: func(s State, total int) {
			gotState = s
			gotTotal = total
			calls++
		},
	})

	ctrl.SetRecords(testRecords())
	ctrl.SetQuery("heat")

	if calls != 2 {
		t.Fatalf("Expected 2 view-change notifications, got %d", calls)
	}
	if gotTotal != 2 {
		t.Errorf("Expected total 2 in last notification, got %d", gotTotal)
	}
	if gotState.Query != "heat" {
		t.Errorf("Expected state snapshot with query 'heat', got '%s'", gotState.Query)
	}
}

func TestController_SelectObserver(t *testing.T) {
	var selected schema.Record
	ctrl := NewController(NewState(25), Observers{
		OnSelect: func(rec schema.Record) { selected = rec },
	})
	ctrl.SetRecords(testRecords())

	ctrl.Select(0)
	if selected.Signal != "heat networks" {
		t.Errorf("Expected top row 'heat networks' selected, got '%s'", selected.Signal)
	}

	selected = schema.Record{}
	ctrl.Select(99)
	if selected.Signal != "" {
		t.Errorf("Out-of-range selection must not fire the observer")
	}
}

func TestController_ExportObserver(t *testing.T) {
	var gotFormat string
	var gotCount int

	ctrl := NewController(NewState(2), Observers{
		OnExport: func(format string, records []schema.Record) {
			gotFormat = format
			gotCount = len(records)
		},
	})
	ctrl.SetRecords(testRecords())
	ctrl.SetQuery("heat")

	records := ctrl.Export("csv")

	if gotFormat != "csv" {
		t.Errorf("Expected export format 'csv', got '%s'", gotFormat)
	}
	if gotCount != 2 || len(records) != 2 {
		t.Errorf("Export must cover the full matched sequence (2), not the page, got %d", gotCount)
	}
}

func TestController_StateIsolation(t *testing.T) {
	ctrl := NewController(NewState(25), Observers{})
	ctrl.SetRecords(testRecords())

	state := ctrl.State()
	state.Missions[schema.MissionASF] = false
	state.Query = "mutated"

	current := ctrl.State()
	if !current.Missions[schema.MissionASF] {
		t.Errorf("Mutating a returned state copy must not affect the controller")
	}
	if current.Query != "" {
		t.Errorf("Controller query leaked a mutation: '%s'", current.Query)
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize(testRecords())

	if stats.Count != 6 {
		t.Errorf("Expected count 6, got %d", stats.Count)
	}
	if len(stats.Missions) != 3 {
		t.Errorf("Expected 3 distinct missions, got %v", stats.Missions)
	}
	if len(stats.Archetypes) != 1 || stats.Archetypes[0] != "shape_of_things" {
		t.Errorf("Expected single default archetype, got %v", stats.Archetypes)
	}

	empty := Summarize(nil)
	if empty.Count != 0 || empty.AvgRelevance != 0 {
		t.Errorf("Empty input should summarize to zeros, got %+v", empty)
	}
}
