package view

import (
	"testing"

	"signalscout/app/schema"
)

func makeRecords(n int) []schema.Record {
	records := make([]schema.Record, n)
	for i := range records {
		records[i] = schema.Normalize(schema.RawRecord{"signal": string(rune('a' + i))})
	}
	return records
}

func TestPaginate_Basic(t *testing.T) {
	records := makeRecords(5)

	page := Paginate(records, 1, 2)
	if len(page) != 2 || page[0].Signal != "a" {
		t.Errorf("Page 1 of size 2 should be [a b], got %d items", len(page))
	}

	page = Paginate(records, 3, 2)
	if len(page) != 1 || page[0].Signal != "e" {
		t.Errorf("Last partial page should contain the remainder, got %d items", len(page))
	}
}

func TestPaginate_NeverErrors(t *testing.T) {
	if got := Paginate([]schema.Record{}, 7, 10); len(got) != 0 {
		t.Errorf("Empty input should paginate to empty slice, got %d items", len(got))
	}

	if got := Paginate(makeRecords(3), 99, 10); len(got) != 0 {
		t.Errorf("Page beyond the end should be empty, got %d items", len(got))
	}

	if got := Paginate(makeRecords(3), 0, 10); len(got) != 0 {
		t.Errorf("Page 0 should be empty, got %d items", len(got))
	}

	if got := Paginate(makeRecords(3), 1, 0); len(got) != 0 {
		t.Errorf("Page size 0 should be empty, got %d items", len(got))
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		n, pageSize, expected int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}

	for _, test := range tests {
		if got := PageCount(test.n, test.pageSize); got != test.expected {
			t.Errorf("PageCount(%d, %d): expected %d, got %d", test.n, test.pageSize, test.expected, got)
		}
	}
}

func TestClampPage(t *testing.T) {
	if got := ClampPage(0, 25, 10); got != 1 {
		t.Errorf("Page below 1 clamps to 1, got %d", got)
	}
	if got := ClampPage(99, 25, 10); got != 3 {
		t.Errorf("Page beyond the end clamps to last page 3, got %d", got)
	}
	if got := ClampPage(2, 25, 10); got != 2 {
		t.Errorf("In-range page stays put, got %d", got)
	}
	if got := ClampPage(5, 0, 10); got != 1 {
		t.Errorf("Empty set clamps to page 1, got %d", got)
	}
}
