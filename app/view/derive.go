package view

import (
	"signalscout/app/schema"
)

// Derived is one recomputed projection of the record set: the filtered and
// sorted sequence plus the visible page. Exports operate on Matched, the
// rendered table on Rows.
type Derived struct {
	Rows      []schema.Record
	Matched   []schema.Record
	Total     int
	Page      int
	PageCount int
}

// Derive computes the filtered, sorted, paginated view. It is a pure
// function of its inputs; nothing is cached or mutated in place.
func Derive(records []schema.Record, s State) Derived {
	matched := make([]schema.Record, 0, len(records))
	for _, rec := range records {
		if Matches(rec, s) {
			matched = append(matched, rec)
		}
	}

	matched = Sort(matched, s.SortKey, s.SortDir)

	page := ClampPage(s.Page, len(matched), s.PageSize)

	return Derived{
		Rows:      Paginate(matched, page, s.PageSize),
		Matched:   matched,
		Total:     len(matched),
		Page:      page,
		PageCount: PageCount(len(matched), s.PageSize),
	}
}
