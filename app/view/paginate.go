package view

import (
	"signalscout/app/schema"
)

// Paginate returns the 1-based page of the given size. The slice is
// bounds-safe: a page beyond the end yields an empty slice, never an
// error. Callers are expected to clamp page into range first; Paginate
// itself only guards the slice arithmetic.
func Paginate(records []schema.Record, page, pageSize int) []schema.Record {
	if pageSize <= 0 || page <= 0 {
		return []schema.Record{}
	}

	start := (page - 1) * pageSize
	if start >= len(records) {
		return []schema.Record{}
	}

	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// PageCount returns the number of pages needed for n records, at least 1.
func PageCount(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	count := (n + pageSize - 1) / pageSize
	if count < 1 {
		count = 1
	}
	return count
}

// ClampPage forces page into [1, PageCount(n, pageSize)].
func ClampPage(page, n, pageSize int) int {
	if page < 1 {
		return 1
	}
	if max := PageCount(n, pageSize); page > max {
		return max
	}
	return page
}
