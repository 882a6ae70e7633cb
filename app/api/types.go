package api

import (
	"context"

	"signalscout/app/database"
	"signalscout/app/feed"
	"signalscout/app/presets"
	"signalscout/app/schema"
	"signalscout/app/view"
)

type LoaderInterface interface {
	Load(ctx context.Context, url string) error
	LoadFromText(text string) error
	State() feed.State
}

var _ LoaderInterface = (*feed.Loader)(nil)

type Handler struct {
	controller *view.Controller
	loader     LoaderInterface
	presets    *presets.Cache
	signalRepo database.SignalRepository // nil when archiving is disabled
	feedURL    string
	pageSize   int
}

// Row is one rendered view row: the canonical record plus its summary
// passed through the markup sanitizer at render time.
type Row struct {
	schema.Record
	BriefSummaryHTML string `json:"brief_summary_html"`
}

// ViewResponse is the /signals payload.
type ViewResponse struct {
	Records   []Row      `json:"records"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PageCount int        `json:"page_count"`
	PageSize  int        `json:"page_size"`
	Stats     view.Stats `json:"stats"`
	Feed      FeedStatus `json:"feed"`
}

type FeedStatus struct {
	Status       string `json:"status"`
	Stale        bool   `json:"stale"`
	ErrorMessage string `json:"error_message,omitempty"`
}
