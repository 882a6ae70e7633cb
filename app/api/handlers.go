package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"signalscout/app/database"
	"signalscout/app/export"
	"signalscout/app/feed"
	"signalscout/app/markup"
	"signalscout/app/presets"
	"signalscout/app/schema"
	"signalscout/app/view"
)

func NewHandler(controller *view.Controller, loader LoaderInterface,
	presetCache *presets.Cache, signalRepo database.SignalRepository,
	feedURL string, pageSize int) *Handler {
	return &Handler{
		controller: controller,
		loader:     loader,
		presets:    presetCache,
		signalRepo: signalRepo,
		feedURL:    feedURL,
		pageSize:   pageSize,
	}
}

// buildState assembles a full view state from the request query. A preset
// (if named) is overlaid on the defaults first, then individual parameters
// override the result. Unknown enum values and unparsable numbers are
// ignored rather than rejected.
func (h *Handler) buildState(c *gin.Context) view.State {
	state := view.NewState(h.pageSize)

	if name := c.Query("preset"); name != "" && h.presets != nil {
		if preset, err := h.presets.Get(name); err == nil {
			state = preset.Apply(state)
		} else {
			slog.Debug("Unknown preset ignored", "preset", name)
		}
	}

	if q, ok := c.GetQuery("q"); ok {
		state.Query = q
	}

	if raw, ok := c.GetQuery("missions"); ok {
		for m := range state.Missions {
			state.Missions[m] = false
		}
		for _, v := range strings.Split(raw, ",") {
			if m := schema.Mission(strings.TrimSpace(v)); m.Valid() {
				state.Missions[m] = true
			}
		}
	}

	if raw, ok := c.GetQuery("archetypes"); ok {
		for a := range state.Archetypes {
			state.Archetypes[a] = false
		}
		for _, v := range strings.Split(raw, ",") {
			if a := schema.Archetype(strings.TrimSpace(v)); a.Valid() {
				state.Archetypes[a] = true
			}
		}
	}

	if focus := c.Query("focus"); focus == view.Any || schema.Focus(focus).Valid() {
		state.Focus = focus
	}

	if brand := c.Query("brand"); brand == view.Any || schema.Brand(brand).Valid() {
		state.Brand = brand
	}

	if raw := c.Query("min_score"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			state.MinScore = min
		}
	}

	if from, ok := c.GetQuery("from"); ok {
		state.DateFrom = from
	}
	if to, ok := c.GetQuery("to"); ok {
		state.DateTo = to
	}

	if key := c.Query("sort"); view.ValidSortKey(key) {
		state.SortKey = key
	}
	if dir := view.SortDirection(c.Query("dir")); dir == view.SortAsc || dir == view.SortDesc {
		state.SortDir = dir
	}

	if raw := c.Query("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			state.Page = page
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			state.PageSize = size
		}
	}

	return state
}

func (h *Handler) GetSignals(c *gin.Context) {
	d := h.controller.Apply(h.buildState(c))

	rows := make([]Row, 0, len(d.Rows))
	for _, rec := range d.Rows {
		rows = append(rows, Row{
			Record:           rec,
			BriefSummaryHTML: markup.Render(rec.BriefSummary),
		})
	}

	st := h.loader.State()

	c.JSON(http.StatusOK, ViewResponse{
		Records:   rows,
		Total:     d.Total,
		Page:      d.Page,
		PageCount: d.PageCount,
		PageSize:  h.controller.State().PageSize,
		Stats:     view.Summarize(d.Matched),
		Feed: FeedStatus{
			Status:       string(st.Status),
			Stale:        st.Stale,
			ErrorMessage: st.ErrorMessage,
		},
	})
}

func (h *Handler) ExportCSV(c *gin.Context) {
	h.controller.Apply(h.buildState(c))
	records := h.controller.Export("csv")

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"signals-%s.csv\"",
		time.Now().Format("2006-01-02")))
	c.String(http.StatusOK, export.ToCSV(records))
}

func (h *Handler) ExportJSON(c *gin.Context) {
	h.controller.Apply(h.buildState(c))
	records := h.controller.Export("json")

	data, err := export.ToJSON(records)
	if err != nil {
		slog.Error("JSON export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize records"})
		return
	}

	c.Header("Content-Type", "application/json; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"signals-%s.json\"",
		time.Now().Format("2006-01-02")))
	c.String(http.StatusOK, data)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	st := h.loader.State()
	health["feed_status"] = string(st.Status)
	health["records"] = len(st.Records)

	if h.presets != nil {
		health["loaded_presets"] = h.presets.Count()
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	st := h.loader.State()

	stats := map[string]interface{}{
		"records": view.Summarize(st.Records),
		"feed": map[string]interface{}{
			"status":        string(st.Status),
			"stale":         st.Stale,
			"error_message": st.ErrorMessage,
		},
	}

	if h.presets != nil {
		stats["presets"] = h.presets.Names()
	}

	if h.signalRepo != nil {
		archive := map[string]interface{}{}
		if count, err := h.signalRepo.GetSignalCount(); err == nil {
			archive["signals"] = count
		}
		if count, err := h.signalRepo.GetExportCount(); err == nil {
			archive["exports"] = count
		}
		stats["archive"] = archive
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIRefresh(c *gin.Context) {
	if h.feedURL == "" {
		c.JSON(http.StatusConflict, gin.H{
			"error": "No feed URL configured",
		})
		return
	}

	if err := h.loader.Load(c.Request.Context(), h.feedURL); err != nil {
		slog.Error("Feed refresh failed", "url", h.feedURL, "error", err)

		var loadErr *feed.LoadError
		if errors.As(err, &loadErr) {
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "Feed fetch failed",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Feed refresh failed",
			"details": err.Error(),
		})
		return
	}

	st := h.loader.State()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"records": len(st.Records),
	})
}

func (h *Handler) APIUpload(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	if err := h.loader.LoadFromText(string(data)); err != nil {
		var parseErr *feed.ParseError
		if errors.As(err, &parseErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid feed text",
				"details": err.Error(),
			})
			return
		}
		slog.Error("Feed upload failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Feed upload failed",
			"details": err.Error(),
		})
		return
	}

	st := h.loader.State()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"records": len(st.Records),
	})
}

func (h *Handler) APIListPresets(c *gin.Context) {
	names := h.presets.Names()

	list := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		preset, err := h.presets.Get(name)
		if err != nil {
			continue
		}

		info := map[string]interface{}{
			"name":       preset.Name,
			"query":      preset.Query,
			"missions":   preset.Missions,
			"archetypes": preset.Archetypes,
			"sort_key":   preset.SortKey,
		}
		if preset.MinScore != nil {
			info["min_score"] = *preset.MinScore
		}
		list = append(list, info)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"presets": list,
		"total":   len(list),
	})
}
