package view

import (
	"signalscout/app/schema"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Any disables the focus/brand single-choice filters.
const Any = "any"

// DefaultSortKey is the order the scanning agent publishes shortlists in.
const DefaultSortKey = "total_score"

// State is the full view state: which records are visible, in what order,
// and which page is shown. It is a plain value; the Controller owns the
// authoritative copy and every derived view is a pure function of
// (records, State).
type State struct {
	Query      string
	Missions   map[schema.Mission]bool
	Archetypes map[schema.Archetype]bool
	Focus      string // a schema.Focus value or Any
	Brand      string // a schema.Brand value or Any
	MinScore   float64
	DateFrom   string // YYYY-MM-DD, empty means unbounded
	DateTo     string
	SortKey    string
	SortDir    SortDirection
	Page       int // 1-based
	PageSize   int
}

// NewState returns the default view state: everything included, no query,
// no score or date bounds, sorted by total score descending, page 1.
func NewState(pageSize int) State {
	missions := make(map[schema.Mission]bool, len(schema.Missions()))
	for _, m := range schema.Missions() {
		missions[m] = true
	}
	archetypes := make(map[schema.Archetype]bool, len(schema.Archetypes()))
	for _, a := range schema.Archetypes() {
		archetypes[a] = true
	}

	return State{
		Missions:   missions,
		Archetypes: archetypes,
		Focus:      Any,
		Brand:      Any,
		SortKey:    DefaultSortKey,
		SortDir:    SortDesc,
		Page:       1,
		PageSize:   pageSize,
	}
}

// Clone returns an independent copy, so a stored State is never mutated
// through a shared map.
func (s State) Clone() State {
	out := s
	out.Missions = make(map[schema.Mission]bool, len(s.Missions))
	for m, ok := range s.Missions {
		out.Missions[m] = ok
	}
	out.Archetypes = make(map[schema.Archetype]bool, len(s.Archetypes))
	for a, ok := range s.Archetypes {
		out.Archetypes[a] = ok
	}
	return out
}

// IncludedMissions reports the included missions in fixed order.
func (s State) IncludedMissions() []schema.Mission {
	out := make([]schema.Mission, 0, len(s.Missions))
	for _, m := range schema.Missions() {
		if s.Missions[m] {
			out = append(out, m)
		}
	}
	return out
}

// IncludedArchetypes reports the included archetypes in fixed order.
func (s State) IncludedArchetypes() []schema.Archetype {
	out := make([]schema.Archetype, 0, len(s.Archetypes))
	for _, a := range schema.Archetypes() {
		if s.Archetypes[a] {
			out = append(out, a)
		}
	}
	return out
}
