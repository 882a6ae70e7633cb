package view

import (
	"sync"

	"signalscout/app/schema"
)

// Observers are the callbacks a Controller exposes to its embedding
// application. All fields are optional.
type Observers struct {
	// OnViewChange fires with the new state and result count whenever
	// the derived view is recomputed.
	OnViewChange func(state State, total int)
	// OnSelect fires with the selected record.
	OnSelect func(rec schema.Record)
	// OnExport fires with the format and the exact exported sequence.
	OnExport func(format string, records []schema.Record)
}

// Controller owns the view state and the current record set, and
// recomputes the derived view whenever either changes. All mutation is
// serialized through its mutex; Derive itself is pure, so reads of a
// returned Derived value are always consistent.
type Controller struct {
	mu        sync.RWMutex
	records   []schema.Record
	state     State
	derived   Derived
	observers Observers
}

func NewController(initial State, observers Observers) *Controller {
	c := &Controller{
		state:     initial.Clone(),
		observers: observers,
	}
	c.derived = Derive(c.records, c.state)
	return c
}

// SetRecords replaces the record set wholesale and recomputes. The page is
// clamped, not reset: a refresh should not yank the user back to page 1.
func (c *Controller) SetRecords(records []schema.Record) Derived {
	c.mu.Lock()
	c.records = records
	d := c.recompute()
	c.mu.Unlock()
	c.notifyChange(d)
	return d
}

// Apply replaces the view state wholesale (the HTTP surface builds a full
// state per request) and recomputes.
func (c *Controller) Apply(state State) Derived {
	c.mu.Lock()
	c.state = state.Clone()
	d := c.recompute()
	c.mu.Unlock()
	c.notifyChange(d)
	return d
}

func (c *Controller) SetQuery(query string) Derived {
	return c.mutate(func(s *State) {
		s.Query = query
		s.Page = 1
	})
}

func (c *Controller) ToggleMission(m schema.Mission) Derived {
	return c.mutate(func(s *State) {
		s.Missions[m] = !s.Missions[m]
		s.Page = 1
	})
}

func (c *Controller) ToggleArchetype(a schema.Archetype) Derived {
	return c.mutate(func(s *State) {
		s.Archetypes[a] = !s.Archetypes[a]
		s.Page = 1
	})
}

func (c *Controller) SetFocus(focus string) Derived {
	return c.mutate(func(s *State) {
		s.Focus = focus
		s.Page = 1
	})
}

func (c *Controller) SetBrand(brand string) Derived {
	return c.mutate(func(s *State) {
		s.Brand = brand
		s.Page = 1
	})
}

func (c *Controller) SetMinScore(min float64) Derived {
	return c.mutate(func(s *State) {
		s.MinScore = min
		s.Page = 1
	})
}

func (c *Controller) SetDateRange(from, to string) Derived {
	return c.mutate(func(s *State) {
		s.DateFrom = from
		s.DateTo = to
		s.Page = 1
	})
}

// SetSortKey selects a new sort key and resets to page 1. Selecting the
// key already in effect toggles the direction instead, which keeps the
// current page.
func (c *Controller) SetSortKey(key string) Derived {
	return c.mutate(func(s *State) {
		if s.SortKey == key {
			s.SortDir = toggleDir(s.SortDir)
			return
		}
		s.SortKey = key
		s.SortDir = SortDesc
		s.Page = 1
	})
}

// SetSortDir sets the direction explicitly; direction changes never reset
// the page.
func (c *Controller) SetSortDir(dir SortDirection) Derived {
	return c.mutate(func(s *State) {
		s.SortDir = dir
	})
}

func (c *Controller) SetPage(page int) Derived {
	return c.mutate(func(s *State) {
		s.Page = page
	})
}

func (c *Controller) SetPageSize(size int) Derived {
	return c.mutate(func(s *State) {
		if size > 0 {
			s.PageSize = size
		}
	})
}

// Select fires the row-selection observer for the given row of the current
// page. Out-of-range rows are ignored.
func (c *Controller) Select(row int) {
	c.mu.RLock()
	var rec schema.Record
	ok := row >= 0 && row < len(c.derived.Rows)
	if ok {
		rec = c.derived.Rows[row]
	}
	c.mu.RUnlock()

	if ok && c.observers.OnSelect != nil {
		c.observers.OnSelect(rec)
	}
}

// Export returns the filtered, sorted, non-paginated sequence and fires
// the export observer. Serialization is the caller's concern.
func (c *Controller) Export(format string) []schema.Record {
	c.mu.RLock()
	records := make([]schema.Record, len(c.derived.Matched))
	copy(records, c.derived.Matched)
	c.mu.RUnlock()

	if c.observers.OnExport != nil {
		c.observers.OnExport(format, records)
	}
	return records
}

// State returns a copy of the current view state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

// Derived returns the last computed view.
func (c *Controller) Derived() Derived {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.derived
}

func (c *Controller) mutate(fn func(*State)) Derived {
	c.mu.Lock()
	next := c.state.Clone()
	fn(&next)
	c.state = next
	d := c.recompute()
	c.mu.Unlock()
	c.notifyChange(d)
	return d
}

// recompute must be called with the write lock held.
func (c *Controller) recompute() Derived {
	c.derived = Derive(c.records, c.state)
	return c.derived
}

func (c *Controller) notifyChange(d Derived) {
	if c.observers.OnViewChange != nil {
		c.observers.OnViewChange(c.State(), d.Total)
	}
}

func toggleDir(dir SortDirection) SortDirection {
	if dir == SortAsc {
		return SortDesc
	}
	return SortAsc
}
