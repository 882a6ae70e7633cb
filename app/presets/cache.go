package presets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"signalscout/app/schema"
	"signalscout/app/view"
)

// Cache holds the named view presets loaded from a directory of yaml
// files. Preset names are derived from filenames.
type Cache struct {
	dir   string
	mu    sync.RWMutex
	cache map[string]*Preset
}

func NewCache(dir string) *Cache {
	return &Cache{
		dir:   dir,
		cache: make(map[string]*Preset),
	}
}

// Run loads every *.yml and *.yaml file in the presets directory. A
// missing directory is not an error; a broken preset file is.
func (c *Cache) Run() error {
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(c.dir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find preset files: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(c.dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to find preset files: %w", err)
	}
	files = append(files, yamlFiles...)

	for _, file := range files {
		preset, err := c.loadFile(file)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		c.mu.Lock()
		c.cache[preset.Name] = preset
		c.mu.Unlock()

		slog.Debug("Preset loaded", "preset", preset.Name)
	}

	return nil
}

func (c *Cache) loadFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var preset Preset
	if err := yaml.Unmarshal(data, &preset); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	name := filepath.Base(path)
	preset.Name = strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")

	if err := validate(&preset); err != nil {
		return nil, fmt.Errorf("invalid preset: %w", err)
	}

	return &preset, nil
}

// Get returns the preset with the given name.
func (c *Cache) Get(name string) (*Preset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	preset, ok := c.cache[name]
	if !ok {
		return nil, fmt.Errorf("preset '%s' not found", name)
	}
	return preset, nil
}

// Names returns all preset names, sorted.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.cache))
	for name := range c.cache {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

func validate(p *Preset) error {
	for _, m := range p.Missions {
		if !schema.Mission(m).Valid() {
			return fmt.Errorf("unknown mission '%s'", m)
		}
	}
	for _, a := range p.Archetypes {
		if !schema.Archetype(a).Valid() {
			return fmt.Errorf("unknown archetype '%s'", a)
		}
	}
	if p.Focus != "" && p.Focus != view.Any && !schema.Focus(p.Focus).Valid() {
		return fmt.Errorf("unknown focus '%s'", p.Focus)
	}
	if p.Brand != "" && p.Brand != view.Any && !schema.Brand(p.Brand).Valid() {
		return fmt.Errorf("unknown brand '%s'", p.Brand)
	}
	if p.SortKey != "" && !view.ValidSortKey(p.SortKey) {
		return fmt.Errorf("unknown sort key '%s'", p.SortKey)
	}
	if p.SortDir != "" && p.SortDir != string(view.SortAsc) && p.SortDir != string(view.SortDesc) {
		return fmt.Errorf("unknown sort direction '%s'", p.SortDir)
	}
	if p.PageSize < 0 {
		return fmt.Errorf("negative page size")
	}
	return nil
}

// Apply overlays the preset on base and returns the combined state. A
// missions/archetypes list narrows inclusion to exactly the listed values.
func (p *Preset) Apply(base view.State) view.State {
	state := base.Clone()

	if p.Query != "" {
		state.Query = p.Query
	}
	if len(p.Missions) > 0 {
		for m := range state.Missions {
			state.Missions[m] = false
		}
		for _, m := range p.Missions {
			state.Missions[schema.Mission(m)] = true
		}
	}
	if len(p.Archetypes) > 0 {
		for a := range state.Archetypes {
			state.Archetypes[a] = false
		}
		for _, a := range p.Archetypes {
			state.Archetypes[schema.Archetype(a)] = true
		}
	}
	if p.Focus != "" {
		state.Focus = p.Focus
	}
	if p.Brand != "" {
		state.Brand = p.Brand
	}
	if p.MinScore != nil {
		state.MinScore = *p.MinScore
	}
	if p.DateFrom != "" {
		state.DateFrom = p.DateFrom
	}
	if p.DateTo != "" {
		state.DateTo = p.DateTo
	}
	if p.SortKey != "" {
		state.SortKey = p.SortKey
	}
	if p.SortDir != "" {
		state.SortDir = view.SortDirection(p.SortDir)
	}
	if p.PageSize > 0 {
		state.PageSize = p.PageSize
	}

	state.Page = 1
	return state
}
