package presets

// Preset is a named, partial view state loaded from a yaml file. Only the
// fields a preset sets are overlaid on the default state; everything else
// keeps its default.
type Preset struct {
	Name       string   `yaml:"-"` // derived from filename
	Query      string   `yaml:"query"`
	Missions   []string `yaml:"missions"`
	Archetypes []string `yaml:"archetypes"`
	Focus      string   `yaml:"focus"`
	Brand      string   `yaml:"brand"`
	MinScore   *float64 `yaml:"min_score"`
	DateFrom   string   `yaml:"date_from"`
	DateTo     string   `yaml:"date_to"`
	SortKey    string   `yaml:"sort_key"`
	SortDir    string   `yaml:"sort_dir"`
	PageSize   int      `yaml:"page_size"`
}
