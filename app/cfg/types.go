package cfg

type Cfg struct {
	// Feed source
	FeedURL         string
	RefreshInterval int // seconds; 0 disables the staleness timer

	// View defaults
	PageSize   int
	PresetsDir string

	// Archive
	DBPath string

	// HTTP server
	Port         string
	APIAccessKey string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
