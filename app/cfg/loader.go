package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed source
	FeedURL         string `long:"feed-url" env:"FEED_URL" description:"URL of the signal feed (JSON array of records)"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"900" description:"Staleness interval in seconds (0 disables, minimum 30)"`

	// View defaults
	PageSize   int    `long:"page-size" env:"PAGE_SIZE" default:"25" description:"Default number of rows per page"`
	PresetsDir string `long:"presets-dir" env:"PRESETS_DIR" default:"./presets" description:"Directory containing view preset files"`

	// Archive
	DBPath string `long:"db-path" env:"DB_PATH" default:"signals.db" description:"Path to the sqlite signal archive (empty disables archiving)"`

	// HTTP server
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for mutating endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Signal Scout/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/London)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedURL:         raw.FeedURL,
		RefreshInterval: raw.RefreshInterval,
		PageSize:        raw.PageSize,
		PresetsDir:      raw.PresetsDir,
		DBPath:          raw.DBPath,
		Port:            raw.Port,
		APIAccessKey:    raw.APIAccessKey,
		UserAgent:       raw.UserAgent,
		Timezone:        raw.Timezone,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
