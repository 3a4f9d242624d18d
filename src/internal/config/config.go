// FILE: logpane/src/internal/config/config.go
package config

// Options configures capture, storage and the viewer
type Options struct {
	// Maximum records retained; 0 keeps everything
	MaxRecords int `toml:"max_records"`

	// Records less severe than this are dropped at capture
	LevelThreshold string `toml:"level_threshold"`

	// Whether newly seen targets are visible before being toggled
	ShowAllCategories bool `toml:"show_all_categories"`

	// Targets dropped at capture (exact match)
	DeniedTargets []string `toml:"denied_targets"`

	RateLimit *RateLimitConfig `toml:"rate_limit"`
	Filter    *FilterOptions   `toml:"filter"`
	Viewer    *ViewerOptions   `toml:"viewer"`
	Logging   *LogConfig       `toml:"logging"`
	Demo      *DemoOptions     `toml:"demo"`
}

// FilterOptions sets the initial search behaviour of a viewer
type FilterOptions struct {
	// Text and regex queries honour case
	CaseSensitive bool `toml:"case_sensitive"`
	// Module filter ignores case
	ModuleIgnoreCase bool `toml:"module_ignore_case"`
	// Text query is also matched against the target
	MatchTarget bool `toml:"match_target"`
	// Start with the regex switch on
	RegexEnabled bool `toml:"regex_enabled"`
	// Offer the regex switch at all
	AllowRegex bool `toml:"allow_regex"`
}

// ViewerOptions sets the initial presentation state of a viewer
type ViewerOptions struct {
	// Levels initially shown
	Levels []string `toml:"levels"`
	// "relative", "clock" or "rfc3339"
	TimeFormat string `toml:"time_format"`
	// "text", "json" or "raw", used for copy and export
	RowFormat string `toml:"row_format"`
	// Newest rows displayed per frame; 0 shows all
	MaxRows int `toml:"max_rows"`
	// Follow new rows as they arrive
	StickToBottom bool `toml:"stick_to_bottom"`
}

// DemoOptions drives the demo program's synthetic writers
type DemoOptions struct {
	Writers       int     `toml:"writers"`
	RatePerWriter float64 `toml:"rate_per_writer"`
	InitialBurst  int     `toml:"initial_burst"`
	// Headless mode prints the captured rows after this many seconds
	HeadlessSeconds float64 `toml:"headless_seconds"`
	// Force headless mode even on a terminal
	Headless bool `toml:"headless"`
}

// Defaults returns the default options
func Defaults() *Options {
	return &Options{
		MaxRecords:        1000,
		LevelThreshold:    "debug",
		ShowAllCategories: true,
		DeniedTargets:     []string{},
		RateLimit: &RateLimitConfig{
			Rate:   0,
			Burst:  0,
			Policy: "drop",
		},
		Filter: &FilterOptions{
			CaseSensitive:    false,
			ModuleIgnoreCase: false,
			MatchTarget:      false,
			RegexEnabled:     false,
			AllowRegex:       true,
		},
		Viewer: &ViewerOptions{
			Levels:        []string{"error", "warn", "info", "debug", "trace"},
			TimeFormat:    "clock",
			RowFormat:     "text",
			MaxRows:       0,
			StickToBottom: true,
		},
		Logging: DefaultLogConfig(),
		Demo: &DemoOptions{
			Writers:         4,
			RatePerWriter:   5,
			InitialBurst:    1000,
			HeadlessSeconds: 2,
			Headless:        false,
		},
	}
}

// fillDefaults replaces nil sections with their defaults
func (o *Options) fillDefaults() {
	d := Defaults()
	if o.RateLimit == nil {
		o.RateLimit = d.RateLimit
	}
	if o.Filter == nil {
		o.Filter = d.Filter
	}
	if o.Viewer == nil {
		o.Viewer = d.Viewer
	}
	if o.Logging == nil {
		o.Logging = d.Logging
	}
	if o.Demo == nil {
		o.Demo = d.Demo
	}
	if o.LevelThreshold == "" {
		o.LevelThreshold = d.LevelThreshold
	}
}
