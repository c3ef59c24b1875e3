package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full cleaner configuration. It is built once at startup
// and passed by reference into every component; nothing reads it from
// ambient state afterwards.
type Config struct {
	// Target settings
	Editor       string   `mapstructure:"editor"`        // editor key (vscode, cursor, ...)
	ExtensionIDs []string `mapstructure:"extension_ids"` // exact extension identifiers
	Markers      []string `mapstructure:"markers"`       // case-insensitive marker substrings

	// DatabaseKeys maps a purpose group (augment_specific, chat, analytics)
	// to SQL LIKE patterns applied to the key column of ItemTable.
	DatabaseKeys map[string][]string `mapstructure:"database_keys"`

	// Safety settings
	ForbiddenPatterns []string `mapstructure:"forbidden_patterns"` // extra wildcard patterns the gate vetoes

	// Reconcile settings
	MaxRounds   int           `mapstructure:"max_rounds"`   // scan→clean→verify round budget
	SettleDelay time.Duration `mapstructure:"settle_delay"` // pause between clean and verify

	// Process settings
	KillWait time.Duration `mapstructure:"kill_wait"` // graceful-exit wait before force kill

	// Extension CLI settings
	ExecTimeout time.Duration `mapstructure:"exec_timeout"` // per editor-CLI invocation

	// Augment env settings
	PreserveItems []string `mapstructure:"preserve_items"` // kept when cleaning ~/.augment

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // "", json, md
	OutputFile   string `mapstructure:"output_file"`

	// Log settings
	LogFile       string `mapstructure:"log_file"` // rotated log file, empty for stderr only
	LogMaxSizeMB  int    `mapstructure:"log_max_size_mb"`
	LogMaxAgeDays int    `mapstructure:"log_max_age_days"`
}

// Load builds the configuration from built-in defaults, an optional external
// config file, and AUGCLEAN_* environment variables, in increasing
// precedence. An empty path means defaults only; an unreadable file is an
// error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("AUGCLEAN")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("editor", "vscode")

	// Known identifier variants of the Augment extension across the
	// VS Code editor family.
	v.SetDefault("extension_ids", []string{
		"augmentcode.augment",
		"augmentcode.augment-vscode",
		"augmentcode.augment-cursor",
		"augmentcode.augment-windsurf",
		"augmentcode.augment-vscodium",
		"augment.augment",
		"vscode-augment",
		"augment-code",
		"augmentcode.vscode-augment",
	})

	v.SetDefault("markers", []string{"augment", "augmentcode"})

	v.SetDefault("database_keys", map[string][]string{
		"augment_specific": {
			"%augment%", "%AugmentCode%", "%augmentcode%",
			"%chat%", "%conversation%", "%message%",
			"%dialog%", "%session%", "%history%",
			"%Fix with Augment%", "%vscode-augment%",
		},
		"chat": {
			"%chat%", "%conversation%", "%message%", "%dialog%",
			"%augment.chat%", "%augment.history%", "%augment.session%",
		},
		"analytics": {
			"%telemetry%", "%tracking%", "%analytics%", "%metrics%",
		},
	})

	v.SetDefault("forbidden_patterns", []string{})

	v.SetDefault("max_rounds", 3)
	v.SetDefault("settle_delay", "2s")
	v.SetDefault("kill_wait", "5s")
	v.SetDefault("exec_timeout", "30s")

	v.SetDefault("preserve_items", []string{"settings.json", "binaries"})

	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")

	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_age_days", 14)
}

// PatternsFor returns the LIKE patterns of one purpose group. Unknown
// groups resolve to nil; callers treat that as nothing to match.
func (c *Config) PatternsFor(group string) []string {
	return c.DatabaseKeys[group]
}

// DatabaseGroups returns the configured pattern group names, sorted.
func (c *Config) DatabaseGroups() []string {
	groups := make([]string, 0, len(c.DatabaseKeys))
	for group := range c.DatabaseKeys {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

// AllDatabasePatterns merges every pattern group, deduplicated, with the
// built-in groups first so output order is stable.
func (c *Config) AllDatabasePatterns() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(patterns []string) {
		for _, p := range patterns {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	builtin := []string{"augment_specific", "chat", "analytics"}
	for _, group := range builtin {
		add(c.DatabaseKeys[group])
	}
	for group, patterns := range c.DatabaseKeys {
		if group == "augment_specific" || group == "chat" || group == "analytics" {
			continue
		}
		add(patterns)
	}
	return out
}
