// Package config provides configuration types and defaults for quill.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/overlay"
	"github.com/zjrosen/quill/internal/ui/markdown"
)

// Config holds all configuration options for quill.
type Config struct {
	Editor     EditorConfig     `mapstructure:"editor"`
	Bionic     BionicConfig     `mapstructure:"bionic"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	UI         UIConfig         `mapstructure:"ui"`
	Watch      WatchConfig      `mapstructure:"watch"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// EditorConfig holds editing behavior.
type EditorConfig struct {
	AutoLink         bool          `mapstructure:"auto_link"`
	SpellCheck       bool          `mapstructure:"spell_check"`
	DefaultView      string        `mapstructure:"default_view"` // "source" (default) or "formatted"
	LinkDebounce     time.Duration `mapstructure:"link_debounce"`
	SpellDebounce    time.Duration `mapstructure:"spell_debounce"`
	RedetectDebounce time.Duration `mapstructure:"redetect_debounce"`
}

// BionicConfig holds reading overlay options.
type BionicConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Strength string `mapstructure:"strength"` // "light", "medium" (default) or "strong"
}

// DictionaryConfig holds spell-check sources.
type DictionaryConfig struct {
	// Path is a newline-separated word list. Empty means search the
	// system locations (/usr/share/dict/words and friends).
	Path string `mapstructure:"path"`

	// CustomDB is the sqlite file holding user-added words.
	// Default: ~/.config/quill/dictionary.db
	CustomDB string `mapstructure:"custom_db"`

	MaxSuggestions int `mapstructure:"max_suggestions"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // glamour style name, "dark" by default
}

// WatchConfig controls reloading when the open file changes on disk.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/quill/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

const (
	ViewSource    = "source"
	ViewFormatted = "formatted"
)

// ParsedStrength parses Strength, falling back to medium.
func (b BionicConfig) ParsedStrength() overlay.Strength {
	s, err := overlay.ParseStrength(b.Strength)
	if err != nil {
		return overlay.Medium
	}
	return s
}

// DefaultConfigDir returns ~/.config/quill or empty string if home dir unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill")
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/quill/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// DefaultCustomDBPath returns ~/.config/quill/dictionary.db.
func DefaultCustomDBPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "dictionary.db")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			AutoLink:         true,
			SpellCheck:       true,
			DefaultView:      ViewSource,
			LinkDebounce:     300 * time.Millisecond,
			SpellDebounce:    500 * time.Millisecond,
			RedetectDebounce: 400 * time.Millisecond,
		},
		Bionic: BionicConfig{
			Enabled:  false,
			Strength: "medium",
		},
		Dictionary: DictionaryConfig{
			CustomDB:       DefaultCustomDBPath(),
			MaxSuggestions: 5,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if err := ValidateEditor(cfg.Editor); err != nil {
		return err
	}
	if err := ValidateBionic(cfg.Bionic); err != nil {
		return err
	}
	if cfg.Dictionary.MaxSuggestions < 0 {
		return fmt.Errorf("dictionary.max_suggestions must not be negative, got %d", cfg.Dictionary.MaxSuggestions)
	}
	if cfg.UI.MarkdownStyle != "" && !markdown.ValidStyle(cfg.UI.MarkdownStyle) {
		return fmt.Errorf("ui.markdown_style must be one of %s, got %q", strings.Join(markdown.Styles, ", "), cfg.UI.MarkdownStyle)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateEditor checks editor options. Zero durations are allowed and
// mean the pass runs on the next tick.
func ValidateEditor(e EditorConfig) error {
	switch e.DefaultView {
	case "", ViewSource, ViewFormatted:
	default:
		return fmt.Errorf("editor.default_view must be %q or %q, got %q", ViewSource, ViewFormatted, e.DefaultView)
	}
	for name, d := range map[string]time.Duration{
		"link_debounce":     e.LinkDebounce,
		"spell_debounce":    e.SpellDebounce,
		"redetect_debounce": e.RedetectDebounce,
	} {
		if d < 0 {
			return fmt.Errorf("editor.%s must not be negative, got %s", name, d)
		}
	}
	return nil
}

// ValidateBionic checks the overlay strength.
func ValidateBionic(b BionicConfig) error {
	if _, err := overlay.ParseStrength(b.Strength); err != nil {
		return fmt.Errorf("bionic.strength: %w", err)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	// Validate Exporter is a valid option
	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Quill Configuration

# Editing behavior
editor:
  auto_link: true          # Turn bare URLs and emails into links
  spell_check: true        # Underline misspelled words
  default_view: source     # View on startup: "source" or "formatted"
  link_debounce: 300ms     # Idle time before links are re-detected
  spell_debounce: 500ms    # Idle time before spell-check runs
  redetect_debounce: 400ms # Idle time before the formatted view re-parses

# Bionic reading overlay (formatted view is read-only while enabled)
bionic:
  enabled: false
  strength: medium         # light, medium or strong

# Spell-check dictionaries
dictionary:
  # path: /usr/share/dict/words  # Word list (default: first system list found)
  # custom_db: ~/.config/quill/dictionary.db
  max_suggestions: 5

# UI settings
ui:
  show_status_bar: true    # Show status bar at bottom
  # markdown_style: dark   # Help page glamour style: dark, light, dracula, tokyo-night, ...

# Reload the open file when it changes on disk
watch:
  enabled: true
  debounce: 200ms

# Distributed tracing configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/quill/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
