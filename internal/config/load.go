package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zjrosen/quill/internal/log"
)

// LocalConfigPath is the per-directory config file.
const LocalConfigPath = ".quill/config.yaml"

// SetDefaults registers every default with v so keys missing from the file
// keep their default values.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.auto_link", d.Editor.AutoLink)
	v.SetDefault("editor.spell_check", d.Editor.SpellCheck)
	v.SetDefault("editor.default_view", d.Editor.DefaultView)
	v.SetDefault("editor.link_debounce", d.Editor.LinkDebounce)
	v.SetDefault("editor.spell_debounce", d.Editor.SpellDebounce)
	v.SetDefault("editor.redetect_debounce", d.Editor.RedetectDebounce)
	v.SetDefault("bionic.enabled", d.Bionic.Enabled)
	v.SetDefault("bionic.strength", d.Bionic.Strength)
	v.SetDefault("dictionary.path", d.Dictionary.Path)
	v.SetDefault("dictionary.custom_db", d.Dictionary.CustomDB)
	v.SetDefault("dictionary.max_suggestions", d.Dictionary.MaxSuggestions)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// Locate configures v to read the config file. An explicit path wins;
// otherwise .quill/config.yaml in the working directory, then
// ~/.config/quill/config.yaml.
func Locate(v *viper.Viper, explicit string) {
	if explicit != "" {
		v.SetConfigFile(explicit)
		return
	}
	if _, err := os.Stat(LocalConfigPath); err == nil {
		v.SetConfigFile(LocalConfigPath)
		return
	}
	if dir := DefaultConfigDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

// Load reads and validates the configuration. When no file exists anywhere
// and no explicit path was given, the default template is written to
// .quill/config.yaml first. It returns the config file actually used.
func Load(v *viper.Viper, explicit string) (Config, string, error) {
	SetDefaults(v)
	Locate(v, explicit)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		switch {
		case missing && explicit == "":
			if writeErr := WriteDefaultConfig(LocalConfigPath); writeErr == nil {
				v.SetConfigFile(LocalConfigPath)
				_ = v.ReadInConfig()
			}
		case missing:
			log.Warn(log.CatConfig, "Config file not found, using defaults", "path", explicit)
		default:
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, "", fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = DefaultTracesFilePath()
	}

	used := v.ConfigFileUsed()
	if used == "" {
		used = LocalConfigPath
	}
	if abs, err := filepath.Abs(used); err == nil {
		used = abs
	}
	log.Debug(log.CatConfig, "Loaded config", "path", used)
	return cfg, used, nil
}
