// Package config loads the application configuration: built-in defaults,
// then the TOML config file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/compedit/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger     logger.Config    `toml:"logger"`
	Editor     EditorConfig     `toml:"editor"`
	Appearance AppearanceConfig `toml:"appearance"`
	Generator  GeneratorConfig  `toml:"generator"`

	// Undecoded lists keys in the file that matched no field. They are
	// reported once the logger is up.
	Undecoded []string `toml:"-"`
	// Path is the file the config was read from, "" if none.
	Path string `toml:"-"`
}

// EditorConfig holds undo and clipboard settings.
type EditorConfig struct {
	MaxHistory      int  `toml:"max_history"`
	MergeWindowMS   int  `toml:"merge_window_ms"` // 0 disables merging
	SystemClipboard bool `toml:"system_clipboard"`
}

// MergeWindow is MergeWindowMS as a duration.
func (e EditorConfig) MergeWindow() time.Duration {
	return time.Duration(e.MergeWindowMS) * time.Millisecond
}

// AppearanceConfig selects the colour scheme.
type AppearanceConfig struct {
	SchemesDir   string `toml:"schemes_dir"` // "" means <config dir>/compedit/schemes
	Scheme       string `toml:"scheme"`
	WatchSchemes bool   `toml:"watch_schemes"`
}

// GeneratorConfig controls code generation.
type GeneratorConfig struct {
	ClassName         string `toml:"class_name"`
	ValidateCode      bool   `toml:"validate_code"`
	LiteralLineLength int    `toml:"literal_line_length"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			MaxHistory:      DefaultMaxHistory,
			MergeWindowMS:   DefaultMergeWindowMS,
			SystemClipboard: SystemClipboard,
		},
		Appearance: AppearanceConfig{
			WatchSchemes: true,
		},
		Generator: GeneratorConfig{
			ClassName:         DefaultClassName,
			ValidateCode:      true,
			LiteralLineLength: DefaultLiteralLineLength,
		},
	}
}

// DefaultPath is ~/.config/compedit/config.toml, or "" if the user config
// dir is unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// DefaultLogPath is where the terminal editor logs when no file is
// configured, since stderr is covered by the screen.
func DefaultLogPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), DefaultLogFileName)
	}
	return filepath.Join(cacheDir, AppName, DefaultLogFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(cfg *Config, filePath string) error {
	_, err := os.Stat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	for _, key := range metadata.Undecoded() {
		cfg.Undecoded = append(cfg.Undecoded, key.String())
	}
	cfg.Path = filePath
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.MaxHistory <= 0 {
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.MergeWindowMS < 0 {
		c.Editor.MergeWindowMS = defaults.Editor.MergeWindowMS
	}
	if c.Generator.LiteralLineLength <= 0 {
		c.Generator.LiteralLineLength = defaults.Generator.LiteralLineLength
	}
	if c.Generator.ClassName == "" {
		c.Generator.ClassName = defaults.Generator.ClassName
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds a configuration from defaults, the file at configFilePath
// (the default location when empty) and the flags that were set. The
// returned config is usable even when err is non-nil.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(cfg, effectivePath)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig runs Load once and keeps the result for Get. It is called
// from main before the logger exists, so it does not log.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// ReportUndecoded logs the unknown keys found in the config file.
func (c *Config) ReportUndecoded() {
	if len(c.Undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", c.Path, c.Undecoded)
	}
}
