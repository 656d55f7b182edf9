package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// EnvDB names the environment variable that overrides the history database path.
const EnvDB = "FUHL_DB"

// Launch modes.
const (
	ModeOpen  = "open"
	ModePrint = "print"
	ModeCopy  = "copy"
)

const (
	DefaultMaxURLLength   = 60
	DefaultPrompt         = "> "
	DefaultPollIntervalMS = 200
)

// Config holds the top-level fuhl configuration.
type Config struct {
	History HistoryConfig `toml:"history"`
	Picker  PickerConfig  `toml:"picker"`
	Launch  LaunchConfig  `toml:"launch"`
	UI      UIConfig      `toml:"ui"`
}

// HistoryConfig controls where candidates come from and which rows are kept.
type HistoryConfig struct {
	// DB is the browser history database. Empty means the platform default.
	DB string `toml:"db"`
	// MaxURLLength drops URLs of this length or longer. 0 disables the filter.
	MaxURLLength  int  `toml:"max_url_length"`
	Limit         int  `toml:"limit"`
	IncludeHidden bool `toml:"include_hidden"`
}

type PickerConfig struct {
	Prompt         string `toml:"prompt"`
	Height         int    `toml:"height"` // 0 = fit the terminal
	PollIntervalMS int    `toml:"poll_interval_ms"`
}

// PollInterval is the longest the picker waits for input before redrawing.
func (p PickerConfig) PollInterval() time.Duration {
	return time.Duration(p.PollIntervalMS) * time.Millisecond
}

type LaunchConfig struct {
	// Command opens a URL; empty means $BROWSER or the OS opener.
	Command string `toml:"command"`
	Mode    string `toml:"mode"` // open, print, copy
}

// UIConfig controls terminal styling.
type UIConfig struct {
	// Color defaults to true when not set. NO_COLOR always wins.
	Color *bool `toml:"color,omitempty"`
}

// ColorEnabled reports whether styled output should be used.
func (u UIConfig) ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if u.Color == nil {
		return true
	}
	return *u.Color
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	CacheDir   string
	ConfigFile string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))

	fuhlConfig := filepath.Join(configDir, "fuhl")

	return Paths{
		ConfigDir:  fuhlConfig,
		CacheDir:   filepath.Join(cacheDir, "fuhl"),
		ConfigFile: filepath.Join(fuhlConfig, "config.toml"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.ConfigDir, p.CacheDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
// Keys missing from the file keep their default values.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", paths.ConfigFile, err)
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if a config file exists.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

// ApplyEnv overlays environment overrides onto cfg.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.History.DB = v
	}
}

// ApplyFlags overlays flags the user actually set. Unknown names are ignored so
// commands can register any subset.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	set := func(name string, apply func() error) {
		if err != nil || fs.Lookup(name) == nil || !fs.Changed(name) {
			return
		}
		if e := apply(); e != nil {
			err = fmt.Errorf("flag --%s: %w", name, e)
		}
	}

	set("db", func() error {
		v, e := fs.GetString("db")
		c.History.DB = v
		return e
	})
	set("limit", func() error {
		v, e := fs.GetInt("limit")
		c.History.Limit = v
		return e
	})
	set("max-url-length", func() error {
		v, e := fs.GetInt("max-url-length")
		c.History.MaxURLLength = v
		return e
	})
	set("include-hidden", func() error {
		v, e := fs.GetBool("include-hidden")
		c.History.IncludeHidden = v
		return e
	})
	set("height", func() error {
		v, e := fs.GetInt("height")
		c.Picker.Height = v
		return e
	})
	set("print", func() error {
		v, e := fs.GetBool("print")
		if v {
			c.Launch.Mode = ModePrint
		}
		return e
	})
	set("copy", func() error {
		v, e := fs.GetBool("copy")
		if v {
			c.Launch.Mode = ModeCopy
		}
		return e
	})
	set("no-color", func() error {
		v, e := fs.GetBool("no-color")
		if v {
			c.UI.Color = BoolPtr(false)
		}
		return e
	})
	return err
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Launch.Mode {
	case ModeOpen, ModePrint, ModeCopy:
	default:
		return fmt.Errorf("launch.mode must be one of open, print, copy (got %q)", c.Launch.Mode)
	}
	if c.History.MaxURLLength < 0 {
		return fmt.Errorf("history.max_url_length must not be negative")
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must not be negative")
	}
	if c.Picker.Height < 0 {
		return fmt.Errorf("picker.height must not be negative")
	}
	if c.Picker.PollIntervalMS <= 0 {
		return fmt.Errorf("picker.poll_interval_ms must be positive")
	}
	return nil
}

// BoolPtr returns a pointer to a bool value.
func BoolPtr(v bool) *bool {
	return &v
}

func defaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			MaxURLLength:  DefaultMaxURLLength,
			IncludeHidden: true,
		},
		Picker: PickerConfig{
			Prompt:         DefaultPrompt,
			PollIntervalMS: DefaultPollIntervalMS,
		},
		Launch: LaunchConfig{
			Mode: ModeOpen,
		},
		UI: UIConfig{
			Color: BoolPtr(true),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
