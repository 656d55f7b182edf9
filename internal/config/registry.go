package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeBool   KeyType = "bool"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type (string, int, bool).
	Type KeyType
	// Desc is a human-readable description shown in `fuhl config list`.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

func stringKey(desc, def string, field func(*Config) *string) *KeyEntry {
	return &KeyEntry{
		Type:       KeyTypeString,
		Desc:       desc,
		DefaultStr: def,
		get:        func(cfg *Config) string { return *field(cfg) },
		set:        func(cfg *Config, v string) error { *field(cfg) = v; return nil },
		unset:      func(cfg *Config) { *field(cfg) = def },
	}
}

func intKey(name, desc string, def, lo int, field func(*Config) *int) *KeyEntry {
	return &KeyEntry{
		Type:       KeyTypeInt,
		Desc:       desc,
		DefaultStr: strconv.Itoa(def),
		get:        func(cfg *Config) string { return strconv.Itoa(*field(cfg)) },
		set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("invalid value %q for %s: not an integer", v, name)
			}
			if n < lo {
				return fmt.Errorf("invalid value %q for %s: must be at least %d", v, name, lo)
			}
			*field(cfg) = n
			return nil
		},
		unset: func(cfg *Config) { *field(cfg) = def },
	}
}

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"history.db": stringKey("History database path (empty = browser default)", "",
		func(c *Config) *string { return &c.History.DB }),
	"history.max_url_length": intKey("history.max_url_length", "Skip URLs this long or longer (0 = keep all)",
		DefaultMaxURLLength, 0, func(c *Config) *int { return &c.History.MaxURLLength }),
	"history.limit": intKey("history.limit", "Maximum rows read from history (0 = no limit)",
		0, 0, func(c *Config) *int { return &c.History.Limit }),
	"history.include_hidden": {
		Type:       KeyTypeBool,
		Desc:       "Include rows the browser marks as hidden",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return strconv.FormatBool(cfg.History.IncludeHidden) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for history.include_hidden: %w", v, err)
			}
			cfg.History.IncludeHidden = b
			return nil
		},
		unset: func(cfg *Config) { cfg.History.IncludeHidden = true },
	},
	"picker.prompt": stringKey("Prompt shown before the query", DefaultPrompt,
		func(c *Config) *string { return &c.Picker.Prompt }),
	"picker.height": intKey("picker.height", "Visible rows (0 = fit the terminal)",
		0, 0, func(c *Config) *int { return &c.Picker.Height }),
	"picker.poll_interval_ms": intKey("picker.poll_interval_ms", "Redraw interval while idle, in milliseconds",
		DefaultPollIntervalMS, 1, func(c *Config) *int { return &c.Picker.PollIntervalMS }),
	"launch.command": stringKey("Command used to open URLs (empty = $BROWSER or OS default)", "",
		func(c *Config) *string { return &c.Launch.Command }),
	"launch.mode": {
		Type:       KeyTypeString,
		Desc:       "What to do with the selection: open, print, copy",
		DefaultStr: ModeOpen,
		get:        func(cfg *Config) string { return cfg.Launch.Mode },
		set: func(cfg *Config, v string) error {
			switch v {
			case ModeOpen, ModePrint, ModeCopy:
				cfg.Launch.Mode = v
				return nil
			}
			return fmt.Errorf("invalid value %q for launch.mode (use open, print or copy)", v)
		},
		unset: func(cfg *Config) { cfg.Launch.Mode = ModeOpen },
	},
	"ui.color": {
		Type:       KeyTypeBool,
		Desc:       "Styled output",
		DefaultStr: "true",
		get:        func(cfg *Config) string { return strconv.FormatBool(cfg.UI.Color == nil || *cfg.UI.Color) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for ui.color: %w", v, err)
			}
			cfg.UI.Color = BoolPtr(b)
			return nil
		},
		unset: func(cfg *Config) { cfg.UI.Color = BoolPtr(true) },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}
