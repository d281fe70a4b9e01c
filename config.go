package main

// Global configuration of the editor. Defaults come from DefaultConfig, are
// layered with the TOML config file and finally overridden by command-line
// flags.

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Configuration holds all adjustable settings for the editor.
type Configuration struct {
	TabWidth       int               // Number of spaces a tab is expanded to and drawn as.
	PollInterval   time.Duration     // Longest wait for input before the main loop redraws.
	MaxLogMessages int               // Capacity of the in-memory log.
	UseLogFile     bool              // Whether to append log entries to a file.
	LogFilePath    string            // Where to store the log file.
	Backend        string            // Terminal backend, "termbox" or "tcell".
	DevMode        bool              // Enables verbose logging of the highlight worker.
	ConfigPath     string            // TOML file read before flags are applied.
	Theme          map[string]string // Colour overrides by theme name.
	ShowColors     bool              // Command-line flag to show available colors and exit.
	ShowInfo       bool              // Command-line flag to show languages and exit.
	ShowVersion    bool              // Command-line flag to show version and exit.
}

// Config is the global configuration instance.
var Config = DefaultConfig()

// DefaultConfig returns the built-in settings.
func DefaultConfig() Configuration {
	return Configuration{
		TabWidth:       4,
		PollInterval:   100 * time.Millisecond,
		MaxLogMessages: 200,
		LogFilePath:    filepath.Join(os.TempDir(), "kestrel.log"),
		Backend:        "termbox",
	}
}

// fileConfig mirrors the TOML file. Pointers tell unset keys from zero values.
type fileConfig struct {
	TabWidth       *int              `toml:"tab_width"`
	PollInterval   *string           `toml:"poll_interval"`
	MaxLogMessages *int              `toml:"max_log_messages"`
	Log            *bool             `toml:"log"`
	LogPath        *string           `toml:"log_path"`
	Backend        *string           `toml:"backend"`
	Dev            *bool             `toml:"dev"`
	Theme          map[string]string `toml:"theme"`
}

// defaultConfigPath returns ~/.config/kestrel/config.toml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "kestrel", "config.toml"), nil
}

// ParseConfig builds a configuration from args. Values given on the command
// line win over the config file, which wins over the defaults. It returns the
// positional arguments (files to open).
func ParseConfig(args []string) (Configuration, []string, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("kestrel", flag.ContinueOnError)
	fs.IntVar(&cfg.TabWidth, "tab-width", cfg.TabWidth, "Number of spaces per tab")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "Input poll interval")
	fs.IntVar(&cfg.MaxLogMessages, "max-log-messages", cfg.MaxLogMessages, "Number of log messages kept in memory")
	fs.BoolVar(&cfg.UseLogFile, "log", cfg.UseLogFile, "Enable logging to file")
	fs.StringVar(&cfg.LogFilePath, "log-path", cfg.LogFilePath, "Path to log file")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Terminal backend (termbox or tcell)")
	fs.BoolVar(&cfg.DevMode, "dev", false, "Enable development mode")
	fs.StringVar(&cfg.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&cfg.ShowColors, "colors", false, "Show available colors")
	fs.BoolVar(&cfg.ShowInfo, "info", false, "Show supported languages")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	path := cfg.ConfigPath
	explicit := path != ""
	if !explicit {
		if p, err := defaultConfigPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		fc, err := loadConfigFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case err != nil:
			return cfg, nil, fmt.Errorf("loading config from %s: %w", path, err)
		default:
			if err := mergeConfig(&cfg, fc, set); err != nil {
				return cfg, nil, fmt.Errorf("config %s: %w", path, err)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, fs.Args(), nil
}

func loadConfigFile(path string) (*fileConfig, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}

// mergeConfig layers file values on top of cfg, skipping every setting whose
// flag was given explicitly.
func mergeConfig(cfg *Configuration, fc *fileConfig, set map[string]bool) error {
	if fc.TabWidth != nil && !set["tab-width"] {
		cfg.TabWidth = *fc.TabWidth
	}
	if fc.PollInterval != nil && !set["poll-interval"] {
		d, err := time.ParseDuration(*fc.PollInterval)
		if err != nil {
			return fmt.Errorf("poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if fc.MaxLogMessages != nil && !set["max-log-messages"] {
		cfg.MaxLogMessages = *fc.MaxLogMessages
	}
	if fc.Log != nil && !set["log"] {
		cfg.UseLogFile = *fc.Log
	}
	if fc.LogPath != nil && !set["log-path"] {
		cfg.LogFilePath = *fc.LogPath
	}
	if fc.Backend != nil && !set["backend"] {
		cfg.Backend = *fc.Backend
	}
	if fc.Dev != nil && !set["dev"] {
		cfg.DevMode = *fc.Dev
	}
	if len(fc.Theme) > 0 {
		cfg.Theme = fc.Theme
	}
	return nil
}

func (c Configuration) validate() error {
	if c.TabWidth < 1 {
		return fmt.Errorf("tab width must be positive, got %d", c.TabWidth)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.MaxLogMessages < 1 {
		return fmt.Errorf("max log messages must be positive, got %d", c.MaxLogMessages)
	}
	switch c.Backend {
	case "termbox", "tcell":
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	return nil
}
