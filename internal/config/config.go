// Package config loads the presenter configuration from TOML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/shahbajlive/deck/internal/deck"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full configuration.
type Config struct {
	Theme     string          `toml:"theme"`
	Deck      string          `toml:"deck"`
	Animation AnimationConfig `toml:"animation"`
	Remote    RemoteConfig    `toml:"remote"`
	Log       LogConfig       `toml:"log"`
	Render    RenderConfig    `toml:"render"`
	Rehearsal RehearsalConfig `toml:"rehearsal"`
}

// AnimationConfig tunes transitions and the background settle delay.
type AnimationConfig struct {
	FPS               int    `toml:"fps"`
	SettleDelayMs     int    `toml:"settle_delay_ms"`
	Skip              bool   `toml:"skip"`
	DefaultType       string `toml:"default_type"`
	DefaultDurationMs int    `toml:"default_duration_ms"`
}

// RemoteConfig configures the HTTP clicker endpoint.
type RemoteConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// LogConfig configures the debug log file. An empty file discards logs.
type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// RenderConfig configures slide rendering.
type RenderConfig struct {
	CacheSize int    `toml:"cache_size"`
	CodeStyle string `toml:"code_style"`
}

// RehearsalConfig configures rehearsal timing storage.
type RehearsalConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme: "auto",
		Animation: AnimationConfig{
			FPS:               30,
			SettleDelayMs:     900,
			DefaultType:       string(deck.AnimationFade),
			DefaultDurationMs: 500,
		},
		Remote: RemoteConfig{
			Addr: "127.0.0.1:7788",
		},
		Log: LogConfig{
			Level: "info",
		},
		Render: RenderConfig{
			CacheSize: 128,
		},
		Rehearsal: RehearsalConfig{
			DBPath: filepath.Join(dataDir(), "rehearsal.db"),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/deck/config.toml, falling back to
// ~/.config.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "deck", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "deck", "config.toml")
}

func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "deck")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "deck")
}

// Load reads path on top of Default. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path (DefaultPath when empty). A missing file yields
// the defaults; any other error is returned.
func LoadOrDefault(path string) (*Config, error) {
	// A .env next to the working directory may carry DECK_* overrides.
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.applyEnv()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DECK_THEME"); v != "" {
		c.Theme = v
	}
	if v := os.Getenv("DECK_SKIP_ANIMATIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Animation.Skip = b
		}
	}
	if v := os.Getenv("DECK_REMOTE_ADDR"); v != "" {
		c.Remote.Addr = v
	}
	if v := os.Getenv("DECK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Theme) {
	case "", "auto", "mocha", "dark", "latte", "light":
	default:
		errs = append(errs, fmt.Errorf("%w: theme %q", ErrInvalid, c.Theme))
	}
	if c.Animation.FPS < 1 || c.Animation.FPS > 120 {
		errs = append(errs, fmt.Errorf("%w: animation.fps %d not in [1,120]", ErrInvalid, c.Animation.FPS))
	}
	if c.Animation.SettleDelayMs < 0 {
		errs = append(errs, fmt.Errorf("%w: animation.settle_delay_ms must not be negative", ErrInvalid))
	}
	if c.Animation.DefaultDurationMs < 0 {
		errs = append(errs, fmt.Errorf("%w: animation.default_duration_ms must not be negative", ErrInvalid))
	}
	if !deck.AnimationType(c.Animation.DefaultType).Valid() {
		errs = append(errs, fmt.Errorf("%w: animation.default_type %q", ErrInvalid, c.Animation.DefaultType))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Render.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: render.cache_size must not be negative", ErrInvalid))
	}
	if c.Remote.Enabled && c.Remote.Addr == "" {
		errs = append(errs, fmt.Errorf("%w: remote.addr is required when remote is enabled", ErrInvalid))
	}
	return errors.Join(errs...)
}

// FrameInterval is the tick period derived from the configured fps.
func (c *Config) FrameInterval() time.Duration {
	if c.Animation.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.Animation.FPS)
}

// SettleDelay returns the background settle delay.
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Animation.SettleDelayMs) * time.Millisecond
}

// DefaultTransition returns the transition used by slides that declare none.
func (c *Config) DefaultTransition() deck.AnimationSpec {
	return deck.AnimationSpec{
		Type:       deck.AnimationType(c.Animation.DefaultType),
		DurationMs: c.Animation.DefaultDurationMs,
	}
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalid, s)
}
