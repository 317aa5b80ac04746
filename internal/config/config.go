// Package config loads the user configuration from TOML files.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "ripple"

// Screens the UI can start on.
const (
	ScreenQueue   = "queue"
	ScreenSearch  = "search"
	ScreenLibrary = "library"
)

const (
	defaultKeepalive      = 30 * time.Second
	defaultReconnectDelay = time.Second
	defaultCommandKey     = ":"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Playback PlaybackConfig `koanf:"playback"`
	UI       UIConfig       `koanf:"ui"`
	MPRIS    MPRISConfig    `koanf:"mpris"`

	// Keybindings maps a key name ("ctrl+l", "f", "pgdown") to command text.
	Keybindings map[string]string `koanf:"keybindings"`
}

// ServerConfig seeds the login command. Only the derived token is stored.
type ServerConfig struct {
	URL      string `koanf:"url"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	ClientID string `koanf:"client_id"`
}

type PlaybackConfig struct {
	Bitrate        int           `koanf:"bitrate"` // kbps, 0 lets the server decide
	Format         string        `koanf:"format"`  // e.g. "mp3", "raw"
	InitialVolume  *int          `koanf:"initial_volume"`
	Keepalive      time.Duration `koanf:"keepalive"`
	ReconnectDelay time.Duration `koanf:"reconnect_delay"`
}

type UIConfig struct {
	CommandKey    string `koanf:"command_key"`
	InitialScreen string `koanf:"initial_screen"`
	Icons         string `koanf:"icons"` // "nerd", "unicode" or "none"
}

type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// Load reads path, or when path is empty the user config followed by
// ./config.toml (last wins). Missing default files are skipped.
func Load(path string) (*Config, error) {
	// Key names such as "." appear in [keybindings], so the path delimiter
	// cannot be a dot.
	k := koanf.New("::")

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else {
		for _, p := range getConfigPaths() {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", p, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath is the user config file.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

func getConfigPaths() []string {
	return []string{DefaultPath(), "config.toml"}
}

func (c *Config) applyDefaults() {
	c.Server.URL = strings.TrimSuffix(c.Server.URL, "/")
	if c.Playback.Keepalive <= 0 {
		c.Playback.Keepalive = defaultKeepalive
	}
	if c.Playback.ReconnectDelay <= 0 {
		c.Playback.ReconnectDelay = defaultReconnectDelay
	}
	if c.UI.CommandKey == "" {
		c.UI.CommandKey = defaultCommandKey
	}
	if c.UI.InitialScreen == "" {
		c.UI.InitialScreen = ScreenQueue
	}
}

func (c *Config) validate() error {
	var errs []error
	switch c.UI.Icons {
	case "", "nerd", "unicode", "none":
	default:
		errs = append(errs, fmt.Errorf("ui.icons: unknown style %q", c.UI.Icons))
	}
	switch c.UI.InitialScreen {
	case ScreenQueue, ScreenSearch, ScreenLibrary:
	default:
		errs = append(errs, fmt.Errorf("ui.initial_screen: unknown screen %q", c.UI.InitialScreen))
	}
	if v := c.Playback.InitialVolume; v != nil && (*v < 0 || *v > 100) {
		errs = append(errs, fmt.Errorf("playback.initial_volume: %d is not a percentage", *v))
	}
	if c.Playback.Bitrate < 0 {
		errs = append(errs, errors.New("playback.bitrate: must not be negative"))
	}
	return errors.Join(errs...)
}

// Volume returns the configured initial volume on the 0..MaxUint16 scale,
// or false when unset.
func (c *Config) Volume() (uint16, bool) {
	if c.Playback.InitialVolume == nil {
		return 0, false
	}
	return uint16(*c.Playback.InitialVolume * math.MaxUint16 / 100), true //nolint:gosec // validated range
}

// HasPassword reports whether credentials can be derived without a login.
func (c *Config) HasPassword() bool {
	return c.Server.URL != "" && c.Server.Username != "" && c.Server.Password != ""
}

// MPRISEnabled returns whether the MPRIS adapter should run.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}
