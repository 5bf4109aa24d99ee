// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"go-jobdemand-scraper/internal/browser"
	"go-jobdemand-scraper/internal/scraper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	LogLevel string        `yaml:"log_level" env:"LOG_LEVEL"`
	Server   ServerConfig  `yaml:"server"`
	Browser  BrowserConfig `yaml:"browser"`
	// MaxSessions caps simultaneous browser processes, 0 means one per portal.
	MaxSessions int            `yaml:"max_sessions" env:"MAX_SESSIONS"`
	Portals     []PortalConfig `yaml:"portals"`
	Telegram    TelegramConfig `yaml:"telegram"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" env:"HOST"`
	Port            string        `yaml:"port" env:"PORT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type BrowserConfig struct {
	// Headless is a pointer so an explicit "false" survives defaulting.
	Headless       *bool    `yaml:"headless" env:"BROWSER_HEADLESS"`
	ExecutablePath string   `yaml:"executable_path" env:"BROWSER_EXECUTABLE_PATH"`
	UserAgent      string   `yaml:"user_agent"`
	BlockResources []string `yaml:"block_resources"`
	ScreenshotDir  string   `yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`
	Stealth        *bool    `yaml:"stealth"`
}

// PortalConfig overrides one built-in portal by name. Zero values keep the
// built-in setting.
type PortalConfig struct {
	Name              string         `yaml:"name"`
	Disabled          bool           `yaml:"disabled"`
	SettleDelay       time.Duration  `yaml:"settle_delay"`
	NavigationTimeout time.Duration  `yaml:"navigation_timeout"`
	WaitUntil         string         `yaml:"wait_until"`
	Estimate          *scraper.Range `yaml:"estimate"`
}

type TelegramConfig struct {
	Token  string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// Load reads .env, then the YAML file at path (CONFIG_PATH or DefaultPath when
// empty), then environment overrides. A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString("LOG_LEVEL", &c.LogLevel)
	setString("HOST", &c.Server.Host)
	setString("PORT", &c.Server.Port)
	setString("BROWSER_EXECUTABLE_PATH", &c.Browser.ExecutablePath)
	setString("SCREENSHOT_DIR", &c.Browser.ScreenshotDir)
	setString("TELEGRAM_BOT_TOKEN", &c.Telegram.Token)

	if v := os.Getenv("MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_SESSIONS %q: %w", v, err)
		}
		c.MaxSessions = n
	}
	if v := os.Getenv("BROWSER_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid BROWSER_HEADLESS %q: %w", v, err)
		}
		c.Browser.Headless = &b
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", v, err)
		}
		c.Telegram.ChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Browser.Headless == nil {
		headless := true
		c.Browser.Headless = &headless
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("max_sessions must be >= 0, got %d", c.MaxSessions))
	}
	if _, err := strconv.ParseUint(c.Server.Port, 10, 16); err != nil {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Server.Port))
	}

	seen := make(map[string]bool, len(c.Portals))
	for _, p := range c.Portals {
		key := strings.ToLower(p.Name)
		switch {
		case p.Name == "":
			errs = append(errs, errors.New("portal override without a name"))
		case seen[key]:
			errs = append(errs, fmt.Errorf("portal %q configured twice", p.Name))
		}
		seen[key] = true

		if p.SettleDelay < 0 || p.NavigationTimeout < 0 {
			errs = append(errs, fmt.Errorf("portal %q: durations must be positive", p.Name))
		}
		if p.Estimate != nil && !p.Estimate.Valid() {
			errs = append(errs, fmt.Errorf("portal %q: estimate range [%d, %d) is empty", p.Name, p.Estimate.Min, p.Estimate.Max))
		}
	}
	return errors.Join(errs...)
}

// BrowserOptions builds the launch policy shared by every session.
func (c *Config) BrowserOptions() browser.Options {
	opts := browser.DefaultOptions()
	if c.Browser.Headless != nil {
		opts.Headless = *c.Browser.Headless
	}
	opts.ExecutablePath = c.Browser.ExecutablePath
	opts.ScreenshotDir = c.Browser.ScreenshotDir
	if c.Browser.Stealth != nil {
		opts.Stealth = *c.Browser.Stealth
	}
	if c.Browser.UserAgent != "" {
		opts.UserAgent = c.Browser.UserAgent
	}
	if c.Browser.BlockResources != nil {
		opts.BlockResources = c.Browser.BlockResources
	}
	return opts
}
