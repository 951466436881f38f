package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"sheetchat/internal/types"
)

const (
	defaultAPIBaseURL = "http://localhost:8000/api"
	defaultLogLevel   = "info"
	defaultView       = ViewSheets
)

const (
	EnvAPIBase       = "SHEETCHAT_API_BASE"
	EnvLegacyAPIBase = "VITE_API_BASE"
	EnvLogLevel      = "SHEETCHAT_LOG_LEVEL"
)

const (
	ViewSheets    = "sheets"
	ViewDocuments = "documents"
	ViewFiles     = "files"
)

const (
	MarkdownDark  = "dark"
	MarkdownLight = "light"
	MarkdownASCII = "ascii"
)

type Config struct {
	API     APIConfig     `toml:"api"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type APIConfig struct {
	BaseURL        string            `toml:"base_url"`
	RequestTimeout Duration          `toml:"request_timeout"`
	Headers        map[string]string `toml:"headers"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type UIConfig struct {
	DefaultView   string            `toml:"default_view"`
	MarkdownStyle string            `toml:"markdown_style"`
	Keys          map[string]string `toml:"keys,omitempty"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: defaultAPIBaseURL,
		},
		Logging: LoggingConfig{
			Level: defaultLogLevel,
		},
		UI: UIConfig{
			DefaultView:   defaultView,
			MarkdownStyle: MarkdownDark,
		},
	}
}

// Load reads the config file, then applies .env and environment overrides.
// A missing config file or .env file is not an error.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	cfg, err := loadFromPath(path)
	if err != nil {
		return Config{}, err
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

// loadDotEnv reads .env from the working directory. Only a missing file is
// ignored; a malformed one is reported.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}
	return nil
}

func (c Config) APIBaseURL() string {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return defaultAPIBaseURL
	}
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	return strings.TrimRight(base, "/")
}

// UsesTunnel reports whether the base URL points at an ngrok tunnel, which
// needs the browser-warning bypass header.
func (c Config) UsesTunnel() bool {
	parsed, err := url.Parse(c.APIBaseURL())
	if err != nil {
		return strings.Contains(c.APIBaseURL(), "ngrok")
	}
	return strings.Contains(strings.ToLower(parsed.Host), "ngrok")
}

func (c Config) RequestTimeout() time.Duration {
	if c.API.RequestTimeout.Duration < 0 {
		return 0
	}
	return c.API.RequestTimeout.Duration
}

func (c Config) ExtraHeaders() map[string]string {
	if len(c.API.Headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.API.Headers))
	for key, value := range c.API.Headers {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return defaultLogLevel
	}
	return level
}

func (c Config) ResolveLogPath() (string, error) {
	path := strings.TrimSpace(c.Logging.File)
	if path == "" {
		return LogPath()
	}
	return resolveConfigPath(path)
}

func (c Config) DefaultView() string {
	switch strings.ToLower(strings.TrimSpace(c.UI.DefaultView)) {
	case ViewDocuments, "docs", "rag":
		return ViewDocuments
	case ViewFiles:
		return ViewFiles
	default:
		return ViewSheets
	}
}

func (c Config) MarkdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(c.UI.MarkdownStyle)) {
	case MarkdownLight:
		return MarkdownLight
	case MarkdownASCII, "plain":
		return MarkdownASCII
	default:
		return MarkdownDark
	}
}

// Keymap is the default keymap with [ui.keys] rebindings applied.
func (c Config) Keymap() *types.Keymap {
	return types.DefaultKeymap().WithOverrides(c.UI.Keys)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if value, ok := lookup(EnvLegacyAPIBase); ok && strings.TrimSpace(value) != "" {
		c.API.BaseURL = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvAPIBase); ok && strings.TrimSpace(value) != "" {
		c.API.BaseURL = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.TrimSpace(value)
	}
}

func loadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
