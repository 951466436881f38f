package main

import (
	"encoding/json"
	"errors"
	"flag"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"sheetchat/internal/config"
)

type ConfigCommand struct {
	stdout io.Writer
	stderr io.Writer
	load   func() (config.Config, error)
}

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"
)

type configOutput struct {
	ConfigPath string                 `json:"config_path,omitempty" toml:"config_path,omitempty"`
	API        effectiveAPIConfig     `json:"api" toml:"api"`
	Logging    effectiveLoggingConfig `json:"logging" toml:"logging"`
	UI         effectiveUIConfig      `json:"ui" toml:"ui"`
}

type effectiveAPIConfig struct {
	BaseURL        string            `json:"base_url" toml:"base_url"`
	Tunnel         bool              `json:"tunnel" toml:"tunnel"`
	RequestTimeout string            `json:"request_timeout" toml:"request_timeout"`
	Headers        map[string]string `json:"headers,omitempty" toml:"headers,omitempty"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
	File  string `json:"file,omitempty" toml:"file,omitempty"`
}

type effectiveUIConfig struct {
	DefaultView   string            `json:"default_view" toml:"default_view"`
	MarkdownStyle string            `json:"markdown_style" toml:"markdown_style"`
	Keys          map[string]string `json:"keys" toml:"keys"`
}

func NewConfigCommand(stdout, stderr io.Writer) *ConfigCommand {
	return &ConfigCommand{
		stdout: stdout,
		stderr: stderr,
		load:   config.Load,
	}
}

func (c *ConfigCommand) Run(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	defaults := fs.Bool("defaults", false, "print default config values")
	format := fs.String("format", configFormatTOML, "output format: toml|json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resolvedFormat, err := resolveConfigFormat(*format)
	if err != nil {
		return err
	}
	cfg := config.DefaultConfig()
	if !*defaults {
		cfg, err = c.load()
		if err != nil {
			return err
		}
	}
	payload, err := buildConfigOutput(cfg)
	if err != nil {
		return err
	}
	return writeConfigOutput(c.stdout, resolvedFormat, payload)
}

func buildConfigOutput(cfg config.Config) (configOutput, error) {
	path, err := config.ConfigPath()
	if err != nil {
		return configOutput{}, err
	}
	logPath, err := cfg.ResolveLogPath()
	if err != nil {
		return configOutput{}, err
	}
	timeout := "none"
	if d := cfg.RequestTimeout(); d > 0 {
		timeout = d.String()
	}
	return configOutput{
		ConfigPath: path,
		API: effectiveAPIConfig{
			BaseURL:        cfg.APIBaseURL(),
			Tunnel:         cfg.UsesTunnel(),
			RequestTimeout: timeout,
			Headers:        cfg.ExtraHeaders(),
		},
		Logging: effectiveLoggingConfig{
			Level: cfg.LogLevel(),
			File:  logPath,
		},
		UI: effectiveUIConfig{
			DefaultView:   cfg.DefaultView(),
			MarkdownStyle: cfg.MarkdownStyle(),
			Keys:          cfg.Keymap().Bindings,
		},
	}, nil
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatTOML:
		return configFormatTOML, nil
	case configFormatJSON:
		return configFormatJSON, nil
	default:
		return "", errors.New("format must be toml or json")
	}
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}
