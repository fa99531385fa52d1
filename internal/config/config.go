package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	LLM      LLM      `yaml:"llm"`
	Defaults Defaults `yaml:"defaults"`
	Usage    Usage    `yaml:"usage"`
	Output   Output   `yaml:"output"`
	Server   Server   `yaml:"server"`
	Logging  Logging  `yaml:"logging"`
}

type LLM struct {
	Model            string `yaml:"model"`
	BaseURL          string `yaml:"base_url"`
	APIKeyEnv        string `yaml:"api_key_env"`
	ExtractMaxTokens int    `yaml:"extract_max_tokens"`
	AdaptMaxTokens   int    `yaml:"adapt_max_tokens"`
}

type Defaults struct {
	Tone   string `yaml:"tone"`
	Length string `yaml:"length"`
}

type Usage struct {
	MonthlyLimit int `yaml:"monthly_limit"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for contentengine.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "contentengine")
}

// DataDir returns the XDG data directory for contentengine.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "contentengine")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/contentengine/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'contentengine init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		LLM: LLM{
			Model:            "claude-sonnet-4-5-20250514",
			BaseURL:          "https://api.anthropic.com",
			APIKeyEnv:        "ANTHROPIC_API_KEY",
			ExtractMaxTokens: 2048,
			AdaptMaxTokens:   2048,
		},
		Defaults: Defaults{
			Tone:   "professional",
			Length: "medium",
		},
		Usage:   Usage{MonthlyLimit: 50},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
