package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type (
	// Config is the synced scope of persisted state: the two credentials
	// and the user's preferences. The repository list and account
	// selections live in the local scope (internal/storage).
	Config struct {
		Language    string                    `json:"language"`
		AIProviders map[string]ProviderConfig `json:"ai_providers"`
		VCSConfigs  map[string]VCSConfig      `json:"vcs_configs"`
		PathFile    string                    `json:"path_file"`
	}

	ProviderConfig struct {
		APIKey string `json:"api_key,omitempty"`
		Model  string `json:"model,omitempty"`
	}

	VCSConfig struct {
		Token string `json:"token,omitempty"`
	}
)

const (
	defaultLang  = "en"
	defaultModel = "gemini-2.5-flash"

	configDirName = ".thoth"
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, configDirName)
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return CreateDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.PathFile = configPath
	ensureMaps(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded configuration is not valid: %w", err)
	}

	return &config, nil
}

func CreateDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Language:    defaultLang,
		AIProviders: map[string]ProviderConfig{"gemini": {Model: defaultModel}},
		VCSConfigs:  map[string]VCSConfig{"github": {}},
		PathFile:    path,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	if err := SaveConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language cannot be empty")
	}
	return nil
}

func ensureMaps(config *Config) {
	if config.AIProviders == nil {
		config.AIProviders = map[string]ProviderConfig{"gemini": {Model: defaultModel}}
	}
	if config.VCSConfigs == nil {
		config.VCSConfigs = map[string]VCSConfig{"github": {}}
	}
}

// GeminiAPIKey returns the completion API credential, empty when unset.
func (c *Config) GeminiAPIKey() string {
	return c.AIProviders["gemini"].APIKey
}

// GitHubToken returns the repository host credential, empty when unset.
func (c *Config) GitHubToken() string {
	return c.VCSConfigs["github"].Token
}

func (c *Config) SetGeminiAPIKey(key string) {
	p := c.AIProviders["gemini"]
	p.APIKey = key
	if p.Model == "" {
		p.Model = defaultModel
	}
	c.AIProviders["gemini"] = p
}

func (c *Config) SetGeminiModel(model string) {
	p := c.AIProviders["gemini"]
	p.Model = model
	c.AIProviders["gemini"] = p
}

func (c *Config) SetGitHubToken(token string) {
	v := c.VCSConfigs["github"]
	v.Token = token
	c.VCSConfigs["github"] = v
}

// MaskKey renders a credential for display: first four and last four
// characters around a run of bullets. Keys shorter than 8 characters are
// returned as-is.
func MaskKey(key string) string {
	if len(key) < 8 {
		return key
	}
	masked := len(key) - 8
	if masked > 20 {
		masked = 20
	}
	return key[:4] + strings.Repeat("•", masked) + key[len(key)-4:]
}
