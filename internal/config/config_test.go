package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should create a default config on first run", func(t *testing.T) {
		home := t.TempDir()

		cfg, err := LoadConfig(home)

		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Language)
		assert.Equal(t, "gemini-2.5-flash", cfg.AIProviders["gemini"].Model)
		assert.FileExists(t, filepath.Join(home, ".thoth", "config.json"))
	})

	t.Run("should round-trip credentials through save and load", func(t *testing.T) {
		home := t.TempDir()

		cfg, err := LoadConfig(home)
		require.NoError(t, err)

		cfg.SetGeminiAPIKey("AIzaSyExampleExampleExample")
		cfg.SetGitHubToken("ghp_exampleexampleexample")
		require.NoError(t, SaveConfig(cfg))

		reloaded, err := LoadConfig(home)
		require.NoError(t, err)
		assert.Equal(t, "AIzaSyExampleExampleExample", reloaded.GeminiAPIKey())
		assert.Equal(t, "ghp_exampleexampleexample", reloaded.GitHubToken())
	})

	t.Run("should keep the model when setting an API key", func(t *testing.T) {
		cfg := &Config{
			Language:    "en",
			AIProviders: map[string]ProviderConfig{"gemini": {Model: "gemini-2.5-pro"}},
			VCSConfigs:  map[string]VCSConfig{"github": {}},
		}

		cfg.SetGeminiAPIKey("new-key")

		assert.Equal(t, "gemini-2.5-pro", cfg.AIProviders["gemini"].Model)
	})
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"empty key", "", ""},
		{"short key shown as-is", "abc1234", "abc1234"},
		{"eight characters get no bullets", "abcd1234", "abcd1234"},
		{"middle is masked", "abcd56781234", "abcd••••1234"},
		{"mask caps at twenty bullets", "abcd" + strings.Repeat("x", 40) + "1234", "abcd" + strings.Repeat("•", 20) + "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskKey(tt.key))
		})
	}
}

func TestIsValidLanguage(t *testing.T) {
	assert.True(t, IsValidLanguage("en"))
	assert.True(t, IsValidLanguage("es"))
	assert.False(t, IsValidLanguage("fr"))
}
