package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/thomas-vilte/thoth/internal/config"
	"github.com/thomas-vilte/thoth/internal/i18n"
	"github.com/thomas-vilte/thoth/internal/ui"
	"github.com/urfave/cli/v3"
)

// ConfigCommandFactory is the factory to create the config command.
type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

// CreateCommand creates the main config command with its subcommands.
func (f *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: t.GetMessage("config_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newSetCommand(t, cfg),
			f.newShowCommand(t, cfg),
		},
	}
}

func (f *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config_set_usage", 0, nil),
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() < 2 {
				return fmt.Errorf("usage: thoth config set <key> <value>")
			}

			key := strings.ToLower(command.Args().Get(0))
			value := command.Args().Get(1)

			switch key {
			case "gemini_api_key":
				cfg.SetGeminiAPIKey(value)
			case "github_token":
				cfg.SetGitHubToken(value)
			case "lang", "language":
				if !config.IsValidLanguage(value) {
					return fmt.Errorf("invalid language: %s", value)
				}
				cfg.Language = value
				if err := t.SetLanguage(value); err != nil {
					return err
				}
			case "model":
				cfg.SetGeminiModel(value)
			default:
				return fmt.Errorf("%s", t.GetMessage("config_unknown_key", 0, map[string]interface{}{"Key": key}))
			}

			if err := config.SaveConfig(cfg); err != nil {
				return err
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("config_saved", 0, nil))
			return nil
		},
	}
}

func (f *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Println()
			ui.PrintKeyValue("language", cfg.Language)
			ui.PrintKeyValue("gemini_api_key", maskedOrUnset(cfg.GeminiAPIKey()))
			ui.PrintKeyValue("model", cfg.AIProviders["gemini"].Model)
			ui.PrintKeyValue("github_token", maskedOrUnset(cfg.GitHubToken()))
			fmt.Println()
			return nil
		},
	}
}

func maskedOrUnset(key string) string {
	if key == "" {
		return "(not set)"
	}
	return config.MaskKey(key)
}
