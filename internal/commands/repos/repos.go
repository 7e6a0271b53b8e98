package repos

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/thomas-vilte/thoth/internal/config"
	"github.com/thomas-vilte/thoth/internal/i18n"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/storage"
	"github.com/thomas-vilte/thoth/internal/ui"
	"github.com/urfave/cli/v3"
)

// ReposCommandFactory is the factory to create the repos command.
type ReposCommandFactory struct {
	store *storage.Store
}

func NewReposCommandFactory(store *storage.Store) *ReposCommandFactory {
	return &ReposCommandFactory{store: store}
}

// CreateCommand creates the main repos command with its subcommands.
func (f *ReposCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "repos",
		Usage: t.GetMessage("repos_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newListCommand(t),
		},
	}
}

// newListCommand reads the persisted repository list only, so it works
// offline.
func (f *ReposCommandFactory) newListCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: t.GetMessage("repos_list_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			state, err := f.store.Load()
			if err != nil {
				return err
			}

			if len(state.Repositories) == 0 {
				ui.PrintInfo(t.GetMessage("repos_none", 0, nil))
				return nil
			}

			orgTag := color.New(color.FgMagenta).Sprint("[Org]")
			userTag := color.New(color.FgCyan).Sprint("[User]")
			fmt.Println()
			for _, repo := range state.Repositories {
				tag := userTag
				if repo.OwnerKind == models.KindOrganization {
					tag = orgTag
				}
				fmt.Printf("   %s %s\n", tag, repo.FullName)
			}
			fmt.Println()
			return nil
		},
	}
}
