package sources

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/thomas-vilte/thoth/internal/config"
	"github.com/thomas-vilte/thoth/internal/i18n"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/services"
	"github.com/thomas-vilte/thoth/internal/storage"
	"github.com/thomas-vilte/thoth/internal/ui"
	"github.com/urfave/cli/v3"
)

// DirectoryService is a minimal interface for testing purposes
type DirectoryService interface {
	RefreshAccounts(ctx context.Context) (*storage.State, error)
	BuildRepositoryList(ctx context.Context, selected []models.Account) (*services.RepositoryListResult, error)
}

type DirectoryServiceProvider func(ctx context.Context) (DirectoryService, error)

// SourcesCommandFactory is the factory to create the sources command.
type SourcesCommandFactory struct {
	serviceProvider DirectoryServiceProvider
	store           *storage.Store
}

func NewSourcesCommandFactory(serviceProvider DirectoryServiceProvider, store *storage.Store) *SourcesCommandFactory {
	return &SourcesCommandFactory{
		serviceProvider: serviceProvider,
		store:           store,
	}
}

// CreateCommand creates the main sources command with its subcommands.
func (f *SourcesCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "sources",
		Usage: t.GetMessage("sources_command_usage", 0, nil),
		Commands: []*cli.Command{
			f.newLoadCommand(t),
			f.newListCommand(t),
			f.newSelectCommand(t, true),
			f.newSelectCommand(t, false),
		},
	}
}

func (f *SourcesCommandFactory) newLoadCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "load",
		Usage: t.GetMessage("sources_load_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			service, err := f.serviceProvider(ctx)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			spin := ui.NewSmartSpinner(t.GetMessage("sources_load_usage", 0, nil))
			spin.Start()

			state, err := service.RefreshAccounts(ctx)
			if err != nil {
				spin.Stop()
				ui.HandleAppError(err, t)
				return err
			}

			spin.Success(t.GetMessage("sources_loaded", len(state.Accounts),
				map[string]interface{}{"Count": len(state.Accounts)}))
			printAccounts(state)
			return nil
		},
	}
}

func (f *SourcesCommandFactory) newListCommand(t *i18n.Translations) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: t.GetMessage("sources_list_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			state, err := f.store.Load()
			if err != nil {
				return err
			}
			if len(state.Accounts) == 0 {
				ui.PrintInfo(t.GetMessage("sources_none_found", 0, nil))
				return nil
			}
			printAccounts(state)
			return nil
		},
	}
}

// newSelectCommand builds both select and deselect: the two differ only
// in the mutation applied before the repository list rebuild.
func (f *SourcesCommandFactory) newSelectCommand(t *i18n.Translations, selecting bool) *cli.Command {
	name := "select"
	usageID := "sources_select_usage"
	if !selecting {
		name = "deselect"
		usageID = "sources_deselect_usage"
	}

	return &cli.Command{
		Name:      name,
		Usage:     t.GetMessage(usageID, 0, nil),
		ArgsUsage: "<login>",
		Action: func(ctx context.Context, command *cli.Command) error {
			if command.Args().Len() < 1 {
				return fmt.Errorf("usage: thoth sources %s <login>", name)
			}
			login := command.Args().Get(0)

			state, err := f.store.Load()
			if err != nil {
				return err
			}

			account, found := findAccount(state.Accounts, login)
			if !found {
				ui.PrintWarning(t.GetMessage("sources_not_loaded", 0,
					map[string]interface{}{"Login": login}))
				return fmt.Errorf("account not loaded: %s", login)
			}

			if selecting {
				state.Select(account)
			} else {
				state.Deselect(account)
			}
			if err := f.store.Save(state); err != nil {
				return err
			}

			service, err := f.serviceProvider(ctx)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			result, err := service.BuildRepositoryList(ctx, state.Selected)
			if err != nil {
				ui.HandleAppError(err, t)
				return err
			}

			if result.Truncated {
				ui.PrintWarning(t.GetMessage("sources_truncated", 0,
					map[string]interface{}{"Login": login, "Limit": 10}))
			}
			ui.PrintSuccess(os.Stdout, t.GetMessage("sources_repos_updated",
				len(result.Repositories),
				map[string]interface{}{"Count": len(result.Repositories)}))
			return nil
		},
	}
}

func printAccounts(state *storage.State) {
	marker := color.New(color.FgGreen, color.Bold)
	kindColor := color.New(color.FgHiBlack)

	fmt.Println()
	for _, acc := range state.Accounts {
		selected := " "
		if state.IsSelected(acc) {
			selected = marker.Sprint("✓")
		}
		fmt.Printf(" [%s] %s %s\n", selected, acc.Login, kindColor.Sprintf("(%s)", acc.Kind))
	}
	fmt.Println()
}

func findAccount(accounts []models.Account, login string) (models.Account, bool) {
	for _, acc := range accounts {
		if acc.Login == login {
			return acc, true
		}
	}
	return models.Account{}, false
}
