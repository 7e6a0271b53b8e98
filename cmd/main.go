package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/thomas-vilte/thoth/internal/ai/gemini"
	"github.com/thomas-vilte/thoth/internal/capture"
	capturecmd "github.com/thomas-vilte/thoth/internal/commands/capture"
	configcmd "github.com/thomas-vilte/thoth/internal/commands/config"
	"github.com/thomas-vilte/thoth/internal/commands/repos"
	"github.com/thomas-vilte/thoth/internal/commands/sources"
	cfg "github.com/thomas-vilte/thoth/internal/config"
	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/i18n"
	"github.com/thomas-vilte/thoth/internal/logger"
	"github.com/thomas-vilte/thoth/internal/services"
	"github.com/thomas-vilte/thoth/internal/storage"
	"github.com/thomas-vilte/thoth/internal/vcs/github"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Error initializing the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve the user's home directory: %w", err)
	}

	appConfig, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(appConfig.Language)
	if err != nil {
		return nil, fmt.Errorf("error loading translations: %w", err)
	}

	store, err := storage.NewStore(homeDir)
	if err != nil {
		return nil, err
	}

	newVCSClient := func() (*github.GitHubClient, error) {
		token := appConfig.GitHubToken()
		if token == "" {
			return nil, domainErrors.ErrTokenMissing
		}
		return github.NewGitHubClient(token), nil
	}

	directoryProvider := func(ctx context.Context) (sources.DirectoryService, error) {
		client, err := newVCSClient()
		if err != nil {
			return nil, err
		}
		return services.NewDirectoryService(client, store), nil
	}

	pipelineProvider := func(ctx context.Context, locator *capture.Locator, notifier services.Notifier) (capturecmd.PipelineRunner, error) {
		client, err := newVCSClient()
		if err != nil {
			return nil, err
		}
		generator, err := gemini.NewIssueSynthesizer(ctx, appConfig)
		if err != nil {
			return nil, err
		}
		return services.NewPipelineService(
			appConfig,
			store,
			locator,
			generator,
			services.NewAssetPublisher(client),
			services.NewTemplateResolver(client),
			client,
			notifier,
		), nil
	}

	configFactory := configcmd.NewConfigCommandFactory()
	sourcesFactory := sources.NewSourcesCommandFactory(directoryProvider, store)
	reposFactory := repos.NewReposCommandFactory(store)
	captureFactory := capturecmd.NewCaptureCommandFactory(pipelineProvider, store)

	app := &cli.Command{
		Name:  "thoth",
		Usage: "Turn captured page content into GitHub issues",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable informational logging",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			logger.Initialize(command.Bool("debug"), command.Bool("verbose"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			configFactory.CreateCommand(translations, appConfig),
			sourcesFactory.CreateCommand(translations, appConfig),
			reposFactory.CreateCommand(translations, appConfig),
			captureFactory.CreateCommand(translations, appConfig),
		},
	}

	return app, nil
}
