package capture

import (
	"context"
	"fmt"
	"os"

	"github.com/thomas-vilte/thoth/internal/capture"
	"github.com/thomas-vilte/thoth/internal/config"
	"github.com/thomas-vilte/thoth/internal/i18n"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/services"
	"github.com/thomas-vilte/thoth/internal/storage"
	"github.com/thomas-vilte/thoth/internal/ui"
	"github.com/urfave/cli/v3"
)

// PipelineRunner is a minimal interface for testing purposes
type PipelineRunner interface {
	Run(ctx context.Context, trigger services.Trigger) (*services.Result, error)
}

// PipelineProvider builds the pipeline for one run. The locator is nil
// when the trigger carries all its content and no snapshot was given.
type PipelineProvider func(ctx context.Context, locator *capture.Locator, notifier services.Notifier) (PipelineRunner, error)

// CaptureCommandFactory is the factory to create the capture command.
type CaptureCommandFactory struct {
	pipelineProvider PipelineProvider
	store            *storage.Store
}

func NewCaptureCommandFactory(pipelineProvider PipelineProvider, store *storage.Store) *CaptureCommandFactory {
	return &CaptureCommandFactory{
		pipelineProvider: pipelineProvider,
		store:            store,
	}
}

// CreateCommand creates the capture command, the entry point of the
// capture-to-issue pipeline.
func (f *CaptureCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: t.GetMessage("capture_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Usage:    t.GetMessage("capture_flag_repo", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:    "snapshot",
				Aliases: []string{"s"},
				Usage:   t.GetMessage("capture_flag_snapshot", 0, nil),
			},
			&cli.StringFlag{
				Name:  "text",
				Usage: t.GetMessage("capture_flag_text", 0, nil),
			},
			&cli.StringFlag{
				Name:  "image",
				Usage: t.GetMessage("capture_flag_image", 0, nil),
			},
			&cli.StringFlag{
				Name:  "page-url",
				Usage: t.GetMessage("capture_flag_page_url", 0, nil),
			},
		},
		Action: f.createCaptureAction(t),
	}
}

func (f *CaptureCommandFactory) createCaptureAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		repo, err := f.resolveRepository(t, command.String("repo"))
		if err != nil {
			return err
		}

		locator, pageURL, err := f.buildLocator(command.String("snapshot"))
		if err != nil {
			return err
		}
		if command.String("page-url") != "" {
			pageURL = command.String("page-url")
		}

		trigger := services.Trigger{
			Repository: repo,
			Text:       command.String("text"),
			ImageURL:   command.String("image"),
			PageURL:    pageURL,
		}

		spin := ui.NewSmartSpinner(t.GetMessage("pipeline_processing", 0,
			map[string]interface{}{"Repo": repo.FullName}))
		notifier := &spinnerNotifier{spinner: spin, t: t}

		pipeline, err := f.pipelineProvider(ctx, locator, notifier)
		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		spin.Start()
		result, err := pipeline.Run(ctx, trigger)
		spin.Stop()

		switch result.State {
		case services.StateDone:
			ui.PrintSuccess(os.Stdout, t.GetMessage("pipeline_success", 0,
				map[string]interface{}{"URL": result.Issue.URL}))
			return nil
		case services.StateNoContent:
			ui.PrintWarning(t.GetMessage("pipeline_no_content", 0, nil))
			return nil
		case services.StateNotConfigured:
			ui.PrintInfo(t.GetMessage("pipeline_setup_required", 0, nil))
			ui.HandleAppError(err, t)
			return nil
		default:
			ui.HandleAppError(err, t)
			return err
		}
	}
}

// resolveRepository checks the flag value against the persisted
// repository list, so issues only go to repositories the user loaded.
func (f *CaptureCommandFactory) resolveRepository(t *i18n.Translations, fullName string) (models.Repository, error) {
	state, err := f.store.Load()
	if err != nil {
		return models.Repository{}, err
	}

	for _, repo := range state.Repositories {
		if repo.FullName == fullName {
			return repo, nil
		}
	}

	ui.PrintWarning(t.GetMessage("capture_unknown_repo", 0,
		map[string]interface{}{"Repo": fullName}))
	return models.Repository{}, fmt.Errorf("unknown repository: %s", fullName)
}

// buildLocator loads the snapshot when one was given ('-' reads stdin)
// and returns the locator backed by it, plus the page URL it recorded.
func (f *CaptureCommandFactory) buildLocator(path string) (*capture.Locator, string, error) {
	if path == "" {
		return nil, "", nil
	}

	var (
		snap *models.PageSnapshot
		err  error
	)
	if path == "-" {
		snap, err = capture.LoadSnapshot(os.Stdin)
	} else {
		file, openErr := os.Open(path)
		if openErr != nil {
			return nil, "", fmt.Errorf("error opening snapshot: %w", openErr)
		}
		defer func() { _ = file.Close() }()
		snap, err = capture.LoadSnapshot(file)
	}
	if err != nil {
		return nil, "", err
	}

	return capture.NewLocator(capture.NewSnapshotMessenger(snap)), snap.URL, nil
}

// spinnerNotifier renders pipeline progress on the active spinner.
type spinnerNotifier struct {
	spinner *ui.SmartSpinner
	t       *i18n.Translations
}

func (n *spinnerNotifier) Progress(messageID string) {
	n.spinner.UpdateMessage(n.t.GetMessage(messageID, 0, nil))
}

func (n *spinnerNotifier) Warn(messageID string) {
	n.spinner.Log(ui.WarningEmoji + " " + n.t.GetMessage(messageID, 0, nil))
}
