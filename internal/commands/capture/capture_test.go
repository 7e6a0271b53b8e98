package capture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	capturepkg "github.com/thomas-vilte/thoth/internal/capture"
	"github.com/thomas-vilte/thoth/internal/config"
	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/i18n"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/services"
	"github.com/thomas-vilte/thoth/internal/storage"
	"github.com/urfave/cli/v3"
)

type MockPipelineRunner struct {
	mock.Mock
}

func (m *MockPipelineRunner) Run(ctx context.Context, trigger services.Trigger) (*services.Result, error) {
	args := m.Called(ctx, trigger)
	var result *services.Result
	if args.Get(0) != nil {
		result = args.Get(0).(*services.Result)
	}
	return result, args.Error(1)
}

func setupCaptureTest(t *testing.T) (*MockPipelineRunner, *storage.Store, *i18n.Translations, *config.Config) {
	t.Helper()

	runner := &MockPipelineRunner{}

	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(&storage.State{
		Repositories: []models.Repository{
			{FullName: "octocat/hello", OwnerKind: models.KindUser},
		},
	}))

	trans, err := i18n.NewTranslations("en")
	require.NoError(t, err)

	return runner, store, trans, &config.Config{Language: "en"}
}

func runCapture(t *testing.T, runner *MockPipelineRunner, store *storage.Store, trans *i18n.Translations, cfg *config.Config, args ...string) error {
	t.Helper()

	provider := func(ctx context.Context, locator *capturepkg.Locator, notifier services.Notifier) (PipelineRunner, error) {
		return runner, nil
	}
	factory := NewCaptureCommandFactory(provider, store)
	cmd := factory.CreateCommand(trans, cfg)

	app := &cli.Command{Name: "test", Commands: []*cli.Command{cmd}}
	return app.Run(context.Background(), append([]string{"test", "capture"}, args...))
}

func TestCaptureAction(t *testing.T) {
	t.Run("should refuse a repository outside the loaded list", func(t *testing.T) {
		runner, store, trans, cfg := setupCaptureTest(t)

		err := runCapture(t, runner, store, trans, cfg, "--repo", "stranger/repo", "--text", "hi")

		assert.Error(t, err)
		runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	t.Run("should pass trigger-carried content to the pipeline", func(t *testing.T) {
		runner, store, trans, cfg := setupCaptureTest(t)

		runner.On("Run", mock.Anything, mock.MatchedBy(func(trigger services.Trigger) bool {
			return trigger.Repository.FullName == "octocat/hello" &&
				trigger.Text == "selected words" &&
				trigger.ImageURL == "https://example.com/a.png" &&
				trigger.PageURL == "https://example.com/page"
		})).Return(&services.Result{
			State: services.StateDone,
			Issue: &models.Issue{Number: 1, URL: "https://github.com/octocat/hello/issues/1"},
		}, nil)

		err := runCapture(t, runner, store, trans, cfg,
			"--repo", "octocat/hello",
			"--text", "selected words",
			"--image", "https://example.com/a.png",
			"--page-url", "https://example.com/page")

		assert.NoError(t, err)
		runner.AssertExpectations(t)
	})

	t.Run("should take the page URL from the snapshot", func(t *testing.T) {
		runner, store, trans, cfg := setupCaptureTest(t)

		snapshotPath := filepath.Join(t.TempDir(), "snapshot.json")
		require.NoError(t, os.WriteFile(snapshotPath, []byte(`{
			"url": "https://example.com/from-snapshot",
			"selection_text": "from the page",
			"selection_node": -1,
			"clicked_node": -1,
			"nodes": []
		}`), 0644))

		runner.On("Run", mock.Anything, mock.MatchedBy(func(trigger services.Trigger) bool {
			return trigger.PageURL == "https://example.com/from-snapshot"
		})).Return(&services.Result{
			State: services.StateDone,
			Issue: &models.Issue{Number: 2, URL: "https://github.com/octocat/hello/issues/2"},
		}, nil)

		err := runCapture(t, runner, store, trans, cfg,
			"--repo", "octocat/hello", "--snapshot", snapshotPath)

		assert.NoError(t, err)
		runner.AssertExpectations(t)
	})

	t.Run("should not treat an empty capture as a command failure", func(t *testing.T) {
		runner, store, trans, cfg := setupCaptureTest(t)

		runner.On("Run", mock.Anything, mock.Anything).
			Return(&services.Result{State: services.StateNoContent}, domainErrors.ErrNoContent)

		err := runCapture(t, runner, store, trans, cfg, "--repo", "octocat/hello")

		assert.NoError(t, err)
	})

	t.Run("should not treat a setup prompt as a command failure", func(t *testing.T) {
		runner, store, trans, cfg := setupCaptureTest(t)

		runner.On("Run", mock.Anything, mock.Anything).
			Return(&services.Result{State: services.StateNotConfigured}, domainErrors.ErrAPIKeyMissing)

		err := runCapture(t, runner, store, trans, cfg, "--repo", "octocat/hello", "--text", "hi")

		assert.NoError(t, err)
	})

	t.Run("should propagate a pipeline failure", func(t *testing.T) {
		runner, store, trans, cfg := setupCaptureTest(t)

		runner.On("Run", mock.Anything, mock.Anything).
			Return(&services.Result{State: services.StateFailed}, domainErrors.ErrAIGeneration)

		err := runCapture(t, runner, store, trans, cfg, "--repo", "octocat/hello", "--text", "hi")

		assert.ErrorIs(t, err, domainErrors.ErrAIGeneration)
	})
}
