package services

import (
	"context"
	"strings"

	"github.com/cli/browser"
	"github.com/thomas-vilte/thoth/internal/ai"
	"github.com/thomas-vilte/thoth/internal/capture"
	"github.com/thomas-vilte/thoth/internal/config"
	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/logger"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/storage"
	"github.com/thomas-vilte/thoth/internal/vcs"
)

// State names a pipeline run's position. Runs end in exactly one of the
// four terminal states; only StateFailed represents an error.
type State string

const (
	StateIdle              State = "idle"
	StateContentGathering  State = "content_gathering"
	StateAssetPublishing   State = "asset_publishing"
	StateTemplateResolving State = "template_resolving"
	StateSynthesizing      State = "synthesizing"
	StateIssuePublishing   State = "issue_publishing"

	StateDone          State = "done"
	StateNoContent     State = "no_content"
	StateNotConfigured State = "not_configured"
	StateFailed        State = "failed"
)

// Trigger is one user gesture handed to the pipeline: the target
// repository plus whatever content the gesture itself carried. Content
// the trigger does not carry is gathered from the page locator.
type Trigger struct {
	Repository models.Repository
	Text       string
	ImageURL   string
	PageURL    string
}

// Result is the outcome of a pipeline run. Issue is set only when the
// run reached StateDone.
type Result struct {
	State State
	Issue *models.Issue
}

// Notifier receives user-facing progress as the run advances. Message
// IDs resolve through the translation catalog at the presentation layer.
type Notifier interface {
	Progress(messageID string)
	Warn(messageID string)
}

// PipelineService drives a trigger through the full capture-to-issue
// sequence: precondition checks, content gathering, image mirroring,
// template resolution, AI synthesis and issue creation.
type PipelineService struct {
	cfg       *config.Config
	store     *storage.Store
	locator   *capture.Locator
	generator ai.IssueContentGenerator
	assets    *AssetPublisher
	templates *TemplateResolver
	client    vcs.VCSClient
	notifier  Notifier
	openURL   func(url string) error
}

func NewPipelineService(
	cfg *config.Config,
	store *storage.Store,
	locator *capture.Locator,
	generator ai.IssueContentGenerator,
	assets *AssetPublisher,
	templates *TemplateResolver,
	client vcs.VCSClient,
	notifier Notifier,
) *PipelineService {
	return &PipelineService{
		cfg:       cfg,
		store:     store,
		locator:   locator,
		generator: generator,
		assets:    assets,
		templates: templates,
		client:    client,
		notifier:  notifier,
		openURL:   browser.OpenURL,
	}
}

// Run executes the pipeline for one trigger. The returned result always
// carries the terminal state; the error is nil for StateDone, the
// blocking configuration error for StateNotConfigured, ErrNoContent for
// StateNoContent and the underlying failure for StateFailed.
func (s *PipelineService) Run(ctx context.Context, trigger Trigger) (*Result, error) {
	log := logger.FromContext(ctx)

	// Preconditions are checked before any network traffic.
	if err := s.checkConfigured(); err != nil {
		log.Info("pipeline blocked on configuration", "error", err)
		return &Result{State: StateNotConfigured}, err
	}

	s.notifier.Progress("pipeline_gathering")
	content := s.gatherContent(ctx, trigger)
	if content.IsEmpty() {
		log.Info("pipeline ended without content")
		return &Result{State: StateNoContent}, domainErrors.ErrNoContent
	}

	shape := content.Shape()
	log.Debug("content gathered", "shape", string(shape),
		"text_length", len(content.Text), "has_image", content.ImageURL != "")

	imageURL := content.ImageURL
	if imageURL != "" {
		s.notifier.Progress("pipeline_publishing_asset")
		if storedURL, ok := s.assets.Publish(ctx, trigger.Repository, imageURL); ok {
			imageURL = storedURL
		} else {
			s.notifier.Warn("pipeline_image_fallback")
		}
	}

	s.notifier.Progress("pipeline_resolving_template")
	template := s.templates.Resolve(ctx, trigger.Repository)

	s.notifier.Progress("pipeline_synthesizing")
	issueContent, err := s.generator.GenerateIssueContent(ctx, models.SynthesisRequest{
		Content:  content,
		Shape:    shape,
		PageURL:  trigger.PageURL,
		Template: template,
	})
	if err != nil {
		return &Result{State: StateFailed}, err
	}

	body := issueContent.Body
	if content.ImageURL != "" {
		body = strings.ReplaceAll(body, models.ImagePlaceholder, "![Image]("+imageURL+")")
	}

	s.notifier.Progress("pipeline_publishing_issue")
	issue, err := s.client.CreateIssue(ctx, trigger.Repository, issueContent.Title, body)
	if err != nil {
		return &Result{State: StateFailed}, err
	}

	log.Info("issue created", "repo", trigger.Repository.FullName,
		"number", issue.Number, "url", issue.URL)

	if err := s.openURL(issue.URL); err != nil {
		log.Warn("could not open issue in browser", "url", issue.URL, "error", err)
	}

	return &Result{State: StateDone, Issue: issue}, nil
}

// checkConfigured verifies both credentials and a non-empty repository
// list, in a fixed order so the user fixes one thing at a time.
func (s *PipelineService) checkConfigured() error {
	if s.cfg.GeminiAPIKey() == "" {
		return domainErrors.ErrAPIKeyMissing
	}
	if s.cfg.GitHubToken() == "" {
		return domainErrors.ErrTokenMissing
	}

	state, err := s.store.Load()
	if err != nil {
		return err
	}
	if len(state.Repositories) == 0 {
		return domainErrors.ErrNoRepositories
	}
	return nil
}

// gatherContent prefers the values the trigger itself carried; each
// missing field is queried from the page locator independently, so a
// text-selection trigger can still pick up a relevant image. A locator
// that stays unavailable after reinjection degrades to empty content
// rather than failing the run.
func (s *PipelineService) gatherContent(ctx context.Context, trigger Trigger) models.CapturedContent {
	log := logger.FromContext(ctx)

	content := models.CapturedContent{
		Text:     strings.TrimSpace(trigger.Text),
		ImageURL: trigger.ImageURL,
	}
	if s.locator == nil {
		return content
	}

	if content.Text == "" {
		text, err := s.locator.Selection(ctx)
		if err != nil {
			log.Warn("selection query failed, continuing without text", "error", err)
		}
		content.Text = strings.TrimSpace(text)
	}

	if content.ImageURL == "" {
		imageURL, err := s.locator.RelevantImage(ctx)
		if err != nil {
			log.Warn("image query failed, continuing without an image", "error", err)
		}
		content.ImageURL = imageURL
	}

	return content
}
