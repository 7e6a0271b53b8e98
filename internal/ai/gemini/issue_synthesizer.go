package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/thomas-vilte/thoth/internal/ai"
	"github.com/thomas-vilte/thoth/internal/config"
	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/logger"
	"github.com/thomas-vilte/thoth/internal/models"
	"google.golang.org/genai"
)

const (
	// Fixed creativity and output bounds for every synthesis call.
	generationTemperature = 0.7
	maxOutputTokens       = 1000

	titleMaxChars = 80
)

// IssueSynthesizer generates issue content through the Gemini completion
// API: one call per run, no retries.
type IssueSynthesizer struct {
	client *genai.Client
	model  string
}

var _ ai.IssueContentGenerator = (*IssueSynthesizer)(nil)

func NewIssueSynthesizer(ctx context.Context, cfg *config.Config) (*IssueSynthesizer, error) {
	providerCfg, exists := cfg.AIProviders["gemini"]
	if !exists || providerCfg.APIKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  providerCfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	return &IssueSynthesizer{
		client: client,
		model:  providerCfg.Model,
	}, nil
}

// GenerateIssueContent builds the shape-keyed prompt, performs the single
// completion call and decodes the {title, body} reply.
func (s *IssueSynthesizer) GenerateIssueContent(ctx context.Context, request models.SynthesisRequest) (*models.IssueContent, error) {
	log := logger.FromContext(ctx)

	prompt, err := ai.BuildIssuePrompt(request)
	if err != nil {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error building prompt", err)
	}

	log.Debug("calling gemini for issue synthesis",
		"shape", string(request.Shape),
		"has_template", request.Template != "",
		"prompt_length", len(prompt))

	genConfig := &genai.GenerateContentConfig{
		Temperature:       float32Ptr(generationTemperature),
		MaxOutputTokens:   maxOutputTokens,
		SystemInstruction: genai.NewContentFromText(ai.SystemInstruction, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), genConfig)
	if err != nil {
		log.Error("gemini API call failed", "error", err, "model", s.model)
		return nil, domainErrors.ErrAIGeneration.WithError(err)
	}

	responseText := formatResponse(resp)
	if responseText == "" {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "empty response from AI", nil)
	}

	result, err := parseIssueResponse(responseText)
	if err != nil {
		log.Error("failed to parse issue response", "error", err,
			"response_preview", preview(responseText, 100))
		return nil, domainErrors.ErrInvalidAIOutput.WithError(err)
	}

	result.Title = TruncateTitle(result.Title, titleMaxChars)

	log.Info("issue content synthesized", "title", result.Title)
	return result, nil
}

// parseIssueResponse decodes the model reply, tolerating a Markdown fence
// around the JSON object. A decoded result missing either field is invalid.
func parseIssueResponse(content string) (*models.IssueContent, error) {
	content = StripFence(content)

	var jsonResult struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.Unmarshal([]byte(content), &jsonResult); err != nil {
		return nil, err
	}

	if jsonResult.Title == "" || jsonResult.Body == "" {
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "response is missing title or body", nil)
	}

	return &models.IssueContent{
		Title: strings.TrimSpace(jsonResult.Title),
		Body:  jsonResult.Body,
	}, nil
}

func preview(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
