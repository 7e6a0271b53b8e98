package ai

import (
	"context"

	"github.com/thomas-vilte/thoth/internal/models"
)

// IssueContentGenerator defines the interface to synthesize issue content
// with AI from captured page content.
type IssueContentGenerator interface {
	// GenerateIssueContent performs a single completion call and returns
	// the synthesized title/body pair. The body may contain the image
	// placeholder token for the caller to resolve.
	GenerateIssueContent(ctx context.Context, request models.SynthesisRequest) (*models.IssueContent, error)
}
