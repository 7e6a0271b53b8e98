package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/logger"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/vcs"
)

// Paths probed in order before falling back to listing the template
// directory. The first readable file wins.
var templateProbePaths = []string{
	".github/ISSUE_TEMPLATE.md",
	".github/ISSUE_TEMPLATE/bug_report.md",
	".github/ISSUE_TEMPLATE/feature_request.md",
	"ISSUE_TEMPLATE.md",
	".github/issue_template.md",
	".github/ISSUE_TEMPLATE/bug_report.yml",
	".github/ISSUE_TEMPLATE/feature_request.yml",
	".github/ISSUE_TEMPLATE.yml",
}

const templateDir = ".github/ISSUE_TEMPLATE"

// TemplateResolver locates a repository's issue template so the AI can
// follow its structure. Resolution is best-effort: a repository without
// a template is a normal outcome, never an error.
type TemplateResolver struct {
	client vcs.VCSClient
}

func NewTemplateResolver(client vcs.VCSClient) *TemplateResolver {
	return &TemplateResolver{client: client}
}

// Resolve returns the repository's issue template content, or "" when no
// template exists or every attempt to read one fails.
func (r *TemplateResolver) Resolve(ctx context.Context, repo models.Repository) string {
	log := logger.FromContext(ctx)

	for _, path := range templateProbePaths {
		content, err := r.client.GetFileContent(ctx, repo, path)
		if err == nil && content != "" {
			log.Debug("issue template resolved", "repo", repo.FullName, "path", path)
			return content
		}
		if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
			log.Debug("error probing template path, advancing", "path", path, "error", err)
		}
	}

	if path, ok := r.pickFromDirectory(ctx, repo); ok {
		content, err := r.client.GetFileContent(ctx, repo, path)
		if err == nil && content != "" {
			log.Debug("issue template resolved from directory listing",
				"repo", repo.FullName, "path", path)
			return content
		}
	}

	log.Debug("no issue template found", "repo", repo.FullName)
	return ""
}

// pickFromDirectory lists the template directory and picks the best
// candidate: Markdown templates before YAML forms, alphabetical within
// each group. The directory's own config file is not a template.
func (r *TemplateResolver) pickFromDirectory(ctx context.Context, repo models.Repository) (string, bool) {
	entries, err := r.client.ListDirectory(ctx, repo, templateDir)
	if err != nil {
		return "", false
	}

	var markdown, yaml []string
	for _, entry := range entries {
		if !entry.IsFile {
			continue
		}
		name := strings.ToLower(entry.Name)
		switch {
		case name == "config.yml" || name == "config.yaml":
		case strings.HasSuffix(name, ".md"):
			markdown = append(markdown, entry.Path)
		case strings.HasSuffix(name, ".yml") || strings.HasSuffix(name, ".yaml"):
			yaml = append(yaml, entry.Path)
		}
	}

	sort.Strings(markdown)
	sort.Strings(yaml)

	if len(markdown) > 0 {
		return markdown[0], true
	}
	if len(yaml) > 0 {
		return yaml[0], true
	}
	return "", false
}
