package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/vcs"
)

func TestTemplateResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	repo := models.Repository{FullName: "octocat/hello", OwnerKind: models.KindUser}

	t.Run("should return the first probed path that resolves", func(t *testing.T) {
		client := &MockVCSClient{}
		client.On("GetFileContent", mock.Anything, repo, ".github/ISSUE_TEMPLATE.md").
			Return("## Bug report\n", nil)

		content := NewTemplateResolver(client).Resolve(ctx, repo)

		assert.Equal(t, "## Bug report\n", content)
		client.AssertNumberOfCalls(t, "GetFileContent", 1)
	})

	t.Run("should advance past missing paths in probe order", func(t *testing.T) {
		client := &MockVCSClient{}
		client.On("GetFileContent", mock.Anything, repo, ".github/ISSUE_TEMPLATE.md").
			Return("", domainErrors.ErrNotFound)
		client.On("GetFileContent", mock.Anything, repo, ".github/ISSUE_TEMPLATE/bug_report.md").
			Return("", domainErrors.ErrNotFound)
		client.On("GetFileContent", mock.Anything, repo, ".github/ISSUE_TEMPLATE/feature_request.md").
			Return("## Feature\n", nil)

		content := NewTemplateResolver(client).Resolve(ctx, repo)

		assert.Equal(t, "## Feature\n", content)
		client.AssertNumberOfCalls(t, "GetFileContent", 3)
	})

	t.Run("should fall back to the template directory listing", func(t *testing.T) {
		client := &MockVCSClient{}
		client.On("GetFileContent", mock.Anything, repo, mock.AnythingOfType("string")).
			Return("", domainErrors.ErrNotFound).Times(len(templateProbePaths))
		client.On("ListDirectory", mock.Anything, repo, ".github/ISSUE_TEMPLATE").
			Return([]vcs.DirEntry{
				{Name: "config.yml", Path: ".github/ISSUE_TEMPLATE/config.yml", IsFile: true},
				{Name: "custom.yml", Path: ".github/ISSUE_TEMPLATE/custom.yml", IsFile: true},
				{Name: "zz_report.md", Path: ".github/ISSUE_TEMPLATE/zz_report.md", IsFile: true},
			}, nil)
		client.On("GetFileContent", mock.Anything, repo, ".github/ISSUE_TEMPLATE/zz_report.md").
			Return("custom markdown template", nil)

		content := NewTemplateResolver(client).Resolve(ctx, repo)

		// Markdown wins over YAML even when it sorts later, and config.yml
		// is never a candidate.
		assert.Equal(t, "custom markdown template", content)
	})

	t.Run("should pick the alphabetically first YAML form when no markdown exists", func(t *testing.T) {
		client := &MockVCSClient{}
		client.On("GetFileContent", mock.Anything, repo, mock.AnythingOfType("string")).
			Return("", domainErrors.ErrNotFound).Times(len(templateProbePaths))
		client.On("ListDirectory", mock.Anything, repo, ".github/ISSUE_TEMPLATE").
			Return([]vcs.DirEntry{
				{Name: "b_form.yml", Path: ".github/ISSUE_TEMPLATE/b_form.yml", IsFile: true},
				{Name: "a_form.yaml", Path: ".github/ISSUE_TEMPLATE/a_form.yaml", IsFile: true},
			}, nil)
		client.On("GetFileContent", mock.Anything, repo, ".github/ISSUE_TEMPLATE/a_form.yaml").
			Return("name: form", nil)

		content := NewTemplateResolver(client).Resolve(ctx, repo)

		assert.Equal(t, "name: form", content)
	})

	t.Run("should return empty when nothing resolves", func(t *testing.T) {
		client := &MockVCSClient{}
		client.On("GetFileContent", mock.Anything, repo, mock.AnythingOfType("string")).
			Return("", domainErrors.ErrNotFound)
		client.On("ListDirectory", mock.Anything, repo, ".github/ISSUE_TEMPLATE").
			Return(nil, domainErrors.ErrNotFound)

		assert.Equal(t, "", NewTemplateResolver(client).Resolve(ctx, repo))
	})

	t.Run("should treat transport failures as absence", func(t *testing.T) {
		client := &MockVCSClient{}
		client.On("GetFileContent", mock.Anything, repo, mock.AnythingOfType("string")).
			Return("", errors.New("connection reset"))
		client.On("ListDirectory", mock.Anything, repo, ".github/ISSUE_TEMPLATE").
			Return(nil, errors.New("connection reset"))

		assert.Equal(t, "", NewTemplateResolver(client).Resolve(ctx, repo))
	})
}
