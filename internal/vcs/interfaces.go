package vcs

import (
	"context"

	"github.com/thomas-vilte/thoth/internal/models"
)

// DirEntry is one entry of a repository directory listing.
type DirEntry struct {
	Name   string
	Path   string
	IsFile bool
}

// VCSClient defines the methods the pipeline needs from the repository
// host's API. Every request carries the stored bearer credential.
type VCSClient interface {
	// GetAuthenticatedUser returns the identity that owns the token.
	GetAuthenticatedUser(ctx context.Context) (models.Account, error)
	// ListOrganizations lists the organizations the identity belongs to.
	ListOrganizations(ctx context.Context) ([]models.Account, error)
	// ListRepositories returns one page of an account's repositories.
	ListRepositories(ctx context.Context, account models.Account, page, perPage int) ([]models.Repository, error)
	// GetFileContent reads and decodes a file under a repository path.
	// A missing path returns errors.ErrNotFound.
	GetFileContent(ctx context.Context, repo models.Repository, path string) (string, error)
	// ListDirectory lists a directory under a repository path.
	// A missing directory returns errors.ErrNotFound.
	ListDirectory(ctx context.Context, repo models.Repository, path string) ([]DirEntry, error)
	// UploadFile writes a file into the repository and returns the
	// publicly fetchable URL of the stored content.
	UploadFile(ctx context.Context, repo models.Repository, path, message string, content []byte) (string, error)
	// CreateIssue files an issue and returns it with its canonical URL.
	CreateIssue(ctx context.Context, repo models.Repository, title, body string) (*models.Issue, error)
}
