package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/vcs"
)

type (
	MockVCSClient struct {
		mock.Mock
	}

	MockIssueContentGenerator struct {
		mock.Mock
	}

	MockNotifier struct {
		mock.Mock
	}
)

func (m *MockVCSClient) GetAuthenticatedUser(ctx context.Context) (models.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Account), args.Error(1)
}

func (m *MockVCSClient) ListOrganizations(ctx context.Context) ([]models.Account, error) {
	args := m.Called(ctx)
	var accounts []models.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]models.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockVCSClient) ListRepositories(ctx context.Context, account models.Account, page, perPage int) ([]models.Repository, error) {
	args := m.Called(ctx, account, page, perPage)
	var repos []models.Repository
	if args.Get(0) != nil {
		repos = args.Get(0).([]models.Repository)
	}
	return repos, args.Error(1)
}

func (m *MockVCSClient) GetFileContent(ctx context.Context, repo models.Repository, path string) (string, error) {
	args := m.Called(ctx, repo, path)
	return args.String(0), args.Error(1)
}

func (m *MockVCSClient) ListDirectory(ctx context.Context, repo models.Repository, path string) ([]vcs.DirEntry, error) {
	args := m.Called(ctx, repo, path)
	var entries []vcs.DirEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]vcs.DirEntry)
	}
	return entries, args.Error(1)
}

func (m *MockVCSClient) UploadFile(ctx context.Context, repo models.Repository, path, message string, content []byte) (string, error) {
	args := m.Called(ctx, repo, path, message, content)
	return args.String(0), args.Error(1)
}

func (m *MockVCSClient) CreateIssue(ctx context.Context, repo models.Repository, title, body string) (*models.Issue, error) {
	args := m.Called(ctx, repo, title, body)
	var issue *models.Issue
	if args.Get(0) != nil {
		issue = args.Get(0).(*models.Issue)
	}
	return issue, args.Error(1)
}

func (m *MockIssueContentGenerator) GenerateIssueContent(ctx context.Context, request models.SynthesisRequest) (*models.IssueContent, error) {
	args := m.Called(ctx, request)
	var content *models.IssueContent
	if args.Get(0) != nil {
		content = args.Get(0).(*models.IssueContent)
	}
	return content, args.Error(1)
}

func (m *MockNotifier) Progress(messageID string) {
	m.Called(messageID)
}

func (m *MockNotifier) Warn(messageID string) {
	m.Called(messageID)
}
