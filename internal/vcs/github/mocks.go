package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type (
	MockUsersService struct {
		mock.Mock
	}

	MockOrganizationsService struct {
		mock.Mock
	}

	MockRepositoriesService struct {
		mock.Mock
	}

	MockIssuesService struct {
		mock.Mock
	}
)

func (m *MockUsersService) Get(ctx context.Context, user string) (*github.User, *github.Response, error) {
	args := m.Called(ctx, user)
	var u *github.User
	if args.Get(0) != nil {
		u = args.Get(0).(*github.User)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return u, resp, args.Error(2)
}

func (m *MockOrganizationsService) List(ctx context.Context, user string, opts *github.ListOptions) ([]*github.Organization, *github.Response, error) {
	args := m.Called(ctx, user, opts)
	var orgs []*github.Organization
	if args.Get(0) != nil {
		orgs = args.Get(0).([]*github.Organization)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return orgs, resp, args.Error(2)
}

func (m *MockRepositoriesService) ListByUser(ctx context.Context, user string, opts *github.RepositoryListByUserOptions) ([]*github.Repository, *github.Response, error) {
	args := m.Called(ctx, user, opts)
	var repos []*github.Repository
	if args.Get(0) != nil {
		repos = args.Get(0).([]*github.Repository)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return repos, resp, args.Error(2)
}

func (m *MockRepositoriesService) ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error) {
	args := m.Called(ctx, org, opts)
	var repos []*github.Repository
	if args.Get(0) != nil {
		repos = args.Get(0).([]*github.Repository)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return repos, resp, args.Error(2)
}

func (m *MockRepositoriesService) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	var file *github.RepositoryContent
	if args.Get(0) != nil {
		file = args.Get(0).(*github.RepositoryContent)
	}
	var dir []*github.RepositoryContent
	if args.Get(1) != nil {
		dir = args.Get(1).([]*github.RepositoryContent)
	}
	var resp *github.Response
	if args.Get(2) != nil {
		resp = args.Get(2).(*github.Response)
	}
	return file, dir, resp, args.Error(3)
}

func (m *MockRepositoriesService) CreateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	var content *github.RepositoryContentResponse
	if args.Get(0) != nil {
		content = args.Get(0).(*github.RepositoryContentResponse)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return content, resp, args.Error(2)
}

func (m *MockIssuesService) Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error) {
	args := m.Called(ctx, owner, repo, issue)
	var created *github.Issue
	if args.Get(0) != nil {
		created = args.Get(0).(*github.Issue)
	}
	var resp *github.Response
	if args.Get(1) != nil {
		resp = args.Get(1).(*github.Response)
	}
	return created, resp, args.Error(2)
}
