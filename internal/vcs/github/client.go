package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.VCSClient = (*GitHubClient)(nil)

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

type OrganizationsService interface {
	List(ctx context.Context, user string, opts *github.ListOptions) ([]*github.Organization, *github.Response, error)
}

type RepositoriesService interface {
	ListByUser(ctx context.Context, user string, opts *github.RepositoryListByUserOptions) ([]*github.Repository, *github.Response, error)
	ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	CreateFile(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentFileOptions) (*github.RepositoryContentResponse, *github.Response, error)
}

type IssuesService interface {
	Create(ctx context.Context, owner, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
}

type GitHubClient struct {
	usersService UsersService
	orgsService  OrganizationsService
	repoService  RepositoriesService
	issueService IssuesService
}

func NewGitHubClient(token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		usersService: client.Users,
		orgsService:  client.Organizations,
		repoService:  client.Repositories,
		issueService: client.Issues,
	}
}

func NewGitHubClientWithServices(
	usersService UsersService,
	orgsService OrganizationsService,
	repoService RepositoriesService,
	issueService IssuesService,
) *GitHubClient {
	return &GitHubClient{
		usersService: usersService,
		orgsService:  orgsService,
		repoService:  repoService,
		issueService: issueService,
	}
}

func (ghc *GitHubClient) GetAuthenticatedUser(ctx context.Context) (models.Account, error) {
	user, _, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		return models.Account{}, fmt.Errorf("error fetching authenticated user: %w", wrapUpstream(err))
	}
	return models.Account{
		Login: user.GetLogin(),
		Kind:  models.KindUser,
	}, nil
}

func (ghc *GitHubClient) ListOrganizations(ctx context.Context) ([]models.Account, error) {
	orgs, _, err := ghc.orgsService.List(ctx, "", nil)
	if err != nil {
		return nil, fmt.Errorf("error listing organizations: %w", wrapUpstream(err))
	}

	accounts := make([]models.Account, 0, len(orgs))
	for _, org := range orgs {
		accounts = append(accounts, models.Account{
			Login: org.GetLogin(),
			Kind:  models.KindOrganization,
		})
	}
	return accounts, nil
}

func (ghc *GitHubClient) ListRepositories(ctx context.Context, account models.Account, page, perPage int) ([]models.Repository, error) {
	listOpts := github.ListOptions{Page: page, PerPage: perPage}

	var (
		repos []*github.Repository
		err   error
	)
	if account.Kind == models.KindOrganization {
		repos, _, err = ghc.repoService.ListByOrg(ctx, account.Login, &github.RepositoryListByOrgOptions{ListOptions: listOpts})
	} else {
		repos, _, err = ghc.repoService.ListByUser(ctx, account.Login, &github.RepositoryListByUserOptions{ListOptions: listOpts})
	}
	if err != nil {
		return nil, fmt.Errorf("error listing repositories for %s: %w", account.Login, wrapUpstream(err))
	}

	projected := make([]models.Repository, 0, len(repos))
	for _, repo := range repos {
		projected = append(projected, models.Repository{
			FullName:  repo.GetFullName(),
			OwnerKind: ownerKind(repo),
		})
	}
	return projected, nil
}

func (ghc *GitHubClient) GetFileContent(ctx context.Context, repo models.Repository, path string) (string, error) {
	fileContent, _, resp, err := ghc.repoService.GetContents(ctx, repo.Owner(), repo.Name(), path, nil)
	if err != nil {
		if isNotFound(resp) {
			return "", domainErrors.ErrNotFound
		}
		return "", fmt.Errorf("error fetching %s: %w", path, wrapUpstream(err))
	}
	if fileContent == nil {
		return "", fmt.Errorf("path %s is not a file", path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("error decoding %s: %w", path, err)
	}
	return content, nil
}

func (ghc *GitHubClient) ListDirectory(ctx context.Context, repo models.Repository, path string) ([]vcs.DirEntry, error) {
	_, dirContent, resp, err := ghc.repoService.GetContents(ctx, repo.Owner(), repo.Name(), path, nil)
	if err != nil {
		if isNotFound(resp) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("error listing %s: %w", path, wrapUpstream(err))
	}

	entries := make([]vcs.DirEntry, 0, len(dirContent))
	for _, entry := range dirContent {
		entries = append(entries, vcs.DirEntry{
			Name:   entry.GetName(),
			Path:   entry.GetPath(),
			IsFile: entry.GetType() == "file",
		})
	}
	return entries, nil
}

func (ghc *GitHubClient) UploadFile(ctx context.Context, repo models.Repository, path, message string, content []byte) (string, error) {
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: content,
	}

	resp, _, err := ghc.repoService.CreateFile(ctx, repo.Owner(), repo.Name(), path, opts)
	if err != nil {
		return "", fmt.Errorf("error uploading %s: %w", path, wrapUpstream(err))
	}
	return resp.GetContent().GetDownloadURL(), nil
}

func (ghc *GitHubClient) CreateIssue(ctx context.Context, repo models.Repository, title, body string) (*models.Issue, error) {
	req := &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	}

	issue, _, err := ghc.issueService.Create(ctx, repo.Owner(), repo.Name(), req)
	if err != nil {
		return nil, domainErrors.ErrCreateIssue.WithError(wrapUpstream(err))
	}

	return &models.Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		URL:    issue.GetHTMLURL(),
	}, nil
}

func ownerKind(repo *github.Repository) models.AccountKind {
	if repo.GetOwner().GetType() == string(models.KindOrganization) {
		return models.KindOrganization
	}
	return models.KindUser
}

func isNotFound(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}

// wrapUpstream surfaces the host's own error message when it sent one,
// so fatal failures reach the user verbatim.
func wrapUpstream(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Message != "" {
		return fmt.Errorf("%s: %w", ghErr.Message, err)
	}
	return err
}
