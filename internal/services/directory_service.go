package services

import (
	"context"
	"sort"

	domainErrors "github.com/thomas-vilte/thoth/internal/errors"
	"github.com/thomas-vilte/thoth/internal/logger"
	"github.com/thomas-vilte/thoth/internal/models"
	"github.com/thomas-vilte/thoth/internal/storage"
	"github.com/thomas-vilte/thoth/internal/vcs"
)

const (
	repoPageSize = 100
	// Ceiling on pages fetched per account, so a huge account cannot
	// stall the refresh indefinitely.
	repoMaxPages = 10
)

// DirectoryService discovers the accounts reachable with the stored
// credential and maintains the flattened repository list derived from
// the user's account selection.
type DirectoryService struct {
	client vcs.VCSClient
	store  *storage.Store
}

func NewDirectoryService(client vcs.VCSClient, store *storage.Store) *DirectoryService {
	return &DirectoryService{
		client: client,
		store:  store,
	}
}

// ListAccounts fetches the authenticated identity and its organizations.
// Failing to identify the caller is fatal; failing to list organizations
// is tolerated and yields a partial result.
func (s *DirectoryService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	log := logger.FromContext(ctx)

	user, err := s.client.GetAuthenticatedUser(ctx)
	if err != nil {
		return nil, domainErrors.ErrCannotIdentifyCaller.WithError(err)
	}

	accounts := []models.Account{user}

	orgs, err := s.client.ListOrganizations(ctx)
	if err != nil {
		log.Warn("error listing organizations, continuing with user account only", "error", err)
		return accounts, nil
	}

	accounts = append(accounts, orgs...)
	return accounts, nil
}

// RefreshAccounts fetches the reachable accounts and persists them,
// pruning selections that no longer resolve to a discovered account.
func (s *DirectoryService) RefreshAccounts(ctx context.Context) (*storage.State, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	state.Accounts = accounts

	kept := state.Selected[:0]
	for _, sel := range state.Selected {
		for _, acc := range accounts {
			if acc.Login == sel.Login && acc.Kind == sel.Kind {
				kept = append(kept, sel)
				break
			}
		}
	}
	state.Selected = kept

	if err := s.store.Save(state); err != nil {
		return nil, err
	}
	return state, nil
}

// RepositoryListResult is the outcome of a repository list rebuild.
type RepositoryListResult struct {
	Repositories []models.Repository
	// Truncated is set when at least one account hit the page ceiling,
	// meaning the persisted list may be incomplete.
	Truncated bool
}

// BuildRepositoryList rebuilds the flattened repository list from the
// selected accounts and persists it wholesale. A failing page stops
// collection for that account only; the other accounts still contribute.
// The result is deduplicated by full name (first occurrence wins) and
// sorted ascending by full name.
func (s *DirectoryService) BuildRepositoryList(ctx context.Context, selected []models.Account) (*RepositoryListResult, error) {
	log := logger.FromContext(ctx)

	var (
		collected []models.Repository
		truncated bool
	)
	for _, account := range selected {
		for page := 1; ; page++ {
			if page > repoMaxPages {
				log.Warn("repository list truncated at page ceiling",
					"account", account.Login, "max_pages", repoMaxPages)
				truncated = true
				break
			}

			repos, err := s.client.ListRepositories(ctx, account, page, repoPageSize)
			if err != nil {
				log.Warn("error listing repositories, keeping partial results for account",
					"account", account.Login, "page", page, "error", err)
				break
			}
			if len(repos) == 0 {
				break
			}
			collected = append(collected, repos...)
		}
	}

	deduped := dedupeRepositories(collected)
	sort.Slice(deduped, func(i, j int) bool {
		return deduped[i].FullName < deduped[j].FullName
	})

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	state.Repositories = deduped
	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	log.Info("repository list rebuilt",
		"accounts", len(selected), "repositories", len(deduped), "truncated", truncated)

	return &RepositoryListResult{Repositories: deduped, Truncated: truncated}, nil
}

// Repositories returns the persisted repository list as-is.
func (s *DirectoryService) Repositories() ([]models.Repository, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return state.Repositories, nil
}

func dedupeRepositories(repos []models.Repository) []models.Repository {
	seen := make(map[string]struct{}, len(repos))
	out := make([]models.Repository, 0, len(repos))
	for _, repo := range repos {
		if _, dup := seen[repo.FullName]; dup {
			continue
		}
		seen[repo.FullName] = struct{}{}
		out = append(out, repo)
	}
	return out
}
