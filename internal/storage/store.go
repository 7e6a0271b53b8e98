package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thomas-vilte/thoth/internal/models"
)

// State is the local scope of persisted state: the discovered accounts,
// the user's selections, and the derived repository list. The repository
// list is always replaced wholesale, never partially mutated.
type State struct {
	Accounts     []models.Account    `json:"accounts"`
	Selected     []models.Account    `json:"selected"`
	Repositories []models.Repository `json:"repositories"`
}

// IsSelected reports whether the account is in the selection set,
// keyed by (login, kind).
func (s *State) IsSelected(acc models.Account) bool {
	for _, sel := range s.Selected {
		if sel.Login == acc.Login && sel.Kind == acc.Kind {
			return true
		}
	}
	return false
}

// Select adds the account to the selection set if not already present.
func (s *State) Select(acc models.Account) {
	if s.IsSelected(acc) {
		return
	}
	s.Selected = append(s.Selected, acc)
}

// Deselect removes the account from the selection set.
func (s *State) Deselect(acc models.Account) {
	kept := s.Selected[:0]
	for _, sel := range s.Selected {
		if sel.Login != acc.Login || sel.Kind != acc.Kind {
			kept = append(kept, sel)
		}
	}
	s.Selected = kept
}

// Store persists the local state as a JSON file under the config directory.
type Store struct {
	path string
}

func NewStore(homeDir string) (*Store, error) {
	dir := filepath.Join(homeDir, ".thoth")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating state directory: %w", err)
	}
	return &Store{path: filepath.Join(dir, "state.json")}, nil
}

// Load reads the persisted state. A missing file is an empty state, not an
// error.
func (s *Store) Load() (*State, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading state file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("error decoding state file: %w", err)
	}
	return &state, nil
}

func (s *Store) Save(state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("error saving state: %w", err)
	}
	return nil
}
