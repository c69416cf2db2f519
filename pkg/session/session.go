// Package session keeps the per-device view state that a browser tab
// would hold in memory: which reaction this device has active on each
// secret, and comment text rescued from a failed submission. The state
// is a single JSON file in the config directory, loaded and saved
// best-effort in the same manner as any other local client state. It
// is a UI nicety, never authority: the backend has no user identity
// and does not enforce one reaction per secret.
package session

import (
	"os"
	"sync"

	json "github.com/json-iterator/go"

	"github.com/whisperwall/cli/pkg/api"
)

// State is the persisted session file shape
type State struct {
	// Selections maps secret id to the reaction kind this device has
	// active there, at most one per secret.
	Selections map[uint64]api.ReactionKind `json:"selections"`
	// Drafts maps secret id to comment text captured at submit time of
	// a failed submission, so the user can retry without retyping.
	Drafts map[uint64]string `json:"drafts"`
}

// Store loads and saves session state at a fixed path
type Store struct {
	mu    sync.Mutex
	path  string
	state State
}

// NewStore opens the session file at path, starting empty if it is
// missing or unreadable
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.state = State{
		Selections: make(map[uint64]api.ReactionKind),
		Drafts:     make(map[uint64]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var loaded State
	if err := json.Unmarshal(data, &loaded); err != nil {
		return s
	}
	if loaded.Selections != nil {
		s.state.Selections = loaded.Selections
	}
	if loaded.Drafts != nil {
		s.state.Drafts = loaded.Drafts
	}
	return s
}

// save writes the state file. Best effort: a failed write costs only
// session niceties, never data.
func (s *Store) save() {
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0600)
}

// Selection returns the active reaction for a secret, if any
func (s *Store) Selection(secretID uint64) (api.ReactionKind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kind, ok := s.state.Selections[secretID]
	return kind, ok
}

// SetSelection records the active reaction for a secret
func (s *Store) SetSelection(secretID uint64, kind api.ReactionKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Selections[secretID] = kind
	s.save()
}

// ClearSelection removes the active reaction for a secret
func (s *Store) ClearSelection(secretID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state.Selections, secretID)
	s.save()
}

// Draft returns the rescued comment text for a secret, if any
func (s *Store) Draft(secretID uint64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.state.Drafts[secretID]
	return text, ok
}

// SetDraft stores rescued comment text for a secret
func (s *Store) SetDraft(secretID uint64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Drafts[secretID] = text
	s.save()
}

// ClearDraft removes the rescued comment text for a secret
func (s *Store) ClearDraft(secretID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.state.Drafts, secretID)
	s.save()
}
