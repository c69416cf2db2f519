package queries

import (
	"github.com/whisperwall/cli/pkg/api"
	"github.com/whisperwall/cli/pkg/logger"
	"github.com/whisperwall/cli/pkg/optimistic"
)

// ReactionView is what the reaction bar displays for one secret: the
// four counters plus this device's active selection ("" when none).
type ReactionView struct {
	Counts    api.ReactionCounts
	Selection api.ReactionKind
}

// ReactOutcome reports how a reaction press settled
type ReactOutcome struct {
	View ReactionView
	// RolledBack is true when the remote call failed and the displayed
	// state was restored to its pre-press snapshot.
	RolledBack bool
}

// ReactionView assembles the current display state for a secret,
// fetching detail if nothing is cached yet
func (s *Store) ReactionView(id uint64) (ReactionView, error) {
	view := ReactionView{}
	if kind, ok := s.session.Selection(id); ok {
		view.Selection = kind
	}

	if v, ok := s.cache.Get(secretKey(id)); ok {
		view.Counts = v.(api.Secret).Reactions
		return view, nil
	}
	if counts, ok := s.previewCounts(id); ok {
		view.Counts = counts
		return view, nil
	}

	secret, err := s.Secret(id)
	if err != nil {
		return ReactionView{}, err
	}
	view.Counts = secret.Reactions
	return view, nil
}

// previewCounts looks for the secret in any cached feed page
func (s *Store) previewCounts(id uint64) (api.ReactionCounts, bool) {
	for _, key := range s.cache.Keys("secrets/") {
		v, ok := s.cache.Get(key)
		if !ok {
			continue
		}
		for _, p := range v.([]api.SecretPreview) {
			if p.ID == id {
				return p.Reactions, true
			}
		}
	}
	return api.ReactionCounts{}, false
}

// React handles one reaction press with the optimistic protocol:
//
//  1. snapshot the displayed counts and selection
//  2. apply the speculative change locally before the call is issued:
//     same kind toggles off (undo), a different prior kind is switched
//     away from (its counter drops by one), otherwise plain increment
//  3. on success, the authoritative counts from the backend replace the
//     speculative ones wholesale, reconciling concurrent reactions
//  4. on failure, the snapshot is restored exactly; no partial state
//
// Cached feed previews and the detail entry are patched rather than
// refetched either way.
func (s *Store) React(id uint64, kind api.ReactionKind) (*ReactOutcome, error) {
	current, err := s.ReactionView(id)
	if err != nil {
		return nil, err
	}

	txn := optimistic.Begin(current)

	speculative := current
	switch {
	case current.Selection == kind:
		// Toggle off: undo this device's reaction
		speculative.Counts.Add(kind, -1)
		speculative.Selection = ""
	case current.Selection != "":
		// Switch: move this device's reaction to the new kind
		speculative.Counts.Add(kind, 1)
		speculative.Counts.Add(current.Selection, -1)
		speculative.Selection = kind
	default:
		speculative.Counts.Add(kind, 1)
		speculative.Selection = kind
	}
	txn.Apply(speculative)
	s.applyReactionView(id, speculative)

	counts, err := api.React(id, kind, current.Selection)
	if err != nil {
		restored := txn.Rollback()
		s.applyReactionView(id, restored)
		logger.Debug("Reaction rolled back", "secret_id", id, "kind", kind)
		return &ReactOutcome{View: restored, RolledBack: true}, err
	}

	final := ReactionView{Counts: *counts, Selection: speculative.Selection}
	txn.Commit(final)
	s.applyReactionView(id, final)
	return &ReactOutcome{View: final}, nil
}

// applyReactionView writes a reaction view into the session selection
// and every cache entry showing the secret. This is the single
// designated mutation point for reaction state.
func (s *Store) applyReactionView(id uint64, view ReactionView) {
	if view.Selection == "" {
		s.session.ClearSelection(id)
	} else {
		s.session.SetSelection(id, view.Selection)
	}
	s.patchSecret(id, func(secret *api.Secret) {
		secret.Reactions = view.Counts
	})
	s.patchFeedPreviews(id, func(p *api.SecretPreview) {
		p.Reactions = view.Counts
	})
}
