package api

import (
	"fmt"

	"github.com/whisperwall/cli/pkg/client"
	"github.com/whisperwall/cli/pkg/logger"
)

// ReactionRequest represents a reaction press on a secret. Previous
// carries the device's prior selection ("" when none) so the backend
// can settle a toggle-off or a switch without any user identity.
type ReactionRequest struct {
	Kind     ReactionKind `json:"kind"`
	Previous ReactionKind `json:"previous,omitempty"`
}

// React records a reaction press on a secret and returns the
// authoritative updated counts for that secret
func React(secretID uint64, kind, previous ReactionKind) (*ReactionCounts, error) {
	logger.Debug("Reacting to secret", "secret_id", secretID, "kind", kind, "previous", previous)

	req := ReactionRequest{Kind: kind, Previous: previous}

	var counts ReactionCounts
	resp, err := client.GetClient().
		R().
		SetBody(req).
		SetResult(&counts).
		Post(fmt.Sprintf("/api/v1/secrets/%d/reactions", secretID))

	if err != nil {
		return nil, fmt.Errorf("failed to react: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to react: %s", resp.Status())
	}

	return &counts, nil
}
