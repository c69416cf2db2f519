package service

import (
	"fmt"

	"github.com/whisperwall/cli/pkg/formatter"
	"github.com/whisperwall/cli/pkg/logger"
	"github.com/whisperwall/cli/pkg/output"
	"github.com/whisperwall/cli/pkg/queries"
)

// SecretService renders the detail view of a single secret
type SecretService struct {
	store *queries.Store
}

// NewSecretService creates a secret service over a data-access store
func NewSecretService(store *queries.Store) *SecretService {
	return &SecretService{store: store}
}

// View displays one secret with its comments, local decorations, and
// reaction bar
func (ss *SecretService) View(id uint64) error {
	logger.Debug("Viewing secret", "id", id)

	secret, err := ss.store.Secret(id)
	if err != nil {
		return fmt.Errorf("failed to fetch secret: %w", err)
	}

	comments, err := ss.store.Comments(id)
	if err != nil {
		return fmt.Errorf("failed to fetch comments: %w", err)
	}

	if handled, _ := output.PrintObject(struct {
		Secret   interface{} `json:"secret"`
		Comments interface{} `json:"comments"`
	}{secret, comments}); handled {
		return nil
	}

	selected, _ := ss.store.Session().Selection(id)
	if meta, ok := ss.store.Meta().Get(id); ok {
		fmt.Println(formatter.SecretDetail(*secret, &meta, selected))
	} else {
		fmt.Println(formatter.SecretDetail(*secret, nil, selected))
	}

	fmt.Println()
	if len(comments) == 0 {
		fmt.Println("No comments yet.")
		return nil
	}

	fmt.Printf("Comments (%d):\n", len(comments))
	for _, c := range comments {
		fmt.Println(formatter.CommentLine(c))
	}
	return nil
}
