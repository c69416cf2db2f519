package service

import (
	"fmt"

	"github.com/whisperwall/cli/pkg/logger"
	"github.com/whisperwall/cli/pkg/output"
	"github.com/whisperwall/cli/pkg/queries"
)

// CommentService drives anonymous comment submission
type CommentService struct {
	store *queries.Store
}

// NewCommentService creates a comment service over a data-access store
func NewCommentService(store *queries.Store) *CommentService {
	return &CommentService{store: store}
}

// Add posts a comment on a secret. An empty text falls back to the
// draft rescued from a previous failed attempt, so the user retries
// without retyping. On failure the text is saved as a draft again and
// a notification is shown.
func (cs *CommentService) Add(secretID uint64, text string) error {
	if text == "" {
		draft, ok := cs.store.Session().Draft(secretID)
		if !ok {
			return queries.ErrEmptyText
		}
		output.PrintInfo("Retrying saved draft: %q", draft)
		text = draft
	}

	commentID, err := cs.store.AddComment(secretID, text)
	if err != nil {
		output.PrintError("failed to post comment — your text was saved, run the command again to retry")
		return err
	}

	logger.Debug("Comment posted", "secret_id", secretID, "comment_id", commentID)
	output.PrintSuccess("Comment posted anonymously.")
	fmt.Println()
	return nil
}
