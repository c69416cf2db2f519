package api

import (
	"fmt"

	"github.com/whisperwall/cli/pkg/client"
	"github.com/whisperwall/cli/pkg/logger"
)

// AddCommentRequest represents a new anonymous comment
type AddCommentRequest struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// ListComments retrieves the full ordered comment list for a secret.
// Comments are fetched in a single batch; the backend does not
// paginate them.
func ListComments(secretID uint64) ([]Comment, error) {
	logger.Debug("Fetching comments", "secret_id", secretID)

	var response CommentListResponse

	resp, err := client.GetClient().
		R().
		SetResult(&response).
		Get(fmt.Sprintf("/api/v1/secrets/%d/comments", secretID))

	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch comments: %s", resp.Status())
	}

	return response.Comments, nil
}

// AddComment posts an anonymous comment and returns the backend-assigned
// comment id. Timestamp is the client clock in milliseconds.
func AddComment(secretID uint64, text string, timestampMillis int64) (uint64, error) {
	logger.Debug("Adding comment", "secret_id", secretID, "chars", len(text))

	req := AddCommentRequest{
		Text:      text,
		Timestamp: timestampMillis,
	}

	var result SubmitResponse
	resp, err := client.GetClient().
		R().
		SetBody(req).
		SetResult(&result).
		Post(fmt.Sprintf("/api/v1/secrets/%d/comments", secretID))

	if err != nil {
		return 0, fmt.Errorf("failed to add comment: %w", err)
	}

	if !resp.IsSuccess() {
		return 0, fmt.Errorf("failed to add comment: %s", resp.Status())
	}

	return result.ID, nil
}
