package api

import (
	"fmt"

	"github.com/whisperwall/cli/pkg/client"
	"github.com/whisperwall/cli/pkg/logger"
)

// SubmitSecretRequest represents a new anonymous secret submission
type SubmitSecretRequest struct {
	Text      string `json:"text"`
	Category  string `json:"category"`
	Timestamp int64  `json:"timestamp"`
}

// ListSecrets retrieves one feed page. Filter is one of all, trending,
// or recent; page is zero-based. The backend returns at most one page
// size worth of previews.
func ListSecrets(filter string, page int) ([]SecretPreview, error) {
	logger.Debug("Fetching secrets feed", "filter", filter, "page", page)

	var response SecretListResponse

	resp, err := client.GetClient().
		R().
		SetQueryParams(map[string]string{
			"filter": filter,
			"page":   fmt.Sprintf("%d", page),
		}).
		SetResult(&response).
		Get("/api/v1/secrets")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch secrets: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch secrets: %s", resp.Status())
	}

	return response.Secrets, nil
}

// GetSecret retrieves full detail for a single secret
func GetSecret(id uint64) (*Secret, error) {
	logger.Debug("Fetching secret", "id", id)

	var secret Secret

	resp, err := client.GetClient().
		R().
		SetResult(&secret).
		Get(fmt.Sprintf("/api/v1/secrets/%d", id))

	if err != nil {
		return nil, fmt.Errorf("failed to fetch secret: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, ParseError(resp)
	}

	return &secret, nil
}

// SubmitSecret submits a new anonymous secret and returns the
// backend-assigned id. Timestamp is the client clock in milliseconds.
func SubmitSecret(text, category string, timestampMillis int64) (uint64, error) {
	logger.Debug("Submitting secret", "category", category, "chars", len(text))

	req := SubmitSecretRequest{
		Text:      text,
		Category:  category,
		Timestamp: timestampMillis,
	}

	var result SubmitResponse
	resp, err := client.GetClient().
		R().
		SetBody(req).
		SetResult(&result).
		Post("/api/v1/secrets")

	if err != nil {
		return 0, fmt.Errorf("failed to submit secret: %w", err)
	}

	if !resp.IsSuccess() {
		return 0, fmt.Errorf("failed to submit secret: %s", resp.Status())
	}

	logger.Debug("Secret submitted", "id", result.ID)
	return result.ID, nil
}
