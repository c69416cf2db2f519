package api

import "fmt"

// ReactionKind is one of the four fixed emoji reactions
type ReactionKind string

const (
	ReactionHeart ReactionKind = "heart"
	ReactionFire  ReactionKind = "fire"
	ReactionWow   ReactionKind = "wow"
	ReactionSad   ReactionKind = "sad"
)

// ReactionKinds lists all valid reaction kinds in display order
var ReactionKinds = []ReactionKind{ReactionHeart, ReactionFire, ReactionWow, ReactionSad}

// ParseReactionKind validates a user-supplied reaction kind
func ParseReactionKind(s string) (ReactionKind, error) {
	for _, k := range ReactionKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown reaction kind %q (want heart, fire, wow, or sad)", s)
}

// ReactionCounts holds the four per-secret reaction counters.
// Counters are counts only; the backend keeps no record of who reacted.
type ReactionCounts struct {
	Heart uint64 `json:"heart"`
	Fire  uint64 `json:"fire"`
	Wow   uint64 `json:"wow"`
	Sad   uint64 `json:"sad"`
}

// Get returns the counter for a kind
func (r ReactionCounts) Get(kind ReactionKind) uint64 {
	switch kind {
	case ReactionHeart:
		return r.Heart
	case ReactionFire:
		return r.Fire
	case ReactionWow:
		return r.Wow
	case ReactionSad:
		return r.Sad
	}
	return 0
}

// Add adjusts the counter for a kind by delta, clamping at zero
func (r *ReactionCounts) Add(kind ReactionKind, delta int64) {
	adjust := func(v uint64) uint64 {
		if delta < 0 && uint64(-delta) > v {
			return 0
		}
		return uint64(int64(v) + delta)
	}
	switch kind {
	case ReactionHeart:
		r.Heart = adjust(r.Heart)
	case ReactionFire:
		r.Fire = adjust(r.Fire)
	case ReactionWow:
		r.Wow = adjust(r.Wow)
	case ReactionSad:
		r.Sad = adjust(r.Sad)
	}
}

// Total returns the sum of all four counters
func (r ReactionCounts) Total() uint64 {
	return r.Heart + r.Fire + r.Wow + r.Sad
}

// SecretPreview is the reduced feed projection of a secret
type SecretPreview struct {
	ID           uint64         `json:"id"`
	Text         string         `json:"text"`
	CommentCount uint64         `json:"comment_count"`
	Reactions    ReactionCounts `json:"reactions"`
}

// Secret is the full detail shape. Timestamp is a nanosecond-resolution
// instant assigned by the backend.
type Secret struct {
	ID           uint64         `json:"id"`
	Text         string         `json:"text"`
	Timestamp    int64          `json:"timestamp"`
	Category     string         `json:"category"`
	CommentCount uint64         `json:"comment_count"`
	Reactions    ReactionCounts `json:"reactions"`
}

// Comment is an anonymous comment on a secret. Comments are append-only
// and immutable once created.
type Comment struct {
	ID        uint64 `json:"id"`
	SecretID  uint64 `json:"secret_id"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// SecretListResponse wraps a feed page
type SecretListResponse struct {
	Secrets []SecretPreview `json:"secrets"`
}

// CommentListResponse wraps a secret's comment list
type CommentListResponse struct {
	Comments []Comment `json:"comments"`
}

// SubmitResponse carries the backend-assigned id of a new secret or comment
type SubmitResponse struct {
	ID uint64 `json:"id"`
}

// ErrorResponse is the backend's structured error body
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
