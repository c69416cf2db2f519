// Package queries is the data-access layer between the command surface
// and the remote backend. Every read goes through the shared query
// cache; every mutation patches or invalidates cache entries in its
// success/failure handler and nowhere else.
package queries

import (
	"fmt"
	"strings"
	"time"

	"github.com/whisperwall/cli/pkg/api"
	"github.com/whisperwall/cli/pkg/cache"
	"github.com/whisperwall/cli/pkg/logger"
	"github.com/whisperwall/cli/pkg/richmeta"
	"github.com/whisperwall/cli/pkg/session"
)

// PageSize is the fixed feed page size. Receiving a full page is the
// only signal that more pages may exist; an exactly-full last page
// over-reports by one empty fetch, which the feed view tolerates.
const PageSize = 20

// Filter selects a feed ordering
type Filter string

const (
	FilterAll      Filter = "all"
	FilterTrending Filter = "trending"
	FilterRecent   Filter = "recent"
)

// Filters lists the valid feed filters
var Filters = []Filter{FilterAll, FilterTrending, FilterRecent}

// ParseFilter validates a user-supplied filter name
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown feed filter %q (want all, trending, or recent)", s)
}

// Categories a secret can be filed under. Sent lower-cased; display
// code falls back to a generic style for anything else.
var Categories = []string{"love", "work", "family", "funny", "dark", "random"}

// NormalizeCategory lower-cases and validates a category
func NormalizeCategory(s string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if c == normalized {
			return normalized, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (want one of %s)", s, strings.Join(Categories, ", "))
}

// ErrEmptyText rejects blank submissions before any network call
var ErrEmptyText = fmt.Errorf("text must not be empty")

// Store combines the query cache, the per-device session state, and
// the local decoration store behind the operations the views use.
type Store struct {
	cache   *cache.Cache
	session *session.Store
	meta    *richmeta.Store

	// now is the client clock for submission timestamps
	now func() time.Time
}

// NewStore wires a data-access store from its parts
func NewStore(c *cache.Cache, s *session.Store, m *richmeta.Store) *Store {
	return &Store{cache: c, session: s, meta: m, now: time.Now}
}

// SetClock overrides the client clock. Tests only.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Meta exposes the local decoration store
func (s *Store) Meta() *richmeta.Store {
	return s.meta
}

// Session exposes the per-device session state
func (s *Store) Session() *session.Store {
	return s.session
}

func feedKey(filter Filter, page int) string {
	return fmt.Sprintf("secrets/%s/%d", filter, page)
}

func secretKey(id uint64) string {
	return fmt.Sprintf("secret/%d", id)
}

func commentsKey(id uint64) string {
	return fmt.Sprintf("comments/%d", id)
}

// FeedPage is one cached feed page plus the load-more heuristic
type FeedPage struct {
	Filter    Filter
	Page      int
	Secrets   []api.SecretPreview
	FromCache bool
	// HasMore is true when the page came back full. Heuristic only: an
	// exactly-full final page still reports true.
	HasMore bool
}

// Feed returns one page of the feed for a filter. Each (filter, page)
// pair caches independently; revisiting a page does not refetch unless
// a submission invalidated the feed.
func (s *Store) Feed(filter Filter, page int) (*FeedPage, error) {
	key := feedKey(filter, page)
	if v, ok := s.cache.Get(key); ok {
		secrets := v.([]api.SecretPreview)
		return &FeedPage{
			Filter:    filter,
			Page:      page,
			Secrets:   secrets,
			FromCache: true,
			HasMore:   len(secrets) == PageSize,
		}, nil
	}

	secrets, err := api.ListSecrets(string(filter), page)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, secrets)

	return &FeedPage{
		Filter:  filter,
		Page:    page,
		Secrets: secrets,
		HasMore: len(secrets) == PageSize,
	}, nil
}

// Secret returns full detail for one secret, from cache when possible
func (s *Store) Secret(id uint64) (*api.Secret, error) {
	if v, ok := s.cache.Get(secretKey(id)); ok {
		secret := v.(api.Secret)
		return &secret, nil
	}

	secret, err := api.GetSecret(id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(secretKey(id), *secret)
	return secret, nil
}

// Comments returns the full comment list for a secret, from cache when
// possible
func (s *Store) Comments(id uint64) ([]api.Comment, error) {
	if v, ok := s.cache.Get(commentsKey(id)); ok {
		return v.([]api.Comment), nil
	}

	comments, err := api.ListComments(id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(commentsKey(id), comments)
	return comments, nil
}

// SubmitSecret submits a new secret and, on success, invalidates every
// cached feed page so the next feed view refetches, then persists the
// decoration record under the new id. On failure nothing is touched;
// the caller keeps its form state for retry.
func (s *Store) SubmitSecret(text, category string, meta *richmeta.Record) (uint64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyText
	}
	normalized, err := NormalizeCategory(category)
	if err != nil {
		return 0, err
	}

	id, err := api.SubmitSecret(text, normalized, s.now().UnixMilli())
	if err != nil {
		return 0, err
	}

	invalidated := s.cache.InvalidatePrefix("secrets/")
	logger.Debug("Feed cache invalidated after submit", "id", id, "pages", invalidated)

	if meta != nil {
		s.meta.Save(id, *meta)
	}
	return id, nil
}

// AddComment posts a comment. The draft is cleared on the submit
// attempt, before the call resolves. On success the comment list cache
// for the secret is invalidated (the new entry needs its backend id
// and timestamp) and comment counts are patched in place. On failure
// the submit-time text is restored as a draft for retry.
//
// The restore deliberately uses the text captured at submit time, not
// whatever the input holds when the failure lands: the submit attempt
// consumed that text, so that text is what must come back.
func (s *Store) AddComment(id uint64, text string) (uint64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrEmptyText
	}

	s.session.ClearDraft(id)

	commentID, err := api.AddComment(id, text, s.now().UnixMilli())
	if err != nil {
		s.session.SetDraft(id, text)
		return 0, err
	}

	s.cache.Delete(commentsKey(id))
	s.patchCommentCount(id, 1)
	return commentID, nil
}

// patchCommentCount bumps the comment counter on every cached entry
// showing the secret, avoiding a full refetch
func (s *Store) patchCommentCount(id uint64, delta int64) {
	s.patchSecret(id, func(secret *api.Secret) {
		secret.CommentCount = uint64(int64(secret.CommentCount) + delta)
	})
	s.patchFeedPreviews(id, func(p *api.SecretPreview) {
		p.CommentCount = uint64(int64(p.CommentCount) + delta)
	})
}

// patchSecret rewrites the cached detail entry for a secret, if present
func (s *Store) patchSecret(id uint64, patch func(*api.Secret)) {
	key := secretKey(id)
	v, ok := s.cache.Get(key)
	if !ok {
		return
	}
	secret := v.(api.Secret)
	patch(&secret)
	s.cache.Set(key, secret)
}

// patchFeedPreviews rewrites the preview for a secret in every cached
// feed page that contains it. Pages are replaced copy-on-write so no
// caller holds a slice that mutates under it.
func (s *Store) patchFeedPreviews(id uint64, patch func(*api.SecretPreview)) {
	for _, key := range s.cache.Keys("secrets/") {
		v, ok := s.cache.Get(key)
		if !ok {
			continue
		}
		page := v.([]api.SecretPreview)
		touched := false
		updated := make([]api.SecretPreview, len(page))
		copy(updated, page)
		for i := range updated {
			if updated[i].ID == id {
				patch(&updated[i])
				touched = true
			}
		}
		if touched {
			s.cache.Set(key, updated)
		}
	}
}
