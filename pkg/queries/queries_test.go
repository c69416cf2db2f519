package queries

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/whisperwall/cli/pkg/cache"
	"github.com/whisperwall/cli/pkg/client"
	"github.com/whisperwall/cli/pkg/richmeta"
	"github.com/whisperwall/cli/pkg/session"
)

// newTestStore wires a store against a test backend
func newTestStore(t *testing.T, handler http.Handler) *Store {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	viper.Set("api.base_url", srv.URL)
	viper.Set("api.timeout", 5)
	client.Reset()
	t.Cleanup(client.Reset)

	dir := t.TempDir()
	return NewStore(
		cache.New(0),
		session.NewStore(filepath.Join(dir, "session.json")),
		richmeta.NewStore(filepath.Join(dir, "richposts")),
	)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, body)
}

func previewsJSON(n int, startID uint64) string {
	items := make([]string, n)
	for i := 0; i < n; i++ {
		items[i] = fmt.Sprintf(`{"id":%d,"text":"secret %d","comment_count":0,"reactions":{"heart":0,"fire":0,"wow":0,"sad":0}}`, startID+uint64(i), i)
	}
	return `{"secrets":[` + strings.Join(items, ",") + `]}`
}

func TestFeedCachesPerFilterAndPage(t *testing.T) {
	calls := map[string]int{}
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("filter") + "/" + r.URL.Query().Get("page")
		calls[key]++
		writeJSON(w, previewsJSON(3, 1))
	}))

	// Same (filter, page) fetches once
	first, err := store.Feed(FilterRecent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if first.FromCache {
		t.Error("first load should not come from cache")
	}

	second, err := store.Feed(FilterRecent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !second.FromCache {
		t.Error("revisited page should come from cache")
	}
	if calls["recent/0"] != 1 {
		t.Errorf("recent/0 fetched %d times, want 1", calls["recent/0"])
	}

	// Distinct pages and filters cache independently
	if _, err := store.Feed(FilterRecent, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Feed(FilterTrending, 0); err != nil {
		t.Fatal(err)
	}
	if calls["recent/1"] != 1 || calls["trending/0"] != 1 {
		t.Errorf("calls = %v", calls)
	}
}

func TestFeedHasMoreHeuristic(t *testing.T) {
	full := true
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if full {
			writeJSON(w, previewsJSON(PageSize, 1))
		} else {
			writeJSON(w, previewsJSON(PageSize-1, 1))
		}
	}))

	page, err := store.Feed(FilterAll, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Secrets) != PageSize {
		t.Fatalf("page length %d", len(page.Secrets))
	}
	if !page.HasMore {
		t.Error("a full page is the signal for more pages")
	}

	full = false
	page, err = store.Feed(FilterAll, 1)
	if err != nil {
		t.Fatal(err)
	}
	if page.HasMore {
		t.Error("a short page means the feed is exhausted")
	}
}

func TestSubmitInvalidatesFeedAndSavesMeta(t *testing.T) {
	submitted := false
	var gotCategory string
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/secrets":
			submitted = true
			body, _ := io.ReadAll(r.Body)
			if strings.Contains(string(body), `"category":"dark"`) {
				gotCategory = "dark"
			}
			writeJSON(w, `{"id":42}`)
		case r.URL.Path == "/api/v1/secrets":
			if submitted {
				writeJSON(w, `{"secrets":[{"id":42,"text":"I never told anyone this","comment_count":0,"reactions":{"heart":0,"fire":0,"wow":0,"sad":0}}]}`)
			} else {
				writeJSON(w, `{"secrets":[]}`)
			}
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	// Warm the feed cache before submitting
	page, err := store.Feed(FilterRecent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Secrets) != 0 {
		t.Fatalf("feed should start empty, got %d", len(page.Secrets))
	}

	meta := &richmeta.Record{MoodEmoji: "🤫", BgColor: richmeta.BgViolet, FontStyle: richmeta.FontDisplay}
	id, err := store.SubmitSecret("I never told anyone this", "Dark", meta)
	if err != nil {
		t.Fatalf("SubmitSecret failed: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if gotCategory != "dark" {
		t.Error("category should be sent lower-cased")
	}

	// The feed cache was invalidated, so this refetches and sees id 42
	page, err = store.Feed(FilterRecent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if page.FromCache {
		t.Error("feed should refetch after submission invalidated it")
	}
	found := false
	for _, p := range page.Secrets {
		if p.ID == 42 {
			found = true
		}
	}
	if !found {
		t.Error("refetched feed should include the new secret")
	}

	// Decorations persisted under the backend-assigned id
	rec, ok := store.Meta().Get(42)
	if !ok {
		t.Fatal("decoration record should be saved for the new id")
	}
	if rec != *meta {
		t.Errorf("decoration record = %+v, want %+v", rec, *meta)
	}
}

func TestSubmitValidationBeforeNetwork(t *testing.T) {
	calls := 0
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	if _, err := store.SubmitSecret("   ", "dark", nil); err != ErrEmptyText {
		t.Errorf("blank text should fail with ErrEmptyText, got %v", err)
	}
	if _, err := store.SubmitSecret("something", "gossip", nil); err == nil {
		t.Error("unknown category should be rejected")
	}
	if calls != 0 {
		t.Errorf("validation failures should make no network call, saw %d", calls)
	}
}

func TestSubmitFailureLeavesStateAlone(t *testing.T) {
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeJSON(w, previewsJSON(2, 1))
	}))

	if _, err := store.Feed(FilterRecent, 0); err != nil {
		t.Fatal(err)
	}

	if _, err := store.SubmitSecret("text", "love", &richmeta.Record{MoodEmoji: "🔥"}); err == nil {
		t.Fatal("expected submit failure")
	}

	// Feed cache stays warm and no orphan decoration appears
	page, err := store.Feed(FilterRecent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !page.FromCache {
		t.Error("failed submission must not invalidate the feed cache")
	}
}

// commentBackend serves a secret with comments and lets tests fail the
// comment endpoint
type commentBackend struct {
	failComments bool
	commentGets  int
}

func (b *commentBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/v1/secrets" && r.Method == http.MethodGet:
			writeJSON(w, `{"secrets":[{"id":7,"text":"s","comment_count":2,"reactions":{"heart":0,"fire":3,"wow":0,"sad":0}}]}`)
		case r.URL.Path == "/api/v1/secrets/7" && r.Method == http.MethodGet:
			writeJSON(w, `{"id":7,"text":"s","timestamp":1700000000000000000,"category":"work","comment_count":2,"reactions":{"heart":0,"fire":3,"wow":0,"sad":0}}`)
		case r.URL.Path == "/api/v1/secrets/7/comments" && r.Method == http.MethodGet:
			b.commentGets++
			writeJSON(w, `{"comments":[{"id":1,"secret_id":7,"text":"first","timestamp":1700000000000000000}]}`)
		case r.URL.Path == "/api/v1/secrets/7/comments" && r.Method == http.MethodPost:
			if b.failComments {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			writeJSON(w, `{"id":99}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestAddCommentPatchesCountsAndInvalidatesList(t *testing.T) {
	backend := &commentBackend{}
	store := newTestStore(t, backend.handler())

	// Warm feed, detail, and comment caches
	if _, err := store.Feed(FilterRecent, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Secret(7); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Comments(7); err != nil {
		t.Fatal(err)
	}

	id, err := store.AddComment(7, "  me too  ")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if id != 99 {
		t.Errorf("comment id = %d", id)
	}

	// Counts patched in place, no refetch of feed or detail
	secret, err := store.Secret(7)
	if err != nil {
		t.Fatal(err)
	}
	if secret.CommentCount != 3 {
		t.Errorf("detail comment count = %d, want 3", secret.CommentCount)
	}
	page, err := store.Feed(FilterRecent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !page.FromCache {
		t.Error("feed should still be cached after a comment")
	}
	if page.Secrets[0].CommentCount != 3 {
		t.Errorf("preview comment count = %d, want 3", page.Secrets[0].CommentCount)
	}

	// The comment list itself refetches to pick up the backend entry
	before := backend.commentGets
	if _, err := store.Comments(7); err != nil {
		t.Fatal(err)
	}
	if backend.commentGets != before+1 {
		t.Error("comment list should refetch after its cache was invalidated")
	}

	if _, ok := store.Session().Draft(7); ok {
		t.Error("no draft should remain after a successful comment")
	}
}

func TestAddCommentFailureRestoresSubmitTimeText(t *testing.T) {
	backend := &commentBackend{failComments: true}
	store := newTestStore(t, backend.handler())

	if _, err := store.Feed(FilterRecent, 0); err != nil {
		t.Fatal(err)
	}

	_, err := store.AddComment(7, "  my exact words  ")
	if err == nil {
		t.Fatal("expected comment failure")
	}

	// The rescued draft is the trimmed text captured at submit time
	draft, ok := store.Session().Draft(7)
	if !ok {
		t.Fatal("failed comment should leave a draft")
	}
	if draft != "my exact words" {
		t.Errorf("draft = %q", draft)
	}

	// Counts untouched
	page, err := store.Feed(FilterRecent, 0)
	if err != nil {
		t.Fatal(err)
	}
	if page.Secrets[0].CommentCount != 2 {
		t.Errorf("preview comment count = %d, want 2", page.Secrets[0].CommentCount)
	}
}

func TestAddCommentEmptyText(t *testing.T) {
	calls := 0
	store := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	if _, err := store.AddComment(7, "   "); err != ErrEmptyText {
		t.Errorf("blank comment should fail with ErrEmptyText, got %v", err)
	}
	if calls != 0 {
		t.Error("validation failure should make no network call")
	}
}

func TestCommentsAndSecretCache(t *testing.T) {
	backend := &commentBackend{}
	store := newTestStore(t, backend.handler())

	if _, err := store.Comments(7); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Comments(7); err != nil {
		t.Fatal(err)
	}
	if backend.commentGets != 1 {
		t.Errorf("comments fetched %d times, want 1", backend.commentGets)
	}
}
