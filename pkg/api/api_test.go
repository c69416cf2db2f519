package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"

	"github.com/whisperwall/cli/pkg/client"
)

// pointAt directs the shared client at a test server
func pointAt(t *testing.T, srv *httptest.Server) {
	t.Helper()
	viper.Set("api.base_url", srv.URL)
	viper.Set("api.timeout", 5)
	client.Reset()
	t.Cleanup(client.Reset)
}

func TestListSecrets(t *testing.T) {
	var gotFilter, gotPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/secrets" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotFilter = r.URL.Query().Get("filter")
		gotPage = r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"secrets":[{"id":1,"text":"hello","comment_count":2,"reactions":{"heart":1,"fire":0,"wow":0,"sad":3}}]}`)
	}))
	defer srv.Close()
	pointAt(t, srv)

	secrets, err := ListSecrets("recent", 0)
	if err != nil {
		t.Fatalf("ListSecrets failed: %v", err)
	}

	if gotFilter != "recent" || gotPage != "0" {
		t.Errorf("query params filter=%s page=%s", gotFilter, gotPage)
	}
	if len(secrets) != 1 {
		t.Fatalf("got %d secrets, want 1", len(secrets))
	}
	if secrets[0].ID != 1 || secrets[0].Reactions.Sad != 3 {
		t.Errorf("preview = %+v", secrets[0])
	}
}

func TestGetSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/secrets/42" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":42,"text":"quiet","timestamp":1700000000000000000,"category":"dark","comment_count":0,"reactions":{"heart":0,"fire":0,"wow":0,"sad":0}}`)
	}))
	defer srv.Close()
	pointAt(t, srv)

	secret, err := GetSecret(42)
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if secret.ID != 42 || secret.Category != "dark" {
		t.Errorf("secret = %+v", secret)
	}
}

func TestGetSecretNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"code":"not_found","message":"no such secret"}`)
	}))
	defer srv.Close()
	pointAt(t, srv)

	_, err := GetSecret(999)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
}

func TestSubmitSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/secrets" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":42}`)
	}))
	defer srv.Close()
	pointAt(t, srv)

	id, err := SubmitSecret("I never told anyone this", "dark", 1700000000000)
	if err != nil {
		t.Fatalf("SubmitSecret failed: %v", err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
}

func TestAddComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/secrets/7/comments" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":101}`)
	}))
	defer srv.Close()
	pointAt(t, srv)

	id, err := AddComment(7, "me too", 1700000000000)
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if id != 101 {
		t.Errorf("id = %d, want 101", id)
	}
}

func TestReact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/secrets/7/reactions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"heart":0,"fire":4,"wow":1,"sad":0}`)
	}))
	defer srv.Close()
	pointAt(t, srv)

	counts, err := React(7, ReactionFire, "")
	if err != nil {
		t.Fatalf("React failed: %v", err)
	}
	if counts.Fire != 4 || counts.Wow != 1 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestParseReactionKind(t *testing.T) {
	for _, valid := range []string{"heart", "fire", "wow", "sad"} {
		if _, err := ParseReactionKind(valid); err != nil {
			t.Errorf("ParseReactionKind(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseReactionKind("angry"); err == nil {
		t.Error("unknown kind should be rejected")
	}
}

func TestReactionCountsAddClampsAtZero(t *testing.T) {
	counts := ReactionCounts{Fire: 0}
	counts.Add(ReactionFire, -1)
	if counts.Fire != 0 {
		t.Errorf("counter went negative: %d", counts.Fire)
	}

	counts.Add(ReactionFire, 2)
	counts.Add(ReactionFire, -1)
	if counts.Fire != 1 {
		t.Errorf("fire = %d, want 1", counts.Fire)
	}
}
