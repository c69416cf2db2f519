package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/whisperwall/cli/pkg/api"
	"github.com/whisperwall/cli/pkg/richmeta"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "just now"},
		{"one minute", 90 * time.Second, "1 min ago"},
		{"minutes", 5 * time.Minute, "5 mins ago"},
		{"one hour", time.Hour, "1 hour ago"},
		{"hours", 2 * time.Hour, "2 hours ago"},
		{"days", 3 * 24 * time.Hour, "3 days ago"},
		{"weeks", 14 * 24 * time.Hour, "2 weeks ago"},
		{"months", 60 * 24 * time.Hour, "2 months ago"},
	}

	for _, tt := range tests {
		got := TimeAgo(now.Add(-tt.ago).UnixNano())
		if got != tt.want {
			t.Errorf("%s: TimeAgo = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCategoryBadge(t *testing.T) {
	// Case-insensitive bucketing into the known set
	if !strings.Contains(CategoryBadge("LOVE"), "#love") {
		t.Errorf("badge = %q", CategoryBadge("LOVE"))
	}

	// Unknown labels still render, in the fallback style
	if !strings.Contains(CategoryBadge("gossip"), "#gossip") {
		t.Errorf("badge = %q", CategoryBadge("gossip"))
	}
}

func TestReactionBar(t *testing.T) {
	counts := api.ReactionCounts{Heart: 1, Fire: 3}

	bar := ReactionBar(counts, "", nil)
	if !strings.Contains(bar, "3") || !strings.Contains(bar, "🔥") {
		t.Errorf("bar = %q", bar)
	}

	// Burst swaps in the sparkle glyph for the active kind only
	burst := func(k api.ReactionKind) bool { return k == api.ReactionFire }
	bar = ReactionBar(counts, api.ReactionFire, burst)
	if !strings.Contains(bar, "✨🔥✨") {
		t.Errorf("burst bar = %q", bar)
	}
	if strings.Contains(bar, "✨❤️✨") {
		t.Errorf("burst leaked to other kinds: %q", bar)
	}
}

func TestSecretCard(t *testing.T) {
	preview := api.SecretPreview{
		ID:           7,
		Text:         "I still sleep with the lights on",
		CommentCount: 2,
		Reactions:    api.ReactionCounts{Fire: 3},
	}

	card := SecretCard(preview, nil, "")
	if !strings.Contains(card, "I still sleep with the lights on") {
		t.Errorf("card missing text: %q", card)
	}
	if !strings.Contains(card, "#7") {
		t.Errorf("card missing id: %q", card)
	}

	// Decorations show when a local record exists
	meta := &richmeta.Record{MoodEmoji: "👀", ImageURL: "https://cdn.example/x"}
	card = SecretCard(preview, meta, "")
	if !strings.Contains(card, "👀") {
		t.Errorf("card missing mood: %q", card)
	}
	if !strings.Contains(card, "https://cdn.example/x") {
		t.Errorf("card missing image url: %q", card)
	}
}

func TestSecretDetail(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	nowFunc = func() time.Time { return now }
	defer func() { nowFunc = time.Now }()

	secret := api.Secret{
		ID:           42,
		Text:         "quiet",
		Timestamp:    now.Add(-2 * time.Hour).UnixNano(),
		Category:     "dark",
		CommentCount: 1,
		Reactions:    api.ReactionCounts{Sad: 4},
	}

	detail := SecretDetail(secret, nil, api.ReactionSad)
	if !strings.Contains(detail, "quiet") {
		t.Errorf("detail missing text: %q", detail)
	}
	if !strings.Contains(detail, "#dark") {
		t.Errorf("detail missing category: %q", detail)
	}
	if !strings.Contains(detail, "2 hours ago") {
		t.Errorf("detail missing timestamp: %q", detail)
	}
}

func TestCommentLine(t *testing.T) {
	line := CommentLine(api.Comment{ID: 1, SecretID: 7, Text: "me too", Timestamp: time.Now().UnixNano()})
	if !strings.Contains(line, "me too") {
		t.Errorf("line = %q", line)
	}
	if !strings.Contains(line, "just now") {
		t.Errorf("line missing relative time: %q", line)
	}
}
