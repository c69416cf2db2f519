// Package richmeta persists the decorative metadata a user attaches to
// their own secrets: image URL, mood emoji, background tint, and font
// style. The backend has no representation of this record; it lives
// only on the submitting device, keyed by secret id. It is best-effort
// enrichment: writes that fail are swallowed and unreadable records
// read as absent.
package richmeta

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/json-iterator/go"
)

// Background tints a secret card can carry. Empty string is the
// default (no tint).
const (
	BgDefault = ""
	BgRose    = "rose"
	BgViolet  = "violet"
	BgAmber   = "amber"
	BgCyan    = "cyan"
	BgEmerald = "emerald"
)

// BgColors lists the selectable tints in display order
var BgColors = []string{BgDefault, BgRose, BgViolet, BgAmber, BgCyan, BgEmerald}

// Font styles
const (
	FontNormal  = "normal"
	FontDisplay = "display"
)

// MoodEmojis is the fixed mood palette
var MoodEmojis = []string{"🔥", "💔", "😱", "🤫", "😂", "👀", "💀", "🥺", "✨", "😈"}

const filePrefix = "secret_rich_"

// Record is the four-field decoration for one secret. All fields are
// optional; the zero value is a valid record.
type Record struct {
	ImageURL  string `json:"image_url"`
	MoodEmoji string `json:"mood_emoji"`
	BgColor   string `json:"bg_color"`
	FontStyle string `json:"font_style"`
}

// ValidBgColor reports whether s names a selectable tint
func ValidBgColor(s string) bool {
	for _, c := range BgColors {
		if s == c {
			return true
		}
	}
	return false
}

// ValidFontStyle reports whether s names a font style
func ValidFontStyle(s string) bool {
	return s == FontNormal || s == FontDisplay
}

// ValidMoodEmoji reports whether s is empty or in the mood palette
func ValidMoodEmoji(s string) bool {
	if s == "" {
		return true
	}
	for _, m := range MoodEmojis {
		if s == m {
			return true
		}
	}
	return false
}

// Store reads and writes decoration records under a directory, one
// JSON file per secret id.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(id uint64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d.json", filePrefix, id))
}

// Save persists the record for a secret id. Failures (quota, missing
// directory, permissions) are swallowed; this path must never block or
// fail a submission.
func (s *Store) Save(id uint64, rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return
	}
	_ = os.WriteFile(s.path(id), data, 0600)
}

// Get retrieves the record for a secret id. Missing, unreadable, and
// corrupt records all read as absent.
func (s *Store) Get(id uint64) (Record, bool) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}
