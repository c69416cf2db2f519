// Package formatter renders secrets, comments, and reaction bars for
// the terminal.
package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/whisperwall/cli/pkg/api"
	"github.com/whisperwall/cli/pkg/richmeta"
)

// ReactionEmoji maps each kind to its glyph
var ReactionEmoji = map[api.ReactionKind]string{
	api.ReactionHeart: "❤️",
	api.ReactionFire:  "🔥",
	api.ReactionWow:   "😮",
	api.ReactionSad:   "😢",
}

// categoryStyles gives each known category its badge color. Unknown
// labels fall back to the neutral "other" style.
var categoryStyles = map[string]lipgloss.Style{
	"love":   lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	"work":   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	"family": lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	"funny":  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	"dark":   lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	"random": lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
}

var otherCategoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// bgTints maps decoration tints to card border colors
var bgTints = map[string]lipgloss.Color{
	richmeta.BgRose:    lipgloss.Color("211"),
	richmeta.BgViolet:  lipgloss.Color("135"),
	richmeta.BgAmber:   lipgloss.Color("214"),
	richmeta.BgCyan:    lipgloss.Color("45"),
	richmeta.BgEmerald: lipgloss.Color("42"),
}

var defaultBorder = lipgloss.Color("240")

// CategoryBadge renders a category label in its bucket style, with a
// case-insensitive match and the "other" style as fallback
func CategoryBadge(category string) string {
	normalized := strings.ToLower(category)
	style, ok := categoryStyles[normalized]
	if !ok {
		style = otherCategoryStyle
	}
	return style.Render("#" + normalized)
}

// ReactionBar renders the four counters with this device's selection
// marked. Burst state swaps the glyph briefly after a press.
func ReactionBar(counts api.ReactionCounts, selected api.ReactionKind, burst func(api.ReactionKind) bool) string {
	parts := make([]string, 0, len(api.ReactionKinds))
	for _, kind := range api.ReactionKinds {
		glyph := ReactionEmoji[kind]
		if burst != nil && burst(kind) {
			glyph = "✨" + glyph + "✨"
		}
		cell := fmt.Sprintf("%s %d", glyph, counts.Get(kind))
		if kind == selected {
			cell = lipgloss.NewStyle().Bold(true).Underline(true).Render(cell)
		}
		parts = append(parts, cell)
	}
	return strings.Join(parts, "   ")
}

// termWidth returns the terminal width, defaulting to 80 columns when
// not a terminal
func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	if w > 100 {
		return 100
	}
	return w
}

// cardStyle builds the card frame for a secret, tinted when the local
// decoration record carries a background color
func cardStyle(meta *richmeta.Record) lipgloss.Style {
	border := defaultBorder
	if meta != nil {
		if tint, ok := bgTints[meta.BgColor]; ok {
			border = tint
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(termWidth() - 4)
}

// secretText styles the body, honoring the display ("handwriting")
// font flag with italics
func secretText(text string, meta *richmeta.Record) string {
	if meta != nil && meta.FontStyle == richmeta.FontDisplay {
		return lipgloss.NewStyle().Italic(true).Render(text)
	}
	return text
}

// SecretCard renders a feed preview with its local decorations, if any
func SecretCard(p api.SecretPreview, meta *richmeta.Record, selected api.ReactionKind) string {
	var b strings.Builder

	header := fmt.Sprintf("#%d", p.ID)
	if meta != nil && meta.MoodEmoji != "" {
		header += "  " + meta.MoodEmoji
	}
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(header))
	b.WriteString("\n")
	b.WriteString(secretText(p.Text, meta))
	if meta != nil && meta.ImageURL != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("📷 " + meta.ImageURL))
	}
	b.WriteString("\n")
	b.WriteString(ReactionBar(p.Reactions, selected, nil))
	b.WriteString(fmt.Sprintf("   💬 %d", p.CommentCount))

	return cardStyle(meta).Render(b.String())
}

// SecretDetail renders the full detail view of a secret
func SecretDetail(s api.Secret, meta *richmeta.Record, selected api.ReactionKind) string {
	var b strings.Builder

	header := fmt.Sprintf("#%d  %s  %s", s.ID, CategoryBadge(s.Category), TimeAgo(s.Timestamp))
	if meta != nil && meta.MoodEmoji != "" {
		header += "  " + meta.MoodEmoji
	}
	b.WriteString(lipgloss.NewStyle().Faint(true).Render(header))
	b.WriteString("\n\n")
	b.WriteString(secretText(s.Text, meta))
	if meta != nil && meta.ImageURL != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("📷 " + meta.ImageURL))
	}
	b.WriteString("\n\n")
	b.WriteString(ReactionBar(s.Reactions, selected, nil))
	b.WriteString(fmt.Sprintf("   💬 %d", s.CommentCount))

	return cardStyle(meta).Render(b.String())
}

// CommentLine renders one comment
func CommentLine(c api.Comment) string {
	ts := lipgloss.NewStyle().Faint(true).Render(TimeAgo(c.Timestamp))
	return fmt.Sprintf("  %s  %s", ts, c.Text)
}
