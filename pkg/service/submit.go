package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/whisperwall/cli/pkg/logger"
	"github.com/whisperwall/cli/pkg/output"
	"github.com/whisperwall/cli/pkg/prompter"
	"github.com/whisperwall/cli/pkg/queries"
	"github.com/whisperwall/cli/pkg/richmeta"
	"github.com/whisperwall/cli/pkg/upload"
)

// uploadPhase tracks the submission form's image affordance
type uploadPhase int

const (
	phaseIdle uploadPhase = iota
	phaseSelected
	phaseUploading
	phaseUploaded
	phaseFailed
)

// SubmitOptions carries a submission assembled from flags or prompts
type SubmitOptions struct {
	Text      string
	Category  string
	ImagePath string
	MoodEmoji string
	BgColor   string
	FontStyle string
}

// SubmitService drives the secret submission flow
type SubmitService struct {
	store    *queries.Store
	uploader *upload.Client
}

// NewSubmitService creates a submit service over a data-access store
// and the object-storage uploader
func NewSubmitService(store *queries.Store, uploader *upload.Client) *SubmitService {
	return &SubmitService{store: store, uploader: uploader}
}

// Submit validates the decorations, uploads the image when one was
// selected, submits the secret, and persists its local decoration
// record. An image upload failure degrades to posting without the
// image after a one-time warning; it never aborts the submission.
func (ss *SubmitService) Submit(opts SubmitOptions) (uint64, error) {
	fontStyle := opts.FontStyle
	if fontStyle == "" {
		fontStyle = richmeta.FontNormal
	}
	if !richmeta.ValidFontStyle(fontStyle) {
		return 0, fmt.Errorf("unknown font style %q (want normal or display)", opts.FontStyle)
	}
	if !richmeta.ValidBgColor(opts.BgColor) {
		return 0, fmt.Errorf("unknown background %q (want rose, violet, amber, cyan, or emerald)", opts.BgColor)
	}
	if !richmeta.ValidMoodEmoji(opts.MoodEmoji) {
		return 0, fmt.Errorf("unknown mood %q (want one of %s)", opts.MoodEmoji, strings.Join(richmeta.MoodEmojis, " "))
	}

	meta := richmeta.Record{
		MoodEmoji: opts.MoodEmoji,
		BgColor:   opts.BgColor,
		FontStyle: fontStyle,
	}

	phase := phaseIdle
	if opts.ImagePath != "" {
		phase = phaseSelected
	}

	if phase == phaseSelected {
		url, ok := ss.uploadImage(opts.ImagePath)
		if ok {
			phase = phaseUploaded
			meta.ImageURL = url
		} else {
			phase = phaseFailed
			output.PrintWarning("image upload failed — posting without image")
		}
	}

	id, err := ss.store.SubmitSecret(opts.Text, opts.Category, &meta)
	if err != nil {
		return 0, fmt.Errorf("failed to post your secret: %w", err)
	}

	logger.Debug("Secret posted", "id", id, "upload_phase", int(phase))
	output.PrintSuccess("Your secret has been shared anonymously (#%d).", id)
	output.PrintInfo("It will appear in the feed shortly.")
	return id, nil
}

// uploadImage reads and uploads the selected file, rendering progress.
// Returns ("", false) on any failure; the caller degrades gracefully.
func (ss *SubmitService) uploadImage(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Could not read image", "path", path, "err", err)
		return "", false
	}

	url, err := ss.uploader.Upload(data, func(pct int) {
		fmt.Printf("\rUploading… %d%%", pct)
	})
	fmt.Println()
	if err != nil {
		logger.Warn("Image upload failed", "path", path, "err", err)
		return "", false
	}
	return url, true
}

// Interactive walks the user through a submission
func (ss *SubmitService) Interactive() (uint64, error) {
	text, err := prompter.PromptString("Your secret: ")
	if err != nil {
		return 0, err
	}

	idx, err := prompter.PromptSelect("Category:", queries.Categories)
	if err != nil {
		return 0, err
	}
	category := queries.Categories[idx]

	opts := SubmitOptions{Text: text, Category: category}

	if opts.ImagePath, err = prompter.PromptOptional("Image path"); err != nil {
		return 0, err
	}

	moods := append([]string{"none"}, richmeta.MoodEmojis...)
	if idx, err = prompter.PromptSelect("Mood:", moods); err != nil {
		return 0, err
	}
	if idx > 0 {
		opts.MoodEmoji = richmeta.MoodEmojis[idx-1]
	}

	tints := []string{"default", richmeta.BgRose, richmeta.BgViolet, richmeta.BgAmber, richmeta.BgCyan, richmeta.BgEmerald}
	if idx, err = prompter.PromptSelect("Card background:", tints); err != nil {
		return 0, err
	}
	if idx > 0 {
		opts.BgColor = tints[idx]
	}

	if idx, err = prompter.PromptSelect("Font style:", []string{"normal", "handwriting"}); err != nil {
		return 0, err
	}
	if idx == 1 {
		opts.FontStyle = richmeta.FontDisplay
	}

	return ss.Submit(opts)
}
