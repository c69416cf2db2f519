package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/whisperwall/cli/pkg/service"
	"github.com/whisperwall/cli/pkg/upload"
)

var (
	submitText  string
	submitCat   string
	submitImage string
	submitMood  string
	submitBg    string
	submitFont  string
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "View and share secrets",
}

var secretViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View one secret with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return service.NewSecretService(newStore()).View(id)
	},
}

var secretSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Share a new secret anonymously",
	Long: `Share a secret. With no flags an interactive flow walks through the
text, category, optional photo, mood, card background, and font style.
Decorations stay on this device only.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		submitService := service.NewSubmitService(newStore(), upload.New())

		if submitText == "" && submitCat == "" {
			_, err := submitService.Interactive()
			return err
		}

		_, err := submitService.Submit(service.SubmitOptions{
			Text:      submitText,
			Category:  submitCat,
			ImagePath: submitImage,
			MoodEmoji: submitMood,
			BgColor:   submitBg,
			FontStyle: submitFont,
		})
		return err
	},
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid secret id %q", s)
	}
	return id, nil
}

func init() {
	secretSubmitCmd.Flags().StringVar(&submitText, "text", "", "Secret text")
	secretSubmitCmd.Flags().StringVar(&submitCat, "category", "", "Category: love, work, family, funny, dark, random")
	secretSubmitCmd.Flags().StringVar(&submitImage, "image", "", "Path to an image (jpg, png, gif, webp)")
	secretSubmitCmd.Flags().StringVar(&submitMood, "mood", "", "Mood emoji from the palette")
	secretSubmitCmd.Flags().StringVar(&submitBg, "bg", "", "Card background: rose, violet, amber, cyan, emerald")
	secretSubmitCmd.Flags().StringVar(&submitFont, "font", "", "Font style: normal or display")

	secretCmd.AddCommand(secretViewCmd)
	secretCmd.AddCommand(secretSubmitCmd)
}
