package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/whisperwall/cli/pkg/service"
)

var commentCmd = &cobra.Command{
	Use:   "comment <secret-id> [text]",
	Short: "Leave an anonymous comment on a secret",
	Long: `Leave an anonymous comment. With no text, a draft saved from a
previously failed attempt is retried.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		text := strings.Join(args[1:], " ")
		return service.NewCommentService(newStore()).Add(id, text)
	},
}
