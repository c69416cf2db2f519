package cmd

import (
	"github.com/spf13/cobra"
	"github.com/whisperwall/cli/pkg/api"
	"github.com/whisperwall/cli/pkg/service"
)

var reactCmd = &cobra.Command{
	Use:   "react <secret-id> <heart|fire|wow|sad>",
	Short: "React to a secret",
	Long: `React to a secret with one of the four emoji reactions. Reacting
again with the same kind removes your reaction; a different kind
switches it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		kind, err := api.ParseReactionKind(args[1])
		if err != nil {
			return err
		}
		return service.NewReactService(newStore()).React(id, kind)
	},
}
