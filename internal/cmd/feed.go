package cmd

import (
	"github.com/spf13/cobra"
	"github.com/whisperwall/cli/pkg/queries"
	"github.com/whisperwall/cli/pkg/service"
)

var (
	feedPage        int
	feedInteractive bool
)

var feedCmd = &cobra.Command{
	Use:       "feed [all|trending|recent]",
	Short:     "Browse the secrets feed",
	Long:      "Browse anonymous secrets. Filters: recent (newest first), trending (highest engagement), all.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"all", "trending", "recent"},
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "recent"
		if len(args) == 1 {
			name = args[0]
		}
		filter, err := queries.ParseFilter(name)
		if err != nil {
			return err
		}

		feedService := service.NewFeedService(newStore())
		if feedInteractive {
			return feedService.Browse(filter)
		}
		return feedService.ViewPage(filter, feedPage)
	},
}

func init() {
	feedCmd.Flags().IntVar(&feedPage, "page", 0, "Page number (zero-based)")
	feedCmd.Flags().BoolVarP(&feedInteractive, "interactive", "i", false, "Keep loading pages interactively")
}
