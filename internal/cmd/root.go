package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/whisperwall/cli/pkg/cache"
	"github.com/whisperwall/cli/pkg/config"
	"github.com/whisperwall/cli/pkg/logger"
	"github.com/whisperwall/cli/pkg/queries"
	"github.com/whisperwall/cli/pkg/richmeta"
	"github.com/whisperwall/cli/pkg/session"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "whisperwall",
	Short: "Whisperwall - Anonymous secret sharing",
	Long: `Whisperwall is a terminal client for the Whisperwall anonymous
secret-sharing service. Browse the feed, share a secret with a photo
and mood, react, and leave anonymous comments without ever revealing
who you are.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := config.Init(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
			os.Exit(1)
		}

		logger.Init(verbose)

		config.SetString("output.format", outputFmt)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newStore assembles the process-wide data-access store: one shared
// query cache, the per-device session state, and the local decoration
// store.
func newStore() *queries.Store {
	return queries.NewStore(
		cache.New(0),
		session.NewStore(config.GetSessionPath()),
		richmeta.NewStore(config.GetRichMetaDir()),
	)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/whisperwall/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")

	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(secretCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(reactCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(versionCmd)
}
