package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ddxfish/chatterm/internal/llm"
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&llm.Debug, "debug", false, "Log raw provider traffic to stderr")
}

var rootCmd = &cobra.Command{
	Use:   "chatterm",
	Short: "Streaming multi-provider chat in the terminal",
	Long: `chatterm is a terminal chat client for streaming LLM providers.

Conversations are stored as plain text files and survive restarts;
starting chatterm with no arguments resumes the most recent one.

Examples:
  chatterm                              # resume the latest conversation
  chatterm chat --model gpt-4o          # start with a specific model
  chatterm sessions                     # list stored conversations
  chatterm export out.md                # export the latest conversation`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
