package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddxfish/chatterm/internal/config"
	"github.com/ddxfish/chatterm/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models from configured providers",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry := llm.NewRegistryFromConfig(cfg)
	for _, provider := range registry.Providers() {
		fmt.Printf("%s:\n", provider.Name())
		for _, model := range provider.Models() {
			fmt.Printf("  %s", llm.ShortFireworksModel(model.Name))
			if model.MaxTokens > 0 {
				fmt.Printf("  (max %d tokens)", model.MaxTokens)
			}
			fmt.Println()
		}
	}
	return nil
}
