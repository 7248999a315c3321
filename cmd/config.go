package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddxfish/chatterm/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration and provider status",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	if config.Exists() {
		fmt.Printf("Config file: %s\n", path)
	} else {
		fmt.Printf("Config file: %s (not found, using defaults)\n", path)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	historyDir, err := cfg.ResolveHistoryDir()
	if err != nil {
		return err
	}

	fmt.Printf("Provider:    %s\n", cfg.Provider)
	if cfg.Model != "" {
		fmt.Printf("Model:       %s\n", cfg.Model)
	}
	fmt.Printf("Profile:     %s\n", cfg.Profile)
	fmt.Printf("History dir: %s\n", historyDir)
	fmt.Println()
	fmt.Printf("Fireworks key: %s\n", keyStatus(cfg.Fireworks.APIKey))
	fmt.Printf("OpenAI key:    %s\n", keyStatus(cfg.OpenAI.APIKey))
	fmt.Printf("Anthropic key: %s\n", keyStatus(cfg.Anthropic.APIKey))
	return nil
}

func keyStatus(key string) string {
	if key == "" {
		return "not set"
	}
	return "set"
}
