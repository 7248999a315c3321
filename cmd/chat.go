package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ddxfish/chatterm/internal/chat"
	"github.com/ddxfish/chatterm/internal/config"
	"github.com/ddxfish/chatterm/internal/history"
	"github.com/ddxfish/chatterm/internal/llm"
	"github.com/ddxfish/chatterm/internal/tui"
)

var (
	chatModel    string
	chatProvider string
	chatProfile  string
	chatNew      bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat UI",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	for _, c := range []*cobra.Command{rootCmd, chatCmd} {
		c.Flags().StringVarP(&chatModel, "model", "m", "", "Model to chat with (overrides config)")
		c.Flags().StringVarP(&chatProvider, "provider", "p", "", "Provider to use (Fireworks, GPT, Claude, None)")
		c.Flags().StringVar(&chatProfile, "profile", "", "Generation profile (coder, normal, creative)")
		c.Flags().BoolVar(&chatNew, "new", false, "Start a fresh conversation instead of resuming")
	}
}

// newSession builds a fully configured session from config plus flag
// overrides. Shared by the chat UI and the one-shot commands.
func newSession() (*chat.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	historyDir, err := cfg.ResolveHistoryDir()
	if err != nil {
		return nil, err
	}
	store, err := history.NewStore(historyDir)
	if err != nil {
		return nil, err
	}

	registry := llm.NewRegistryFromConfig(cfg)
	session, err := chat.NewSession(registry, store)
	if err != nil {
		return nil, err
	}
	if err := configureSession(session, cfg); err != nil {
		return nil, err
	}
	return session, nil
}

// configureSession applies the configured provider/model/profile with
// flag overrides. An explicit --provider flag must name a registered
// provider; the config value falls back to the registry's first entry
// when its provider has no API key, so a keyless install still starts
// on the None placeholder rather than failing at launch.
func configureSession(session *chat.Session, cfg *config.Config) error {
	if chatProvider != "" {
		if err := session.SwitchProvider(chatProvider); err != nil {
			return err
		}
	} else if cfg.Provider != "" {
		if err := session.SwitchProvider(cfg.Provider); err != nil {
			var cerr *llm.ConfigError
			if !errors.As(err, &cerr) {
				return err
			}
		}
	}

	model := cfg.Model
	if chatModel != "" {
		model = chatModel
	}
	if model != "" {
		if err := session.SwitchModel(model); err != nil {
			return err
		}
	}

	profile := cfg.Profile
	if chatProfile != "" {
		profile = chatProfile
	}
	if profile != "" {
		session.SetProfile(profile)
	}

	if cfg.Naming.Disabled {
		session.DisableNaming()
	}
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	if chatNew {
		if err := session.NewChat(); err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}
	} else {
		if err := session.LoadMostRecentOrCreate(); err != nil {
			return fmt.Errorf("failed to open conversation: %w", err)
		}
	}
	return tui.Run(session)
}
