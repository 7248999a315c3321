package cmd

import (
	"errors"
	"testing"

	"github.com/ddxfish/chatterm/internal/chat"
	"github.com/ddxfish/chatterm/internal/config"
	"github.com/ddxfish/chatterm/internal/history"
	"github.com/ddxfish/chatterm/internal/llm"
)

func newSessionForConfig(t *testing.T, cfg *config.Config) (*chat.Session, error) {
	t.Helper()
	store, err := history.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	session, err := chat.NewSession(llm.NewRegistryFromConfig(cfg), store)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session, configureSession(session, cfg)
}

func TestKeylessInstallStartsOnNonePlaceholder(t *testing.T) {
	// No API keys, so only the None placeholder is registered; the
	// default configured provider must not abort startup.
	cfg := &config.Config{Provider: "Fireworks", Profile: "normal"}

	session, err := newSessionForConfig(t, cfg)
	if err != nil {
		t.Fatalf("configureSession: %v", err)
	}
	if got := session.ActiveProvider().Name(); got != "None" {
		t.Fatalf("active provider=%q, want None placeholder", got)
	}
}

func TestConfiguredProviderUsedWhenRegistered(t *testing.T) {
	cfg := &config.Config{
		Provider:  "GPT",
		Fireworks: config.ProviderConfig{APIKey: "fw-key"},
		OpenAI:    config.ProviderConfig{APIKey: "oai-key"},
	}

	session, err := newSessionForConfig(t, cfg)
	if err != nil {
		t.Fatalf("configureSession: %v", err)
	}
	if got := session.ActiveProvider().Name(); got != "GPT" {
		t.Fatalf("active provider=%q, want GPT", got)
	}
}

func TestExplicitProviderFlagMustResolve(t *testing.T) {
	chatProvider = "Fireworks"
	defer func() { chatProvider = "" }()

	_, err := newSessionForConfig(t, &config.Config{})
	var cerr *llm.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("error=%v, want ConfigError for unregistered --provider", err)
	}
}
