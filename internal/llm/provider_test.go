package llm

import (
	"errors"
	"testing"
)

func TestExtractOAIDelta(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{name: "content delta", data: `{"choices":[{"delta":{"content":"Hi"}}]}`, want: "Hi"},
		{name: "role-only delta", data: `{"choices":[{"delta":{"role":"assistant"}}]}`, want: ""},
		{name: "no choices", data: `{"id":"x"}`, want: ""},
		{name: "malformed", data: `{broken`, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractOAIDelta([]byte(tc.data))
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("text=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractAnthropicDelta(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "content_block_delta", data: `{"type":"content_block_delta","delta":{"type":"text_delta","text":"Hi"}}`, want: "Hi"},
		{name: "ping", data: `{"type":"ping"}`, want: ""},
		{name: "message_start", data: `{"type":"message_start","message":{"id":"m1"}}`, want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extractAnthropicDelta([]byte(tc.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("text=%q, want %q", got, tc.want)
			}
		})
	}
}

func TestRegistryResolve(t *testing.T) {
	fireworks := NewFireworksProvider("key")
	gpt := NewOpenAIProvider("key")
	registry := NewRegistry(fireworks, gpt, NewNoneProvider())

	tests := []struct {
		name    string
		model   string
		want    string
		wantErr bool
	}{
		{name: "fireworks catalog", model: FireworksModelPrefix + "llama-v3p1-70b-instruct", want: "Fireworks"},
		{name: "openai catalog", model: "gpt-4o", want: "GPT"},
		{name: "custom fireworks model routed by prefix", model: FireworksModelPrefix + "my-finetune", want: "Fireworks"},
		{name: "unknown model", model: "made-up-9000", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := registry.Resolve(tc.model)
			if tc.wantErr {
				var cerr *ConfigError
				if !errors.As(err, &cerr) {
					t.Fatalf("error=%v, want ConfigError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tc.want {
				t.Fatalf("provider=%q, want %q", p.Name(), tc.want)
			}
		})
	}
}

func TestRegistryByName(t *testing.T) {
	registry := NewRegistry(NewNoneProvider())
	if _, err := registry.ByName("None"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := registry.ByName("Nope"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestProfileParams(t *testing.T) {
	coder := ProfileParams(ProfileCoder)
	if coder.Temperature != 0.4 {
		t.Fatalf("coder temperature=%v", coder.Temperature)
	}
	// Unknown profiles fall back to normal.
	if ProfileParams("bogus") != ProfileParams(ProfileNormal) {
		t.Fatal("unknown profile did not fall back to normal")
	}
}
