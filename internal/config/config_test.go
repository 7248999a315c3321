package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("CHATTERM_TEST_KEY", "sk-12345")

	tests := []struct {
		in   string
		want string
	}{
		{"${CHATTERM_TEST_KEY}", "sk-12345"},
		{"$CHATTERM_TEST_KEY", "sk-12345"},
		{"literal-value", "literal-value"},
		{"", ""},
		{"${CHATTERM_TEST_UNSET}", ""},
	}

	for _, tc := range tests {
		if got := expandEnv(tc.in); got != tc.want {
			t.Errorf("expandEnv(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResolveHistoryDirExplicit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mine")
	cfg := &Config{HistoryDir: dir}

	got, err := cfg.ResolveHistoryDir()
	if err != nil {
		t.Fatalf("ResolveHistoryDir: %v", err)
	}
	if got != dir {
		t.Fatalf("dir=%q, want %q", got, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestResolveHistoryDirXDG(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg := &Config{}
	got, err := cfg.ResolveHistoryDir()
	if err != nil {
		t.Fatalf("ResolveHistoryDir: %v", err)
	}
	want := filepath.Join(dataHome, "chatterm", "history")
	if got != want {
		t.Fatalf("dir=%q, want %q", got, want)
	}
}
