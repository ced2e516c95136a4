package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"todolist/internal/config"
)

func writeEnvFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.EnvFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", config.EnvFile, err)
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Setenv(config.KeyURL, "")
	t.Setenv(config.KeyToken, "")
	t.Setenv(config.KeyDateLayout, "")
	t.Setenv(config.KeyLogLevel, "")

	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != config.DefaultBaseURL {
		t.Errorf("expected default url, got %q", cfg.BaseURL)
	}
	if cfg.DateLayout != config.DefaultDateLayout {
		t.Errorf("expected default date layout, got %q", cfg.DateLayout)
	}
	if cfg.LogLevel != config.DefaultLogLevel {
		t.Errorf("expected default log level, got %q", cfg.LogLevel)
	}
	if cfg.Token != "" {
		t.Errorf("expected no token, got %q", cfg.Token)
	}
}

func TestNew_EnvFile(t *testing.T) {
	t.Setenv(config.KeyURL, "")
	t.Setenv(config.KeyToken, "")
	t.Setenv(config.KeyDateLayout, "")
	t.Setenv(config.KeyLogLevel, "")

	dir := t.TempDir()
	writeEnvFile(t, dir, "TODOLIST_URL=http://localhost:9000\nTODOLIST_TOKEN=secret\nTODOLIST_DATE_LAYOUT=2006-01-02\nLOG_LEVEL=DEBUG\n")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9000" {
		t.Errorf("expected url from file, got %q", cfg.BaseURL)
	}
	if cfg.Token != "secret" {
		t.Errorf("expected token from file, got %q", cfg.Token)
	}
	if cfg.DateLayout != "2006-01-02" {
		t.Errorf("expected date layout from file, got %q", cfg.DateLayout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected lowercased log level, got %q", cfg.LogLevel)
	}
}

func TestNew_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv(config.KeyURL, "http://env.example:8080")
	t.Setenv(config.KeyToken, "")
	t.Setenv(config.KeyDateLayout, "")
	t.Setenv(config.KeyLogLevel, "")

	dir := t.TempDir()
	writeEnvFile(t, dir, "TODOLIST_URL=http://file.example\n")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://env.example:8080" {
		t.Errorf("expected env url to win, got %q", cfg.BaseURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.mockapi.io", false},
		{"http://localhost:8080/api/", false},
		{"", true},
		{"ftp://example.com", true},
		{"not a url", true},
		{"http://", true},
	}
	for _, tt := range tests {
		cfg := &config.Config{BaseURL: tt.url}
		err := cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q): got err %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestCollectionURL(t *testing.T) {
	cfg := &config.Config{BaseURL: "http://localhost:8080/api/"}
	if got := cfg.CollectionURL(); got != "http://localhost:8080/api/todolist" {
		t.Errorf("unexpected collection url: %q", got)
	}
}
