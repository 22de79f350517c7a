package config

import (
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "MENU_FILE", "TERMS_FILE", "MATCH_THRESHOLD", "ALLOWED_ORIGINS", "MAX_MESSAGE_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Port: got %q, want 8081", cfg.Port)
	}
	if cfg.MenuFile != "" || cfg.TermsFile != "" {
		t.Errorf("files: got %q %q, want empty", cfg.MenuFile, cfg.TermsFile)
	}
	if cfg.MatchThreshold != 50 {
		t.Errorf("MatchThreshold: got %d, want 50", cfg.MatchThreshold)
	}
	if cfg.MaxMessageBytes != 65536 {
		t.Errorf("MaxMessageBytes: got %d, want 65536", cfg.MaxMessageBytes)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"http://localhost:5173"}) {
		t.Errorf("AllowedOrigins: got %v", cfg.AllowedOrigins)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MENU_FILE", "menu.yaml")
	t.Setenv("MATCH_THRESHOLD", "70")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MAX_MESSAGE_BYTES", "1024")

	cfg := Load()

	if cfg.Port != "9000" || cfg.MenuFile != "menu.yaml" {
		t.Errorf("got %+v", cfg)
	}
	if cfg.MatchThreshold != 70 {
		t.Errorf("MatchThreshold: got %d, want 70", cfg.MatchThreshold)
	}
	if cfg.MaxMessageBytes != 1024 {
		t.Errorf("MaxMessageBytes: got %d, want 1024", cfg.MaxMessageBytes)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins: got %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoad_BadNumberFallsBack(t *testing.T) {
	t.Setenv("MATCH_THRESHOLD", "high")

	if got := Load().MatchThreshold; got != 50 {
		t.Errorf("MatchThreshold: got %d, want 50", got)
	}
}
