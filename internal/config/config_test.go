package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileWithDefaults(t *testing.T) {
	path := writeConfig(t, "spreadsheet_id: sheet-123\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SpreadsheetID != "sheet-123" {
		t.Fatalf("spreadsheet id: %q", cfg.SpreadsheetID)
	}
	if cfg.Addr != ":8080" || cfg.CaseTable != "case_log" || cfg.StatusTable != "status_log" || cfg.ConfigTable != "config" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if time.Duration(cfg.CacheTTL) != 120*time.Second {
		t.Fatalf("default cache ttl: %v", cfg.CacheTTL)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "spreadsheet_id: from-file\ncache_ttl: 120s\n")
	t.Setenv("CASELEDGER_SPREADSHEET_ID", "from-env")
	t.Setenv("CASELEDGER_CACHE_TTL", "600s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SpreadsheetID != "from-env" {
		t.Fatalf("env must override file, got %q", cfg.SpreadsheetID)
	}
	if time.Duration(cfg.CacheTTL) != 600*time.Second {
		t.Fatalf("cache ttl override: %v", cfg.CacheTTL)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("CASELEDGER_SPREADSHEET_ID", "sheet-env")
	t.Setenv("CASELEDGER_WEBHOOK_URL", "https://relay.example/notify")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SpreadsheetID != "sheet-env" {
		t.Fatalf("spreadsheet id: %q", cfg.SpreadsheetID)
	}
	if cfg.Webhook.URL != "https://relay.example/notify" {
		t.Fatalf("nested webhook env override: %+v", cfg.Webhook)
	}
}

func TestLoad_MissingSpreadsheetID(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error when spreadsheet_id is unset")
	}
}

func TestLoad_BadFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file path")
	}
	bad := writeConfig(t, "spreadsheet_id: [unclosed\n")
	if _, err := Load(bad); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
