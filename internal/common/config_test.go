package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.Database.DSN != "billsnap.db" {
		t.Errorf("DSN = %q, want the sqlite default", cfg.Database.DSN)
	}
	if cfg.Server.HTTPAddr != ":8080" || cfg.Server.GRPCAddr != ":8081" {
		t.Errorf("server addrs = %q/%q, want defaults", cfg.Server.HTTPAddr, cfg.Server.GRPCAddr)
	}
	if cfg.Parser.DefaultCurrency != "CNY" {
		t.Errorf("DefaultCurrency = %q, want CNY", cfg.Parser.DefaultCurrency)
	}
	if cfg.Parser.HistoryWindow != 300 {
		t.Errorf("HistoryWindow = %d, want 300", cfg.Parser.HistoryWindow)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/billsnap")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LEDGER_API_TIMEOUT", "5s")
	t.Setenv("HISTORY_WINDOW", "50")

	cfg := LoadConfig()
	if cfg.Database.DSN != "postgres://localhost/billsnap" {
		t.Errorf("DSN = %q", cfg.Database.DSN)
	}
	if cfg.Server.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q", cfg.Server.HTTPAddr)
	}
	if cfg.Ledger.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Ledger.Timeout)
	}
	if cfg.Parser.HistoryWindow != 50 {
		t.Errorf("HistoryWindow = %d", cfg.Parser.HistoryWindow)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := LoadConfig()
	cfg.Parser.HistoryWindow = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero history window accepted")
	}
	cfg = LoadConfig()
	cfg.Database.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty DSN accepted")
	}
}
