package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Ledger.Engine != EngineMutex || cfg.Ledger.IDGenerator != "uuid" || cfg.GRPC.Addr != ":50051" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_OverridesAndKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
ledger:
  engine: lmax
  id_generator: sequence
journal:
  path: "-"
grpc:
  addr: ":6000"
  shutdown_timeout: 3s
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Ledger.Engine != EngineLMAX || cfg.Ledger.IDGenerator != "sequence" {
		t.Fatalf("ledger=%+v", cfg.Ledger)
	}
	if cfg.Journal.Path != "-" || cfg.GRPC.Addr != ":6000" || cfg.GRPC.ShutdownTimeout != 3*time.Second {
		t.Fatalf("journal=%+v grpc=%+v", cfg.Journal, cfg.GRPC)
	}
	// 未填寫的欄位沿用預設
	if cfg.HTTP.Addr != ":8080" || cfg.Log.Format != "text" || cfg.Ledger.Buffer != 1000 {
		t.Fatalf("defaults lost: http=%+v log=%+v buffer=%d", cfg.HTTP, cfg.Log, cfg.Ledger.Buffer)
	}
}

func TestLoad_RejectsUnknownEngine(t *testing.T) {
	path := writeConfig(t, "ledger:\n  engine: disruptor\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown engine")
	}
	if !strings.Contains(err.Error(), "ledger.engine") {
		t.Fatalf("expected error to mention ledger.engine, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"snowflake node out of range", "ledger:\n  id_generator: snowflake\n  node_id: 2048\n", "ledger.node_id"},
		{"unknown id generator", "ledger:\n  id_generator: ulid\n", "ledger.id_generator"},
		{"unknown log format", "log:\n  format: xml\n", "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err=%v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_SnowflakeAndRequestTimeout(t *testing.T) {
	cfg, err := Load(writeConfig(t, "ledger:\n  id_generator: snowflake\n  node_id: 12\nhttp:\n  request_timeout: 5s\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ledger.NodeID != 12 || cfg.HTTP.RequestTimeout != 5*time.Second {
		t.Fatalf("ledger=%+v http=%+v", cfg.Ledger, cfg.HTTP)
	}
	if cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("shutdown timeout default lost: %v", cfg.HTTP.ShutdownTimeout)
	}
}
