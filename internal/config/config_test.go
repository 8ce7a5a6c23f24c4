package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	return path
}

func TestLoadEnvFile(t *testing.T) {
	path := writeEnv(t, `
# comment
BOT_TOKEN="123:abc"
DB_NAME = runplan
BROKEN_LINE
REPORTS_DIR='/tmp/reports'
`)

	env, err := loadEnvFile(path)
	if err != nil {
		t.Fatalf("loadEnvFile() error = %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"BOT_TOKEN", "123:abc"},
		{"DB_NAME", "runplan"},
		{"REPORTS_DIR", "/tmp/reports"},
	}
	for _, tt := range tests {
		if got := env[tt.key]; got != tt.want {
			t.Errorf("env[%s] = %q, want %q", tt.key, got, tt.want)
		}
	}
	if _, ok := env["BROKEN_LINE"]; ok {
		t.Error("line without '=' must be skipped")
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("INBOX_DIR", "")
	t.Setenv("REVALIDATE_SCHEDULE", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, want localhost", cfg.DBHost)
	}
	if cfg.RevalidateSchedule != "@daily" {
		t.Errorf("RevalidateSchedule = %q, want @daily", cfg.RevalidateSchedule)
	}
	if err := cfg.RequireBotToken(); err == nil {
		t.Error("RequireBotToken() = nil, want error for empty token")
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeEnv(t, "BOT_TOKEN=from-file\nDB_PORT=6543\n")
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("DB_PORT", "")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.BotToken != "from-env" {
		t.Errorf("BotToken = %q, want from-env", cfg.BotToken)
	}
	if cfg.DBPort != "6543" {
		t.Errorf("DBPort = %q, want 6543", cfg.DBPort)
	}
	if err := cfg.RequireBotToken(); err != nil {
		t.Errorf("RequireBotToken() = %v", err)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "runplan"}
	want := "host=db port=5432 user=u password=p dbname=runplan sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
