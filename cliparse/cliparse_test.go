// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("SLUG_SALT", "test-slug")
	t.Setenv("MAX_PREFERENCES", "5")
	t.Setenv("TIE_BREAK_SEED", "42")

	cfg, err := ParseFlags([]string{"-env-file", writeEnvFile(t, "")})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.MaxPreferences != 5 {
		t.Errorf("expected max preferences 5, got %d", cfg.MaxPreferences)
	}
	if cfg.TieBreakSeed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.TieBreakSeed)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-admin-salt", "s1", "-slug-salt", "s2", "-env-file", writeEnvFile(t, "")})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.MaxPreferences != 3 {
		t.Errorf("expected default max preferences 3, got %d", cfg.MaxPreferences)
	}
	if cfg.TieBreakSeed != 0 {
		t.Errorf("expected random seed mode, got %d", cfg.TieBreakSeed)
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "DATABASE_URL=postgres://from-file\nDATABASE_TYPE=postgres\nADMIN_KEY_SALT=file-salt\nSLUG_SALT=file-slug\nPORT=7000\n")

	// Process environment wins over the file
	t.Setenv("PORT", "7100")

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseURL != "postgres://from-file" {
		t.Errorf("expected database URL from file, got %s", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.AdminKeySalt != "file-salt" {
		t.Errorf("expected admin salt from file, got %s", cfg.AdminKeySalt)
	}
	if cfg.Port != 7100 {
		t.Errorf("environment should override env file: expected 7100, got %d", cfg.Port)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	clearEnv(t)
	missingFile := filepath.Join(t.TempDir(), "missing.env")
	empty := writeEnvFile(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{"missing database url", []string{"-admin-salt", "a", "-slug-salt", "b", "-env-file", empty}},
		{"missing admin salt", []string{"-d", "file:x.db", "-slug-salt", "b", "-env-file", empty}},
		{"missing slug salt", []string{"-d", "file:x.db", "-admin-salt", "a", "-env-file", empty}},
		{"unsupported database", []string{"-d", "x", "-t", "mysql", "-admin-salt", "a", "-slug-salt", "b", "-env-file", empty}},
		{"negative max prefs", []string{"-d", "x", "-max-prefs", "-1", "-admin-salt", "a", "-slug-salt", "b", "-env-file", empty}},
		{"explicit env file missing", []string{"-d", "x", "-admin-salt", "a", "-slug-salt", "b", "-env-file", missingFile}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFlags(tt.args); err == nil {
				t.Errorf("expected error for args %v", tt.args)
			}
		})
	}
}

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// clearEnv blanks every variable ParseFlags reads
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "ADMIN_KEY_SALT", "SLUG_SALT", "MAX_PREFERENCES", "TIE_BREAK_SEED"} {
		t.Setenv(key, "")
	}
}
