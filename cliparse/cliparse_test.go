// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	os.Setenv("DATABASE_URL", "ballotd.db")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("ELECTION_START", "2026-03-14T08:00:00Z")
	os.Setenv("ELECTION_END", "2026-03-14T10:00:00Z")
	os.Setenv("SMTP_HOST", "smtp.example.edu")
	os.Setenv("SMTP_USER", "committee@example.edu")
}

func TestParseFlags_EnvVars(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.MailFrom != "committee@example.edu" {
		t.Errorf("expected MailFrom to fall back to SMTP_USER, got %s", cfg.MailFrom)
	}
	if !cfg.ElectionStart.Before(cfg.ElectionEnd) {
		t.Error("expected parsed window with start before end")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-jwt-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "file:test.db" {
		t.Errorf("CLI should override env: got %s", cfg.DatabaseURL)
	}
	if cfg.JWTSecret != "s1" {
		t.Errorf("CLI should override env: got %s", cfg.JWTSecret)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing database url", "DATABASE_URL"},
		{"missing jwt secret", "JWT_SECRET"},
		{"missing election start", "ELECTION_START"},
		{"missing election end", "ELECTION_END"},
		{"missing smtp host", "SMTP_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			defer os.Clearenv()
			os.Unsetenv(tt.unset)

			if _, err := ParseFlags([]string{}); err == nil {
				t.Errorf("expected error with %s unset", tt.unset)
			}
		})
	}
}

func TestParseFlags_InvalidWindow(t *testing.T) {
	setRequiredEnv(t)
	defer os.Clearenv()

	// Malformed timestamp
	os.Setenv("ELECTION_START", "March 14, 2026")
	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error for malformed ELECTION_START")
	}

	// Start after end
	os.Setenv("ELECTION_START", "2026-03-14T11:00:00Z")
	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when start is after end")
	}
}

func TestParseFlags_BadDatabaseType(t *testing.T) {
	setRequiredEnv(t)
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-t", "mysql"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
