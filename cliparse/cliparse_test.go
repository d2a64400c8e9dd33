// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("AI_PROVIDER", "mock")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.AITimeout != 30*time.Second {
		t.Errorf("expected default AI timeout 30s, got %s", cfg.AITimeout)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8081", "-d", "file:test.db", "-ai-provider", "mock"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8081 {
		t.Errorf("CLI should override env: expected 8081, got %d", cfg.Port)
	}
}

func TestParseFlags_LongAndShortFlagsMatch(t *testing.T) {
	os.Clearenv()

	long, err := ParseFlags([]string{
		"--port", "8081",
		"--database-url", "file:test.db",
		"--database-type", "sqlite",
		"--ai-provider", "mock",
	})
	if err != nil {
		t.Fatal(err)
	}

	short, err := ParseFlags([]string{
		"-p", "8081",
		"-d", "file:test.db",
		"-t", "sqlite",
		"-ai-provider", "mock",
	})
	if err != nil {
		t.Fatal(err)
	}

	if long != short {
		t.Errorf("long and short flags should produce the same config:\nlong:  %+v\nshort: %+v", long, short)
	}
	if long.Port != 8081 || long.DatabaseURL != "file:test.db" || long.DatabaseType != "sqlite" {
		t.Errorf("unexpected config from long flags: %+v", long)
	}
}

func TestParseFlags_RequiresDatabaseURL(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-ai-provider", "mock"})
	if err == nil {
		t.Fatal("expected error when DATABASE_URL is missing")
	}
}

func TestParseFlags_HTTPProviderRequiresURL(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "file:test.db", "-ai-provider", "http"})
	if err == nil {
		t.Fatal("expected error when AI_SERVICE_URL is missing for http provider")
	}

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-ai-provider", "http", "-ai-url", "http://localhost:5000/api/gemini/geminiai"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AIServiceURL == "" {
		t.Error("expected AI service URL to be set")
	}
}

func TestParseFlags_ProviderCredentials(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{"-d", "file:test.db", "-ai-provider", "gemini"}); err == nil {
		t.Error("expected error when GEMINI_API_KEY is missing")
	}

	os.Setenv("GEMINI_API_KEY", "test-key")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-ai-provider", "gemini"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("expected gemini key from env, got %q", cfg.GeminiAPIKey)
	}
}

func TestParseFlags_UnknownProvider(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{"-d", "file:test.db", "-ai-provider", "oracle"}); err == nil {
		t.Error("expected error for unknown AI provider")
	}
}
