package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T, yamlContent string) {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
	})
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PGUSER", "analyst")
	t.Setenv("PGPASSWORD", "secret")
	t.Setenv("PGDATABASE", "inadimplencia")
	t.Setenv("AI_API_KEY", "test-key")
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	writeTestConfig(t, `
port: "8080"
env: "test"
database:
  host: "db.example.com"
  port: 5432
ai:
  provider: openai
  model: "deepseek-chat"
`)
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("AI_MODEL", "deepseek-reasoner")

	cfg, err := Load("test-version")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected Port=9090 (from env), got %s", cfg.Port)
	}
	if cfg.AI.Model != "deepseek-reasoner" {
		t.Errorf("expected AI model from env, got %s", cfg.AI.Model)
	}
	if cfg.Database.Host != "db.example.com" {
		t.Errorf("expected database host from YAML, got %s", cfg.Database.Host)
	}
	if cfg.Version != "test-version" {
		t.Errorf("expected version to be injected, got %s", cfg.Version)
	}
}

func TestLoad_MissingCredentialsFails(t *testing.T) {
	writeTestConfig(t, `
port: "8080"
database:
  host: "localhost"
`)
	setRequiredEnv(t)
	t.Setenv("PGPASSWORD", "")

	_, err := Load("test")
	if err == nil {
		t.Fatal("expected error for missing PGPASSWORD")
	}
	if !strings.Contains(err.Error(), "PGPASSWORD") {
		t.Errorf("error should name the missing variable, got: %v", err)
	}
}

func TestLoad_UnknownProviderFails(t *testing.T) {
	writeTestConfig(t, `
ai:
  provider: cohere
`)
	setRequiredEnv(t)

	_, err := Load("test")
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "provider") {
		t.Errorf("error should mention the provider, got: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	writeTestConfig(t, "env: local\n")
	setRequiredEnv(t)

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Chat.FactTable != "table_agg_inad_consolidado" {
		t.Errorf("unexpected default fact table: %s", cfg.Chat.FactTable)
	}
	if cfg.Chat.ProjectionTable != "projecao_consolidado" {
		t.Errorf("unexpected default projection table: %s", cfg.Chat.ProjectionTable)
	}
	if cfg.Chat.InsightSampleLimit != 100 {
		t.Errorf("unexpected default sample limit: %d", cfg.Chat.InsightSampleLimit)
	}
	if cfg.Chat.EnforceReadOnly {
		t.Error("read-only enforcement should default to off for verbatim pass-through")
	}
	if cfg.AI.RequestTimeout.Seconds() != 60 {
		t.Errorf("unexpected default request timeout: %v", cfg.AI.RequestTimeout)
	}
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host:     "10.0.0.5",
		Port:     5433,
		User:     "analyst",
		Password: "s3cret",
		Database: "inadimplencia",
		SSLMode:  "require",
	}

	got := db.ConnectionString()
	want := "host=10.0.0.5 port=5433 user=analyst password=s3cret dbname=inadimplencia sslmode=require"
	if got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
