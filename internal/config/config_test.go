package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfig_Explicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	os.WriteFile(path, []byte("log_level: debug\n"), 0600)

	got, err := FindConfig(path)
	if err != nil {
		t.Fatalf("FindConfig(%q) error: %v", path, err)
	}
	if got != path {
		t.Errorf("FindConfig(%q) = %q, want %q", path, got, path)
	}
}

func TestFindConfig_ExplicitMissing(t *testing.T) {
	_, err := FindConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("FindConfig with missing explicit path should error")
	}
}

func TestFindConfig_CWD(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("log_level: info\n"), 0600)

	orig, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(orig)

	got, err := FindConfig("")
	if err != nil {
		t.Fatalf("FindConfig(\"\") error: %v", err)
	}
	if got != "config.yaml" {
		t.Errorf("FindConfig(\"\") = %q, want %q", got, "config.yaml")
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("log_level: debug\n"), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Path != "analytics-server" {
		t.Errorf("server path = %q, want default analytics-server", cfg.Server.Path)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("server:\n  path: ${ANALYTICS_TEST_SERVER}\n"), 0600)
	t.Setenv("ANALYTICS_TEST_SERVER", "/opt/bin/analytics-server")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Path != "/opt/bin/analytics-server" {
		t.Errorf("server path = %q, want expanded value", cfg.Server.Path)
	}
}

func TestAIFromEnv_RequiresAPIKey(t *testing.T) {
	os.Unsetenv("AI_API_KEY")
	if _, err := AIFromEnv(); err == nil {
		t.Fatal("AIFromEnv without AI_API_KEY should error")
	}
}

func TestAIFromEnv_Defaults(t *testing.T) {
	t.Setenv("AI_API_KEY", "test-key")
	os.Unsetenv("AI_ENDPOINT")
	os.Unsetenv("AI_MODEL_NAME")
	os.Unsetenv("AI_DEPLOYMENT_NAME")

	cfg, err := AIFromEnv()
	if err != nil {
		t.Fatalf("AIFromEnv error: %v", err)
	}
	if cfg.Endpoint != "https://ai-project-x.services.ai.azure.com/openai/v1/" {
		t.Errorf("endpoint = %q, want default", cfg.Endpoint)
	}
	if cfg.ModelName != "DeepSeek-V3.1" {
		t.Errorf("model = %q, want DeepSeek-V3.1", cfg.ModelName)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("api key = %q", cfg.APIKey)
	}
}

func TestAIFromEnv_Overrides(t *testing.T) {
	t.Setenv("AI_API_KEY", "k")
	t.Setenv("AI_ENDPOINT", "http://localhost:8080/v1/")
	t.Setenv("AI_MODEL_NAME", "gpt-test")

	cfg, err := AIFromEnv()
	if err != nil {
		t.Fatalf("AIFromEnv error: %v", err)
	}
	if cfg.Endpoint != "http://localhost:8080/v1/" || cfg.ModelName != "gpt-test" {
		t.Errorf("cfg = %+v, want env overrides applied", cfg)
	}
}

func TestChatModel(t *testing.T) {
	ai := &AI{ModelName: "DeepSeek-V3.1", DeploymentName: "prod-deploy"}
	if got := ai.ChatModel(); got != "prod-deploy" {
		t.Errorf("ChatModel with deployment = %q, want prod-deploy", got)
	}

	ai.DeploymentName = ""
	if got := ai.ChatModel(); got != "DeepSeek-V3.1" {
		t.Errorf("ChatModel without deployment = %q, want DeepSeek-V3.1", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"  DEBUG ", slog.LevelDebug, false},
		{"trace", LevelTrace, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
