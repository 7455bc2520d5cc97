package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if len(cfg.Triggers) != 0 {
		t.Errorf("Triggers = %d, want 0", len(cfg.Triggers))
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
storage:
  type: sqlite
  sqlite:
    path: /tmp/test.db
triggers:
  - path: support
    mode: webhookOnly
    output_format: detailed
    features: [markdown, copy]
    files:
      allowed_types: ".pdf,image"
      max_size_mb: 5
      policy: strict
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Type != "sqlite" || cfg.Storage.SQLite.Path != "/tmp/test.db" {
		t.Errorf("Storage = %+v", cfg.Storage)
	}
	if len(cfg.Triggers) != 1 {
		t.Fatalf("Triggers = %d, want 1", len(cfg.Triggers))
	}

	cc := cfg.Triggers[0].ChatConfig()
	if cc.Path != "support" {
		t.Errorf("Path = %q", cc.Path)
	}
	if cc.Mode != domain.ModeWebhookOnly {
		t.Errorf("Mode = %q", cc.Mode)
	}
	if cc.OutputFormat != domain.OutputDetailed {
		t.Errorf("OutputFormat = %q", cc.OutputFormat)
	}
	if len(cc.Features) != 2 || cc.Features[0] != domain.FeatureMarkdown {
		t.Errorf("Features = %v", cc.Features)
	}
	if cc.Files.Policy != domain.FilePolicyStrict || cc.Files.MaxSizeMB != 5 {
		t.Errorf("Files = %+v", cc.Files)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CHAT_SERVER__PORT", "3000")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000 from environment", cfg.Server.Port)
	}
}

func TestLoad_CredentialSubstitution(t *testing.T) {
	t.Setenv("CHAT_ADMIN_PASS", "s3cret")
	path := writeConfig(t, `
triggers:
  - path: chat
    authentication: basicAuth
    username: admin
    password: ${CHAT_ADMIN_PASS}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Triggers[0].Password != "s3cret" {
		t.Errorf("Password = %q, want substituted value", cfg.Triggers[0].Password)
	}
}

func TestChatConfig_Defaults(t *testing.T) {
	cc := TriggerConfig{}.ChatConfig()

	if cc.Path != "chat" {
		t.Errorf("Path = %q, want chat", cc.Path)
	}
	if cc.Mode != domain.ModeHostedChat {
		t.Errorf("Mode = %q, want hostedChat", cc.Mode)
	}
	if cc.Authentication != domain.AuthNone {
		t.Errorf("Authentication = %q, want none", cc.Authentication)
	}
	if cc.AllowedOrigins != "*" {
		t.Errorf("AllowedOrigins = %q, want *", cc.AllowedOrigins)
	}
	if cc.OutputFormat != domain.OutputAIAgent {
		t.Errorf("OutputFormat = %q, want aiAgent", cc.OutputFormat)
	}
	if len(cc.Features) != 4 {
		t.Errorf("Features = %v, want the four defaults", cc.Features)
	}
	if cc.InitialMessage != domain.DefaultInitialMessage {
		t.Errorf("InitialMessage = %q", cc.InitialMessage)
	}
	if cc.Files.Policy != domain.FilePolicySkip {
		t.Errorf("Policy = %q, want skip", cc.Files.Policy)
	}
	if cc.Style.Theme != "auto" || cc.Style.MaxHeight != "90vh" || !cc.Style.EnableAnimations {
		t.Errorf("Style defaults wrong: %+v", cc.Style)
	}
}

func TestChatConfig_AnimationsExplicitlyDisabled(t *testing.T) {
	off := false
	cc := TriggerConfig{UI: UIConfig{EnableAnimations: &off}}.ChatConfig()
	if cc.Style.EnableAnimations {
		t.Error("EnableAnimations = true, want explicitly disabled")
	}
}
