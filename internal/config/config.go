// Package config loads the service configuration from a YAML file and
// CHAT_-prefixed environment variables, environment winning.
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Storage   StorageConfig   `koanf:"storage"`
	Triggers  []TriggerConfig `koanf:"triggers"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type TelemetryConfig struct {
	Enabled bool `koanf:"enabled"`
}

type StorageConfig struct {
	Type   string       `koanf:"type"` // sqlite, none
	SQLite SQLiteConfig `koanf:"sqlite"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// TriggerConfig is the on-disk shape of one chat trigger. Zero values mean
// "use the default"; ChatConfig resolves them.
type TriggerConfig struct {
	Path           string      `koanf:"path"`
	Mode           string      `koanf:"mode"`
	Public         bool        `koanf:"public"`
	Authentication string      `koanf:"authentication"`
	Username       string      `koanf:"username"`
	Password       string      `koanf:"password"`
	AllowedOrigins string      `koanf:"allowed_origins"`
	OutputFormat   string      `koanf:"output_format"`
	Features       []string    `koanf:"features"`
	InitialMessage string      `koanf:"initial_message"`
	Files          FilesConfig `koanf:"files"`
	UI             UIConfig    `koanf:"ui"`
}

type FilesConfig struct {
	AllowedTypes string `koanf:"allowed_types"`
	MaxSizeMB    int    `koanf:"max_size_mb"`
	Policy       string `koanf:"policy"`
}

type UIConfig struct {
	Theme            string       `koanf:"theme"`
	Width            string       `koanf:"width"`
	MaxWidth         string       `koanf:"max_width"`
	MinWidth         string       `koanf:"min_width"`
	Height           string       `koanf:"height"`
	MaxHeight        string       `koanf:"max_height"`
	BorderRadius     string       `koanf:"border_radius"`
	BoxShadow        string       `koanf:"box_shadow"`
	BorderStyle      string       `koanf:"border_style"`
	Padding          string       `koanf:"padding"`
	Margin           string       `koanf:"margin"`
	FontFamily       string       `koanf:"font_family"`
	FontSize         string       `koanf:"font_size"`
	LineHeight       string       `koanf:"line_height"`
	CompactMode      bool         `koanf:"compact_mode"`
	EnableAnimations *bool        `koanf:"enable_animations"`
	AnimationSpeed   string       `koanf:"animation_speed"`
	Colors           ColorsConfig `koanf:"colors"`
}

type ColorsConfig struct {
	Primary             string `koanf:"primary"`
	Background          string `koanf:"background"`
	ContainerBackground string `koanf:"container_background"`
	UserMessage         string `koanf:"user_message"`
	AssistantMessage    string `koanf:"assistant_message"`
	Text                string `koanf:"text"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads the configuration file at path (missing file is fine) and
// overlays CHAT_-prefixed environment variables, with "__" separating
// nesting levels.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = "config.yaml"
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("CHAT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "CHAT_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	// Credentials may reference environment variables as ${VAR_NAME}.
	for i := range cfg.Triggers {
		cfg.Triggers[i].Username = substituteEnvVars(cfg.Triggers[i].Username)
		cfg.Triggers[i].Password = substituteEnvVars(cfg.Triggers[i].Password)
	}

	return &cfg, nil
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// ChatConfig resolves the trigger into its runtime form, filling defaults
// for everything the file left unset.
func (t TriggerConfig) ChatConfig() domain.ChatConfig {
	features := make(domain.FeatureSet, 0, len(t.Features))
	for _, f := range t.Features {
		features = append(features, domain.Feature(f))
	}
	if len(features) == 0 {
		features = domain.FeatureSet{
			domain.FeatureMarkdown,
			domain.FeatureCodeHighlight,
			domain.FeatureCopy,
			domain.FeatureTimestamps,
		}
	}

	animations := true
	if t.UI.EnableAnimations != nil {
		animations = *t.UI.EnableAnimations
	}

	return domain.ChatConfig{
		Path:           orDefault(t.Path, domain.DefaultPath),
		Mode:           domain.Mode(orDefault(t.Mode, string(domain.ModeHostedChat))),
		Public:         t.Public,
		Authentication: domain.AuthMode(orDefault(t.Authentication, string(domain.AuthNone))),
		AllowedOrigins: orDefault(t.AllowedOrigins, "*"),
		OutputFormat:   domain.OutputFormat(orDefault(t.OutputFormat, string(domain.OutputAIAgent))),
		Features:       features,
		InitialMessage: orDefault(t.InitialMessage, domain.DefaultInitialMessage),
		Files: domain.FileRules{
			AllowedTypes: t.Files.AllowedTypes,
			MaxSizeMB:    t.Files.MaxSizeMB,
			Policy:       domain.FilePolicy(orDefault(t.Files.Policy, string(domain.FilePolicySkip))),
		},
		Style: domain.Style{
			Theme:                 orDefault(t.UI.Theme, "auto"),
			Width:                 orDefault(t.UI.Width, "100%"),
			MaxWidth:              t.UI.MaxWidth,
			MinWidth:              t.UI.MinWidth,
			Height:                t.UI.Height,
			MaxHeight:             orDefault(t.UI.MaxHeight, "90vh"),
			BorderRadius:          orDefault(t.UI.BorderRadius, "10px"),
			BoxShadow:             orDefault(t.UI.BoxShadow, "0 20px 60px rgba(0,0,0,0.3)"),
			BorderStyle:           orDefault(t.UI.BorderStyle, "none"),
			Padding:               orDefault(t.UI.Padding, "0"),
			Margin:                orDefault(t.UI.Margin, "20px auto"),
			FontFamily:            orDefault(t.UI.FontFamily, "system"),
			FontSize:              orDefault(t.UI.FontSize, "medium"),
			LineHeight:            orDefault(t.UI.LineHeight, "normal"),
			CompactMode:           t.UI.CompactMode,
			EnableAnimations:      animations,
			AnimationSpeed:        orDefault(t.UI.AnimationSpeed, "normal"),
			PrimaryColor:          orDefault(t.UI.Colors.Primary, "#667eea"),
			BackgroundColor:       t.UI.Colors.Background,
			ContainerBackground:   t.UI.Colors.ContainerBackground,
			UserMessageColor:      t.UI.Colors.UserMessage,
			AssistantMessageColor: t.UI.Colors.AssistantMessage,
			TextColor:             t.UI.Colors.Text,
		},
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
