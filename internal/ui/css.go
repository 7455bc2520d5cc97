package ui

import (
	"fmt"
	"strings"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

// writeStyles emits the full stylesheet for the hosted page: CSS variables
// derived from the configuration, layout rules, and feature-conditional
// blocks.
func writeStyles(b *strings.Builder, cfg domain.ChatConfig) {
	s := cfg.Style
	dark := s.Theme == "dark"

	b.WriteString(":root {\n")
	writeColorVariables(b, s, dark)
	fmt.Fprintf(b, "\t--font-size-base: %s;\n", fontSizeValue(s.FontSize))
	fmt.Fprintf(b, "\t--line-height: %s;\n", lineHeightValue(s.LineHeight))
	fmt.Fprintf(b, "\t--font-family: %s;\n", fontFamilyValue(s.FontFamily))
	b.WriteString("}\n")

	// Auto theme falls back to dark variables when the OS prefers dark,
	// unless an explicit color overrides them.
	if s.Theme == "auto" {
		b.WriteString("@media (prefers-color-scheme: dark) {\n:root {\n")
		writeColorVariables(b, s, true)
		b.WriteString("}\n}\n")
	}

	b.WriteString(`body {
	font-family: var(--font-family);
	margin: 0;
	padding: 20px;
	background: var(--bg-color);
	height: 100vh;
	display: flex;
	justify-content: center;
	align-items: center;
	font-size: var(--font-size-base);
	line-height: var(--line-height);
}
`)

	fmt.Fprintf(b, `.chat-container {
	background: var(--container-bg);
	border-radius: %s;
	box-shadow: %s;
	border: %s;
	padding: %s;
	margin: %s;
	width: %s;
	max-width: %s;
	min-width: %s;
	height: %s;
	max-height: %s;
	display: flex;
	flex-direction: column;
	overflow: hidden;
	color: var(--text-color);
}
`, s.BorderRadius, s.BoxShadow, s.BorderStyle, s.Padding, s.Margin,
		s.Width, orDefault(s.MaxWidth, "none"), orDefault(s.MinWidth, "0"),
		orDefault(s.Height, "auto"), s.MaxHeight)

	writeMessagesCSS(b, s.CompactMode)
	writeInputCSS(b)
	writeButtonCSS(b)
	if cfg.Features.Has(domain.FeatureFileUpload) {
		writeFileUploadCSS(b)
	}
	if cfg.Features.Has(domain.FeatureCopy) || cfg.Features.Has(domain.FeatureRegenerate) || cfg.Features.Has(domain.FeaturePinMessages) {
		writeActionsCSS(b)
	}
	if cfg.Features.Has(domain.FeatureMarkdown) {
		writeMarkdownCSS(b)
	}
	if cfg.Features.Has(domain.FeatureCodeHighlight) {
		writeCodeHighlightCSS(b, dark)
	}
	if cfg.Features.Has(domain.FeatureTimestamps) {
		writeTimestampsCSS(b)
	}
	if s.EnableAnimations {
		writeAnimationCSS(b, s.AnimationSpeed)
	}
	writeResponsiveCSS(b)
}

func writeColorVariables(b *strings.Builder, s domain.Style, dark bool) {
	primary := orDefault(s.PrimaryColor, "#667eea")
	fmt.Fprintf(b, "\t--primary-color: %s;\n", primary)
	fmt.Fprintf(b, "\t--primary-gradient: linear-gradient(135deg, %s 0%%, #764ba2 100%%);\n", primary)
	fmt.Fprintf(b, "\t--bg-color: %s;\n", orDefault(s.BackgroundColor, pick(dark, "#1a1a1a", "#f5f5f5")))
	fmt.Fprintf(b, "\t--container-bg: %s;\n", orDefault(s.ContainerBackground, pick(dark, "#2d2d2d", "white")))
	fmt.Fprintf(b, "\t--text-color: %s;\n", orDefault(s.TextColor, pick(dark, "#e0e0e0", "#333")))
	fmt.Fprintf(b, "\t--user-msg-bg: %s;\n", orDefault(s.UserMessageColor, pick(dark, "#4a5568", "#e3f2fd")))
	fmt.Fprintf(b, "\t--assistant-msg-bg: %s;\n", orDefault(s.AssistantMessageColor, pick(dark, "#553c69", "#f3e5f5")))
	fmt.Fprintf(b, "\t--border-color: %s;\n", pick(dark, "#444", "#e0e0e0"))
}

func fontSizeValue(fontSize string) string {
	switch fontSize {
	case "small":
		return "12px"
	case "large":
		return "16px"
	case "extra-large":
		return "18px"
	default:
		return "14px"
	}
}

func lineHeightValue(lineHeight string) string {
	switch lineHeight {
	case "compact":
		return "1.2"
	case "relaxed":
		return "1.6"
	case "loose":
		return "1.8"
	default:
		return "1.5"
	}
}

func fontFamilyValue(fontFamily string) string {
	switch fontFamily {
	case "sans-serif":
		return "Arial, Helvetica, sans-serif"
	case "serif":
		return `Georgia, "Times New Roman", serif`
	case "monospace":
		return `"Courier New", Consolas, monospace`
	default:
		return `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif`
	}
}

func writeMessagesCSS(b *strings.Builder, compact bool) {
	spacing := "16px"
	padding := "12px 16px"
	if compact {
		spacing = "8px"
		padding = "8px 12px"
	}
	fmt.Fprintf(b, `.messages {
	flex: 1;
	overflow-y: auto;
	padding: 20px;
	display: flex;
	flex-direction: column;
	gap: %s;
}
.message {
	padding: %s;
	border-radius: 12px;
	margin-bottom: %s;
	word-wrap: break-word;
	position: relative;
}
.message.user {
	background: var(--user-msg-bg);
	align-self: flex-end;
	max-width: 80%%;
}
.message.assistant {
	background: var(--assistant-msg-bg);
	align-self: flex-start;
	max-width: 85%%;
}
.message.system {
	background: var(--border-color);
	align-self: center;
	font-style: italic;
	opacity: 0.8;
	max-width: 90%%;
}
`, spacing, padding, spacing)
}

func writeInputCSS(b *strings.Builder) {
	b.WriteString(`.input-container {
	display: flex;
	padding: 20px;
	gap: 12px;
	border-top: 1px solid var(--border-color);
	align-items: flex-end;
}
.message-input {
	flex: 1;
	padding: 12px 16px;
	border: 2px solid var(--border-color);
	border-radius: 25px;
	font-size: var(--font-size-base);
	background: var(--container-bg);
	color: var(--text-color);
}
.message-input:focus {
	outline: none;
	border-color: var(--primary-color);
}
`)
}

func writeButtonCSS(b *strings.Builder) {
	b.WriteString(`.send-button {
	background: var(--primary-gradient);
	color: white;
	border: none;
	border-radius: 50%;
	width: 48px;
	height: 48px;
	cursor: pointer;
	display: flex;
	align-items: center;
	justify-content: center;
	font-weight: 600;
}
.send-button:disabled {
	opacity: 0.5;
	cursor: not-allowed;
}
`)
}

func writeFileUploadCSS(b *strings.Builder) {
	b.WriteString(`.file-upload-container {
	position: relative;
	display: flex;
	align-items: center;
}
.file-upload-input {
	display: none;
}
.file-upload-button {
	background: none;
	border: none;
	cursor: pointer;
	padding: 8px;
	border-radius: 50%;
	color: var(--text-color);
}
.file-upload-button:hover {
	background-color: var(--border-color);
}
.file-indicator {
	position: absolute;
	top: -8px;
	right: -8px;
	background: var(--primary-color);
	color: white;
	border-radius: 50%;
	width: 20px;
	height: 20px;
	display: none;
	align-items: center;
	justify-content: center;
	font-size: 12px;
	font-weight: bold;
}
.file-indicator.show {
	display: flex;
}
`)
}

func writeActionsCSS(b *strings.Builder) {
	b.WriteString(`.message-actions {
	position: absolute;
	top: 8px;
	right: 8px;
	display: none;
	gap: 4px;
}
.message:hover .message-actions {
	display: flex;
}
.action-btn {
	background: rgba(0, 0, 0, 0.1);
	border: none;
	border-radius: 4px;
	padding: 4px 8px;
	cursor: pointer;
	font-size: 12px;
	color: var(--text-color);
}
.action-btn:hover {
	background: rgba(0, 0, 0, 0.2);
}
`)
}

func writeMarkdownCSS(b *strings.Builder) {
	b.WriteString(`.markdown h1, .markdown h2, .markdown h3 {
	margin: 0.5em 0;
}
.markdown p {
	margin: 0.5em 0;
}
.markdown ul, .markdown ol {
	padding-left: 1.5em;
}
.markdown blockquote {
	border-left: 4px solid var(--primary-color);
	padding-left: 1em;
	margin: 1em 0;
	opacity: 0.8;
}
`)
}

func writeCodeHighlightCSS(b *strings.Builder, dark bool) {
	fmt.Fprintf(b, `.markdown pre {
	background: %s;
	padding: 1em;
	border-radius: 8px;
	overflow-x: auto;
	margin: 1em 0;
}
.markdown code {
	background: %s;
	padding: 2px 4px;
	border-radius: 4px;
	font-family: 'Courier New', monospace;
}
.markdown pre code {
	background: none;
	padding: 0;
}
`, pick(dark, "#1e1e1e", "#f8f8f8"), pick(dark, "#2d2d2d", "#f0f0f0"))
}

func writeTimestampsCSS(b *strings.Builder) {
	b.WriteString(`.message-timestamp {
	font-size: 11px;
	opacity: 0.6;
	margin-top: 4px;
}
`)
}

func writeAnimationCSS(b *strings.Builder, speed string) {
	duration := "0.3s"
	switch speed {
	case "fast":
		duration = "0.15s"
	case "slow":
		duration = "0.5s"
	}
	fmt.Fprintf(b, `.message {
	animation: fadeIn %s ease-out;
}
.send-button:hover {
	transform: scale(1.05);
	transition: transform %s ease;
}
@keyframes fadeIn {
	from { opacity: 0; transform: translateY(10px); }
	to { opacity: 1; transform: translateY(0); }
}
`, duration, duration)
}

func writeResponsiveCSS(b *strings.Builder) {
	b.WriteString(`@media (max-width: 768px) {
	body {
		padding: 0;
	}
	.chat-container {
		width: 100%;
		height: 100vh;
		border-radius: 0;
		margin: 0;
	}
	.messages {
		padding: 16px;
	}
	.input-container {
		padding: 16px;
	}
}
`)
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func pick(cond bool, whenTrue, whenFalse string) string {
	if cond {
		return whenTrue
	}
	return whenFalse
}
