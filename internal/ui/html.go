// Package ui renders the hosted chat interface. Render is a pure function
// from a trigger configuration to an HTML document; nothing here touches
// server state.
package ui

import (
	"strings"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

const (
	markedCDN        = "https://cdnjs.cloudflare.com/ajax/libs/marked/4.3.0/marked.min.js"
	prismCoreCDN     = "https://cdnjs.cloudflare.com/ajax/libs/prism/1.29.0/components/prism-core.min.js"
	prismLoaderCDN   = "https://cdnjs.cloudflare.com/ajax/libs/prism/1.29.0/plugins/autoloader/prism-autoloader.min.js"
	prismThemeCSSCDN = "https://cdnjs.cloudflare.com/ajax/libs/prism/1.29.0/themes/prism-tomorrow.min.css"
)

// Render generates the complete hosted chat page for one configuration.
// The output is deterministic: the same configuration always produces the
// same document.
func Render(cfg domain.ChatConfig) string {
	var b strings.Builder
	b.Grow(16 * 1024)

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("\t<title>Chat</title>\n")
	b.WriteString("\t<meta charset=\"UTF-8\">\n")
	b.WriteString("\t<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	if cfg.Features.Has(domain.FeatureCodeHighlight) {
		b.WriteString("\t<link href=\"" + prismThemeCSSCDN + "\" rel=\"stylesheet\" />\n")
	}
	b.WriteString("\t<style>\n")
	writeStyles(&b, cfg)
	b.WriteString("\t</style>\n</head>\n<body>\n")

	b.WriteString("\t<div class=\"chat-container\">\n")
	b.WriteString("\t\t<div id=\"messages\" class=\"messages\"></div>\n")
	b.WriteString("\t\t<div class=\"input-container\">\n")
	if cfg.Features.Has(domain.FeatureFileUpload) {
		writeFileUploadHTML(&b, cfg.Files.AllowedTypes)
	}
	b.WriteString("\t\t\t<input type=\"text\" id=\"messageInput\" placeholder=\"Type your message...\" class=\"message-input\" />\n")
	b.WriteString("\t\t\t<button id=\"sendButton\" class=\"send-button\">Send</button>\n")
	b.WriteString("\t\t</div>\n\t</div>\n")

	if cfg.Features.Has(domain.FeatureMarkdown) {
		b.WriteString("\t<script src=\"" + markedCDN + "\"></script>\n")
	}
	if cfg.Features.Has(domain.FeatureCodeHighlight) {
		b.WriteString("\t<script src=\"" + prismCoreCDN + "\"></script>\n")
		b.WriteString("\t<script src=\"" + prismLoaderCDN + "\"></script>\n")
	}

	b.WriteString("\t<script>\n")
	writeClientScript(&b, cfg)
	b.WriteString("\t</script>\n</body>\n</html>\n")

	return b.String()
}

func writeFileUploadHTML(b *strings.Builder, allowedTypes string) {
	accept := strings.TrimSpace(allowedTypes)
	if accept == "" {
		accept = "*"
	}
	b.WriteString("\t\t\t<div class=\"file-upload-container\">\n")
	b.WriteString("\t\t\t\t<input type=\"file\" id=\"fileInput\" class=\"file-upload-input\" accept=\"" + accept + "\" multiple />\n")
	b.WriteString("\t\t\t\t<button type=\"button\" id=\"fileButton\" class=\"file-upload-button\" title=\"Attach file\">&#128206;</button>\n")
	b.WriteString("\t\t\t\t<div id=\"fileIndicator\" class=\"file-indicator\"></div>\n")
	b.WriteString("\t\t\t</div>\n")
}
