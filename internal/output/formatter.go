package output

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jezweb/better-chat-trigger/internal/codec"
	"github.com/jezweb/better-chat-trigger/internal/conversation"
	"github.com/jezweb/better-chat-trigger/internal/domain"
	"github.com/jezweb/better-chat-trigger/internal/tokens"
)

// RequestInfo carries the pieces of the HTTP request the formatter needs.
type RequestInfo struct {
	Headers http.Header
	Query   url.Values
	// ChatURL is the hosted page URL, empty outside hosted mode.
	ChatURL string
}

// Formatter shapes an assembled conversation into the configured envelope.
type Formatter struct {
	cfg       domain.ChatConfig
	estimator *tokens.Estimator
	now       func() time.Time
}

// NewFormatter builds a formatter for one trigger configuration.
func NewFormatter(cfg domain.ChatConfig) *Formatter {
	f := &Formatter{cfg: cfg, now: time.Now}
	if cfg.OutputFormat == domain.OutputDetailed {
		f.estimator = tokens.NewEstimator()
	}
	return f
}

// Envelope builds the JSON envelope for the assembled conversation, with
// every string value brace-escaped. Attachment bytes never appear here; they
// live on the binary side-channel only.
func (f *Formatter) Envelope(asm *conversation.Assembly, req RequestInfo) map[string]any {
	ctx := asm.Context
	nowStamp := f.now().UTC().Format(time.RFC3339)

	env := map[string]any{
		"chatInput":    asm.UserMessage,
		"sessionId":    ctx.SessionID,
		"threadId":     ctx.ThreadID,
		"messages":     messagesToMaps(ctx.Messages),
		"messageCount": len(ctx.Messages),
		"timestamp":    nowStamp,
	}

	if len(ctx.Attachments) > 0 {
		names := make([]string, len(ctx.Attachments))
		keys := make([]string, len(ctx.Attachments))
		for i, a := range ctx.Attachments {
			names[i] = a.Name
			keys[i] = a.Key
		}
		env["hasFiles"] = true
		env["fileCount"] = len(ctx.Attachments)
		env["fileNames"] = names
		env["binaryPropertyNames"] = keys
	}

	if f.cfg.Mode == domain.ModeHostedChat && req.ChatURL != "" {
		env["chatUrl"] = req.ChatURL
		env["_chatAccess"] = "Open chat: " + req.ChatURL
	}

	if f.cfg.OutputFormat == domain.OutputDetailed {
		f.addDetail(env, asm, req, nowStamp)
	}

	return EscapeBraces(env).(map[string]any)
}

func (f *Formatter) addDetail(env map[string]any, asm *conversation.Assembly, req RequestInfo, nowStamp string) {
	cfg := f.cfg
	env["userMessage"] = asm.UserMessage
	env["chatMode"] = string(cfg.Mode)
	env["publicAvailable"] = cfg.Public
	env["authentication"] = string(cfg.Authentication)
	env["allowedOrigins"] = cfg.AllowedOrigins
	env["initialMessage"] = cfg.InitialMessage
	env["features"] = cfg.Features.Names()
	env["theme"] = cfg.Style.Theme
	env["compactMode"] = cfg.Style.CompactMode
	env["maxHeight"] = cfg.Style.MaxHeight

	env["context"] = map[string]any{
		"conversation_length": asm.PriorCount,
		"last_interaction":    nowStamp,
		"user_agent":          req.Headers.Get("User-Agent"),
		"ip_address":          clientIP(req.Headers),
		"token_estimate":      f.estimator.Count(asm.Context.Messages),
	}

	env["raw"] = map[string]any{
		"headers": headerMap(req.Headers),
		"query":   queryMap(req.Query),
		"body":    codec.StripPayloads(asm.Body),
	}
}

// BinarySidecar builds the data0..dataN side-channel object. Payloads travel
// base64-encoded on the wire; fileSize reports the decoded length.
func BinarySidecar(attachments []domain.BinaryAttachment) map[string]any {
	out := make(map[string]any, len(attachments))
	for _, a := range attachments {
		out[a.Key] = map[string]any{
			"data":     base64.StdEncoding.EncodeToString(a.Data),
			"fileName": a.Name,
			"mimeType": a.MimeType,
			"fileSize": len(a.Data),
		}
	}
	return out
}

func messagesToMaps(messages []domain.Message) []any {
	out := make([]any, len(messages))
	for i, m := range messages {
		entry := map[string]any{
			"role":    string(m.Role),
			"content": m.Content,
		}
		if m.Timestamp != "" {
			entry["timestamp"] = m.Timestamp
		}
		if len(m.Metadata) > 0 {
			entry["metadata"] = m.Metadata
		}
		if len(m.Actions) > 0 {
			entry["actions"] = m.Actions
		}
		out[i] = entry
	}
	return out
}

// clientIP resolves the caller address from proxy headers, first hop wins.
func clientIP(h http.Header) string {
	if fwd := h.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.Index(fwd, ","); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	return h.Get("X-Real-Ip")
}

func headerMap(h http.Header) map[string]any {
	out := make(map[string]any, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[strings.ToLower(k)] = v[0]
		}
	}
	return out
}

func queryMap(q url.Values) map[string]any {
	out := make(map[string]any, len(q))
	for k, v := range q {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
