package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jezweb/better-chat-trigger/internal/auth"
	"github.com/jezweb/better-chat-trigger/internal/codec"
	"github.com/jezweb/better-chat-trigger/internal/conversation"
	"github.com/jezweb/better-chat-trigger/internal/domain"
	"github.com/jezweb/better-chat-trigger/internal/output"
	"github.com/jezweb/better-chat-trigger/internal/storage"
	"github.com/jezweb/better-chat-trigger/internal/ui"
)

// maxBodyBytes caps a webhook body; attachments ride inside it as base64.
const maxBodyBytes = 25 << 20

// Dispatcher serves one trigger: interface fetch, CORS preflight, and
// message ingestion. It holds no per-request state; everything is rebuilt
// from each request.
type Dispatcher struct {
	cfg       domain.ChatConfig
	gate      *auth.Gate
	decoder   *codec.Decoder
	assembler *conversation.Assembler
	formatter *output.Formatter
	store     storage.InvocationStore
	logger    *slog.Logger
}

// NewDispatcher wires the pipeline for one trigger configuration.
func NewDispatcher(cfg domain.ChatConfig, creds auth.CredentialSource, store storage.InvocationStore, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if store == nil {
		store = storage.Noop{}
	}
	decoderOpts := []codec.Option{codec.WithAllowedTypes(cfg.Files.AllowedTypes)}
	if cfg.Files.MaxSizeMB > 0 {
		decoderOpts = append(decoderOpts, codec.WithMaxSize(int64(cfg.Files.MaxSizeMB)<<20))
	}
	return &Dispatcher{
		cfg:       cfg,
		gate:      auth.NewGate(cfg.Authentication, creds),
		decoder:   codec.NewDecoder(logger, decoderOpts...),
		assembler: conversation.NewAssembler(cfg.Features, logger),
		formatter: output.NewFormatter(cfg),
		store:     store,
		logger:    logger,
	}
}

// Handle is the single entry point for the trigger's path.
func (d *Dispatcher) Handle(w http.ResponseWriter, r *http.Request) {
	corsValue, originRejected := auth.ResolveOrigin(d.cfg.AllowedOrigins, r.Header.Get("Origin"))
	writeCORSHeaders(w, corsValue)

	switch r.Method {
	case http.MethodOptions:
		// Preflight bypasses the gate entirely.
		w.WriteHeader(http.StatusOK)

	case http.MethodGet:
		if d.cfg.Mode != domain.ModeHostedChat {
			d.writeError(w, r, domain.ErrUnsupportedMethod())
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, ui.Render(d.cfg))

	case http.MethodPost:
		if originRejected {
			d.writeError(w, r, domain.ErrOriginRejected(r.Header.Get("Origin")))
			return
		}
		d.handleMessage(w, r)

	default:
		d.writeError(w, r, domain.ErrUnsupportedMethod())
	}
}

func (d *Dispatcher) handleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	// The gate decides before any assembly work starts; the credential
	// lookup inside it may suspend.
	if err := d.gate.Check(ctx, r.Header); err != nil {
		d.writeError(w, r, err)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		AddError(ctx, err)
		raw = nil
	}

	asm := d.assembler.Assemble(raw)
	AddLogField(ctx, "session_id", asm.Context.SessionID)

	files := codec.ExtractAttachments(asm.Body)
	var attachments []domain.BinaryAttachment
	for _, res := range d.decoder.DecodeAll(files) {
		if res.Err != nil {
			if d.cfg.Files.Policy == domain.FilePolicyStrict {
				d.writeError(w, r, res.Err)
				d.record(ctx, asm, len(attachments), http.StatusBadRequest, start)
				return
			}
			d.logger.Warn("skipping attachment",
				slog.String("name", res.Name),
				slog.String("error", res.Err.Error()),
			)
			continue
		}
		attachments = append(attachments, res.Attachment)
	}
	asm.Context.Attachments = attachments

	envelope := d.formatter.Envelope(asm, output.RequestInfo{
		Headers: r.Header,
		Query:   r.URL.Query(),
		ChatURL: d.chatURL(r),
	})

	response := map[string]any{"json": envelope}
	if len(attachments) > 0 {
		response["binary"] = output.BinarySidecar(attachments)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		AddError(ctx, err)
	}
	d.record(ctx, asm, len(attachments), http.StatusOK, start)
}

// chatURL reconstructs the hosted page URL from the request, empty outside
// hosted mode.
func (d *Dispatcher) chatURL(r *http.Request) string {
	if d.cfg.Mode != domain.ModeHostedChat {
		return ""
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}

func (d *Dispatcher) writeError(w http.ResponseWriter, r *http.Request, err error) {
	AddError(r.Context(), err)
	status := http.StatusInternalServerError
	if te, ok := err.(*domain.TriggerError); ok {
		status = te.HTTPStatusCode()
		if te.Type == domain.ErrorTypeAuthRequired {
			w.Header().Set("WWW-Authenticate", `Basic realm="chat"`)
		}
	}
	body := "Method not allowed"
	switch status {
	case http.StatusUnauthorized:
		body = "Authorization required"
	case http.StatusForbidden:
		body = "Forbidden"
	case http.StatusBadRequest:
		body = err.Error()
	}
	http.Error(w, body, status)
}

func (d *Dispatcher) record(ctx context.Context, asm *conversation.Assembly, attachmentCount, status int, start time.Time) {
	inv := &storage.Invocation{
		ID:              GetRequestID(ctx),
		TriggerPath:     d.cfg.Path,
		SessionID:       asm.Context.SessionID,
		ThreadID:        asm.Context.ThreadID,
		MessageCount:    len(asm.Context.Messages),
		AttachmentCount: attachmentCount,
		Status:          status,
		Duration:        time.Since(start),
		CreatedAt:       time.Now().UTC(),
	}
	if err := d.store.RecordInvocation(ctx, inv); err != nil {
		d.logger.Warn("recording invocation failed", slog.String("error", err.Error()))
	}
}

func writeCORSHeaders(w http.ResponseWriter, allowOrigin string) {
	if allowOrigin != "" {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
	}
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
}
