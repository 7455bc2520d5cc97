// Package codec decodes webhook file attachments into the binary
// side-channel format consumed by downstream workflow steps.
package codec

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

// Decoder validates and decodes uploaded attachments. Every attachment is
// processed independently; one bad file never aborts its siblings.
type Decoder struct {
	allowedTypes []string
	maxSize      int64
	logger       *slog.Logger
}

// Option configures the decoder.
type Option func(*Decoder)

// WithAllowedTypes restricts attachments to a comma-separated list of
// extensions or MIME type fragments. "*" or empty allows everything.
func WithAllowedTypes(list string) Option {
	return func(d *Decoder) {
		list = strings.TrimSpace(list)
		if list == "" || list == "*" {
			d.allowedTypes = nil
			return
		}
		for _, entry := range strings.Split(list, ",") {
			entry = strings.ToLower(strings.TrimSpace(entry))
			if entry != "" {
				d.allowedTypes = append(d.allowedTypes, entry)
			}
		}
	}
}

// WithMaxSize caps the decoded size of a single attachment in bytes.
// Zero disables the check.
func WithMaxSize(maxBytes int64) Option {
	return func(d *Decoder) {
		d.maxSize = maxBytes
	}
}

// NewDecoder creates an attachment decoder.
func NewDecoder(logger *slog.Logger, opts ...Option) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Decoder{logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DecodeResult is the per-attachment outcome. Err is nil on success, and the
// Attachment is only populated on success.
type DecodeResult struct {
	Name       string
	Attachment domain.BinaryAttachment
	Err        error
}

// BinaryKey returns the side-channel key for the i-th emitted attachment.
func BinaryKey(i int) string {
	return fmt.Sprintf("data%d", i)
}

// DecodeAll processes each attachment independently. Successful attachments
// are keyed data0, data1, ... in emission order; failures carry their error
// in the result and do not consume a key.
func (d *Decoder) DecodeAll(files []domain.Attachment) []DecodeResult {
	results := make([]DecodeResult, 0, len(files))
	emitted := 0
	for _, f := range files {
		data, err := d.decode(f)
		if err != nil {
			results = append(results, DecodeResult{Name: f.Name, Err: err})
			continue
		}
		results = append(results, DecodeResult{
			Name: f.Name,
			Attachment: domain.BinaryAttachment{
				Key:       BinaryKey(emitted),
				Name:      f.Name,
				MimeType:  f.MimeType,
				SizeBytes: int64(len(data)),
				Data:      data,
			},
		})
		emitted++
	}
	return results
}

func (d *Decoder) decode(f domain.Attachment) ([]byte, error) {
	payload := f.Payload
	if payload == "" {
		return nil, domain.ErrAttachmentInvalid(f.Name, "missing payload")
	}

	// The page uploads pure base64, but data URLs still arrive from older
	// clients; strip the prefix when present.
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx == -1 {
			return nil, domain.ErrAttachmentInvalid(f.Name, "invalid data URL: missing comma separator")
		}
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Tolerate unpadded input before giving up.
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, domain.ErrAttachmentInvalid(f.Name, "payload is not valid base64")
		}
	}

	if err := d.validate(f, int64(len(data))); err != nil {
		return nil, err
	}
	return data, nil
}

func (d *Decoder) validate(f domain.Attachment, size int64) error {
	if len(d.allowedTypes) > 0 && !typeAllowed(f.Name, f.MimeType, d.allowedTypes) {
		return domain.ErrAttachmentInvalid(f.Name, fmt.Sprintf("type %q is not allowed", f.MimeType))
	}
	if d.maxSize > 0 && size > d.maxSize {
		return domain.ErrAttachmentInvalid(f.Name, fmt.Sprintf("size %d exceeds maximum %d bytes", size, d.maxSize))
	}
	return nil
}

// typeAllowed matches either the file extension (".pdf" or "pdf" entries)
// or a fragment of the MIME type ("image" matches "image/png").
func typeAllowed(name, mimeType string, allowed []string) bool {
	ext := ""
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		ext = strings.ToLower(name[idx+1:])
	}
	mime := strings.ToLower(mimeType)
	for _, entry := range allowed {
		if ext != "" && (entry == "."+ext || entry == ext) {
			return true
		}
		fragment := strings.Trim(entry, ".*")
		if fragment != "" && strings.Contains(mime, fragment) {
			return true
		}
	}
	return false
}

// ExtractAttachments pulls the files array out of a decoded webhook body.
// Entries that are not objects are ignored.
func ExtractAttachments(body map[string]any) []domain.Attachment {
	if body == nil {
		return nil
	}
	list, ok := body["files"].([]any)
	if !ok {
		return nil
	}
	out := make([]domain.Attachment, 0, len(list))
	for i, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		a := domain.Attachment{
			Name:     fmt.Sprintf("file_%d", i),
			MimeType: "application/octet-stream",
		}
		if s, ok := m["name"].(string); ok && s != "" {
			a.Name = s
		}
		if s, ok := m["type"].(string); ok && s != "" {
			a.MimeType = s
		}
		if n, ok := m["size"].(float64); ok {
			a.SizeBytes = int64(n)
		}
		if s, ok := m["data"].(string); ok {
			a.Payload = s
		}
		out = append(out, a)
	}
	return out
}

// StripPayloads returns a copy of the body with attachment payloads replaced
// by metadata-only entries, so the raw body can be echoed in a response
// without carrying file bytes.
func StripPayloads(body map[string]any) map[string]any {
	if body == nil {
		return nil
	}
	clean := make(map[string]any, len(body))
	for k, v := range body {
		clean[k] = v
	}
	list, ok := body["files"].([]any)
	if !ok {
		return clean
	}
	stripped := make([]any, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		stripped = append(stripped, map[string]any{
			"name": m["name"],
			"type": m["type"],
			"size": m["size"],
		})
	}
	clean["files"] = stripped
	return clean
}
