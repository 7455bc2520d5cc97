package conversation

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

// messageAliases is the resolution order for the primary user message field.
// The first present, non-empty string wins. The ordering is part of the
// webhook contract, not an implementation accident.
var messageAliases = []string{"message", "text", "content", "chatInput"}

// Assembly is the result of one assembler run: the conversation context plus
// what the output formatter needs alongside it.
type Assembly struct {
	Context     *domain.ConversationContext
	UserMessage string
	// PriorCount is the number of caller-supplied history messages, before
	// the new user message was appended.
	PriorCount int
	// Body is the decoded request body, nil when the body was not a JSON
	// object.
	Body map[string]any
}

// Assembler merges caller-supplied history with the incoming message and
// annotates the result. It never fails: malformed input degrades to
// defaults, never to an error.
type Assembler struct {
	features domain.FeatureSet
	logger   *slog.Logger
	now      func() time.Time
}

// NewAssembler builds an assembler for one trigger's feature set.
func NewAssembler(features domain.FeatureSet, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{features: features, logger: logger, now: time.Now}
}

// Assemble parses the raw request body and builds the conversation context.
// Bodies that are not JSON objects are treated as the message text itself.
func (a *Assembler) Assemble(raw []byte) *Assembly {
	body, rawText := decodeBody(raw)

	userMessage := extractUserMessage(body, rawText)

	sessionID := stringField(body, "session_id", "sessionId")
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	threadID := stringField(body, "thread_id", "threadId")
	if threadID == "" {
		threadID = NewThreadID()
	}

	messages := a.normalizePrior(body)
	priorCount := len(messages)

	if userMessage != "" {
		messages = append(messages, domain.Message{
			Role:    domain.RoleUser,
			Content: userMessage,
			Metadata: map[string]any{
				"session_id": sessionID,
				"thread_id":  threadID,
				"source":     "webhook",
			},
		})
	}

	messages = Annotate(messages, a.features, a.now)

	return &Assembly{
		Context: &domain.ConversationContext{
			SessionID: sessionID,
			ThreadID:  threadID,
			Messages:  messages,
		},
		UserMessage: userMessage,
		PriorCount:  priorCount,
		Body:        body,
	}
}

// decodeBody returns the body as a JSON object when possible. Anything else
// comes back as raw text so it can serve as the message itself.
func decodeBody(raw []byte) (map[string]any, string) {
	if len(raw) == 0 {
		return nil, ""
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err == nil {
		return body, ""
	}
	return nil, string(raw)
}

// extractUserMessage resolves the primary message through the alias order
// and sanitizes it. Returns empty when nothing usable is present.
func extractUserMessage(body map[string]any, rawText string) string {
	if body == nil {
		return Sanitize(rawText)
	}
	for _, alias := range messageAliases {
		if s, ok := body[alias].(string); ok && s != "" {
			return Sanitize(s)
		}
	}
	return ""
}

// normalizePrior converts the caller-supplied messages array. Missing roles
// default to user, content is sanitized, timestamps default to now, and
// metadata passes through. Garbage entries are dropped.
func (a *Assembler) normalizePrior(body map[string]any) []domain.Message {
	if body == nil {
		return nil
	}
	list, ok := body["messages"].([]any)
	if !ok {
		return nil
	}
	out := make([]domain.Message, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			a.logger.Debug("dropping non-object history entry")
			continue
		}
		msg := domain.Message{
			Role:      domain.RoleUser,
			Timestamp: a.now().UTC().Format(time.RFC3339),
			Metadata:  map[string]any{},
		}
		if r, ok := m["role"].(string); ok && r != "" {
			msg.Role = domain.Role(r)
		}
		content := stringField(m, "content", "message")
		msg.Content = Sanitize(content)
		if ts, ok := m["timestamp"].(string); ok && ts != "" {
			msg.Timestamp = ts
		}
		if md, ok := m["metadata"].(map[string]any); ok {
			msg.Metadata = md
		}
		out = append(out, msg)
	}
	return out
}

// stringField returns the first alias present as a non-empty string.
func stringField(m map[string]any, aliases ...string) string {
	if m == nil {
		return ""
	}
	for _, k := range aliases {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
