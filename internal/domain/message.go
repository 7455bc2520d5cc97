// Package domain defines the types shared across the chat trigger:
// conversation messages, attachments, trigger configuration, and the
// canonical error taxonomy.
package domain

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single conversation entry. Ordering within a conversation is
// insertion order. Content is sanitized before a Message is ever stored in a
// ConversationContext.
type Message struct {
	Role      Role           `json:"role"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Actions   []string       `json:"actions,omitempty"`
}

// ConversationContext is the per-request conversation state. It is rebuilt
// from the request body on every call; the server holds no cross-request
// memory.
type ConversationContext struct {
	SessionID   string
	ThreadID    string
	Messages    []Message
	Attachments []BinaryAttachment
}
