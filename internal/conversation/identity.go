package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSessionID generates a fresh session identifier of the form
// session_<12 hex chars>_<unix millis>. Generation is a fallback only;
// caller-supplied identifiers always win.
func NewSessionID() string {
	return newID("session")
}

// NewThreadID generates a fresh thread identifier, same shape as session IDs.
func NewThreadID() string {
	return newID("thread")
}

func newID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%s_%s_%d", prefix, suffix, time.Now().UnixMilli())
}
