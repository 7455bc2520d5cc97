// Package conversation builds the per-request conversation context: it
// extracts the user message from the webhook body, normalizes caller-supplied
// history, resolves session/thread identity, and annotates messages with the
// active feature set.
package conversation

import (
	"regexp"
	"strings"
)

var (
	scriptPattern       = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	iframePattern       = regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`)
	jsProtocolPattern   = regexp.MustCompile(`(?i)javascript:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Sanitize strips script and iframe blocks, javascript: protocol references,
// and inline event-handler attributes from message content. It runs on every
// piece of content before it is stored in a conversation context.
func Sanitize(content string) string {
	s := strings.TrimSpace(content)
	s = scriptPattern.ReplaceAllString(s, "")
	s = iframePattern.ReplaceAllString(s, "")
	s = jsProtocolPattern.ReplaceAllString(s, "")
	s = eventHandlerPattern.ReplaceAllString(s, "")
	return s
}
