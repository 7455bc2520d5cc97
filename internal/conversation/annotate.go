package conversation

import (
	"time"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

// Annotate applies the active feature set to every message, in order:
// timestamps ensures a timestamp is present, markdown and codeHighlight set
// render hints, copy adds a "copy" action to every message, and regenerate
// adds a "regenerate" action to assistant messages only.
func Annotate(messages []domain.Message, features domain.FeatureSet, now func() time.Time) []domain.Message {
	if now == nil {
		now = time.Now
	}
	for i := range messages {
		m := &messages[i]
		if features.Has(domain.FeatureTimestamps) && m.Timestamp == "" {
			m.Timestamp = now().UTC().Format(time.RFC3339)
		}
		if m.Metadata == nil {
			m.Metadata = map[string]any{}
		}
		if features.Has(domain.FeatureMarkdown) {
			m.Metadata["renderMarkdown"] = true
		}
		if features.Has(domain.FeatureCodeHighlight) {
			m.Metadata["highlightCode"] = true
		}
		if features.Has(domain.FeatureCopy) {
			m.Actions = append(m.Actions, "copy")
		}
		if features.Has(domain.FeatureRegenerate) && m.Role == domain.RoleAssistant {
			m.Actions = append(m.Actions, "regenerate")
		}
	}
	return messages
}
