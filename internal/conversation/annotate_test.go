package conversation

import (
	"testing"
	"time"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestAnnotate_Timestamps(t *testing.T) {
	msgs := []domain.Message{
		{Role: domain.RoleUser, Content: "a"},
		{Role: domain.RoleUser, Content: "b", Timestamp: "2026-01-01T00:00:00Z"},
	}
	out := Annotate(msgs, domain.FeatureSet{domain.FeatureTimestamps}, fixedNow)

	if out[0].Timestamp != "2026-03-15T12:00:00Z" {
		t.Errorf("Timestamp = %q, want filled with now", out[0].Timestamp)
	}
	if out[1].Timestamp != "2026-01-01T00:00:00Z" {
		t.Errorf("Timestamp = %q, existing timestamp must not change", out[1].Timestamp)
	}
}

func TestAnnotate_RenderHints(t *testing.T) {
	msgs := []domain.Message{{Role: domain.RoleUser, Content: "a"}}
	features := domain.FeatureSet{domain.FeatureMarkdown, domain.FeatureCodeHighlight}
	out := Annotate(msgs, features, fixedNow)

	if out[0].Metadata["renderMarkdown"] != true {
		t.Error("renderMarkdown hint missing")
	}
	if out[0].Metadata["highlightCode"] != true {
		t.Error("highlightCode hint missing")
	}
}

func TestAnnotate_Actions(t *testing.T) {
	msgs := []domain.Message{
		{Role: domain.RoleUser, Content: "q"},
		{Role: domain.RoleAssistant, Content: "a"},
	}
	features := domain.FeatureSet{domain.FeatureCopy, domain.FeatureRegenerate}
	out := Annotate(msgs, features, fixedNow)

	if len(out[0].Actions) != 1 || out[0].Actions[0] != "copy" {
		t.Errorf("user actions = %v, want [copy] only", out[0].Actions)
	}
	if len(out[1].Actions) != 2 || out[1].Actions[1] != "regenerate" {
		t.Errorf("assistant actions = %v, want [copy regenerate]", out[1].Actions)
	}
}

func TestAnnotate_NoFeatures(t *testing.T) {
	msgs := []domain.Message{{Role: domain.RoleUser, Content: "a"}}
	out := Annotate(msgs, nil, fixedNow)

	if out[0].Timestamp != "" {
		t.Errorf("Timestamp = %q, want empty without the timestamps feature", out[0].Timestamp)
	}
	if len(out[0].Actions) != 0 {
		t.Errorf("Actions = %v, want none", out[0].Actions)
	}
	if out[0].Metadata == nil {
		t.Error("Metadata should still be initialized")
	}
}
