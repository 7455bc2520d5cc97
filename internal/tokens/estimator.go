// Package tokens estimates conversation size for the agent-facing context
// block of the detailed output envelope.
package tokens

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"

	"github.com/jezweb/better-chat-trigger/internal/domain"
)

// perMessageOverhead approximates the structural tokens chat models charge
// per message (role markers plus separators).
const perMessageOverhead = 4

// Estimator counts conversation tokens with the cl100k_base encoding. When
// the tokenizer cannot be loaded it falls back to a bytes/4 heuristic, so an
// estimate is always produced.
type Estimator struct {
	once  sync.Once
	codec tokenizer.Codec
	err   error
}

// NewEstimator creates a lazy estimator; the tokenizer loads on first use.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Count returns the estimated token count for the full message list.
func (e *Estimator) Count(messages []domain.Message) int {
	e.once.Do(func() {
		e.codec, e.err = tokenizer.Get(tokenizer.Cl100kBase)
	})

	total := 0
	for _, m := range messages {
		total += perMessageOverhead
		if e.err != nil {
			total += len(m.Content) / 4
			continue
		}
		ids, _, err := e.codec.Encode(m.Content)
		if err != nil {
			total += len(m.Content) / 4
			continue
		}
		total += len(ids)
	}
	return total
}
