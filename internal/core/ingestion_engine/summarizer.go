package ingestion_engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/markdave123-py/docsum/internal/core"
)

const (
	SummaryPrompt   = "Summarize this document:\n\n"
	SummaryFallback = "Summary not available"
)

// Summarizer wraps the LLM with the fixed summary prompt. Deadlines are the
// provider's concern (see llm.Bounded); errors are never retried here.
type Summarizer struct {
	llm core.LLMProvider
}

func NewSummarizer(llm core.LLMProvider) *Summarizer {
	return &Summarizer{llm: llm}
}

// Summarize always yields a non-empty summary or an error.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	out, err := s.llm.Generate(ctx, "", SummaryPrompt+text)
	if err != nil {
		if errors.Is(err, core.ErrTimeout) {
			return "", fmt.Errorf("summarize: %w", err)
		}
		return "", fmt.Errorf("%w: %w", core.ErrSummarizationFailed, err)
	}
	if strings.TrimSpace(out) == "" {
		return SummaryFallback, nil
	}
	return out, nil
}
