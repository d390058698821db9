package services

import (
	"context"
	"strings"

	"github.com/markdave123-py/docsum/internal/core"
)

// AskService forwards a free-form prompt to the LLM.
type AskService struct {
	llm core.LLMProvider
}

func NewAskService(llm core.LLMProvider) *AskService {
	return &AskService{llm: llm}
}

func (s *AskService) Ask(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", core.BadRequest("No prompt provided")
	}
	return s.llm.Generate(ctx, "", prompt)
}
