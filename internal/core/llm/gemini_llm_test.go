package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonStop,
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text("A brief "),
				genai.Blob{MIMEType: "image/png", Data: []byte{1}},
				genai.Text("report."),
			}},
		}},
	}
	got, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "A brief report.", got)
}

func TestResponseTextEmpty(t *testing.T) {
	cases := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		wantErr error
		reason  string
	}{
		{
			name: "stopped without text",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}}},
		},
		{
			name: "no content, unspecified reason",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: nil}}},
		},
		{
			name:    "nil response",
			resp:    nil,
			wantErr: ErrNoText,
		},
		{
			name:    "no candidates",
			resp:    &genai.GenerateContentResponse{},
			wantErr: ErrNoText,
		},
		{
			name: "prompt blocked",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
			},
			wantErr: ErrBlocked,
			reason:  genai.BlockReasonSafety.String(),
		},
		{
			name:    "candidate blocked",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}},
			wantErr: ErrBlocked,
			reason:  genai.FinishReasonSafety.String(),
		},
		{
			name:    "truncated",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens}}},
			wantErr: ErrNoText,
			reason:  genai.FinishReasonMaxTokens.String(),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := responseText(tc.resp)
			assert.Equal(t, "", got)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.reason)
		})
	}
}

func TestNewGeminiLLMRequiresKey(t *testing.T) {
	_, err := NewGeminiLLM(context.Background(), "", "")
	assert.Error(t, err)
}
