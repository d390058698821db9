package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/markdave123-py/docsum/internal/core"
)

const maxAskBody = 1 << 20

type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type AskHandler struct {
	asker  Asker
	logger *slog.Logger
}

func NewAskHandler(asker Asker, logger *slog.Logger) *AskHandler {
	return &AskHandler{asker: asker, logger: logger}
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

type askResponse struct {
	Response string `json:"response"`
}

func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAskBody)).Decode(&req); err != nil {
		writeError(w, r, h.logger, core.BadRequest("Invalid JSON body"))
		return
	}

	answer, err := h.asker.Ask(r.Context(), req.Prompt)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, askResponse{Response: answer})
}
