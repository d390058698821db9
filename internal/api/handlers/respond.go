package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/markdave123-py/docsum/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto a status code and a client-safe message. Server
// side failures are logged with the request id; the cause is not echoed.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func statusFor(err error) (int, string) {
	var (
		reqErr  *core.RequestError
		sizeErr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &sizeErr):
		return http.StatusRequestEntityTooLarge, "File too large"
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, reqErr.Msg
	case errors.Is(err, core.ErrUnsupportedType):
		return http.StatusBadRequest, "Unsupported file type"
	case errors.Is(err, core.ErrDecode):
		return http.StatusBadRequest, "File is not valid UTF-8 text"
	case errors.Is(err, core.ErrBadRequest):
		return http.StatusBadRequest, "Bad request"
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, "File not found"
	case errors.Is(err, core.ErrExtractionFailed):
		return http.StatusUnprocessableEntity, "Could not extract text from file"
	case errors.Is(err, core.ErrTimeout):
		return http.StatusGatewayTimeout, "Language model did not respond in time"
	case errors.Is(err, core.ErrSummarizationFailed):
		return http.StatusInternalServerError, "Summarization failed"
	case errors.Is(err, core.ErrStorage):
		return http.StatusInternalServerError, "Storage failure"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
