package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/markdave123-py/docsum/internal/core"
	"github.com/markdave123-py/docsum/internal/models"
)

// multipartMemory is how much of an upload is buffered in memory before the
// rest spills to a temp file.
const multipartMemory = 8 << 20

type Ingestor interface {
	Ingest(ctx context.Context, file models.UploadedFile) (*models.IngestResult, error)
}

type DocumentStore interface {
	List(ctx context.Context) ([]models.DocumentListItem, error)
	Get(ctx context.Context, id int64) (*models.Document, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int, error)
}

type DocumentHandler struct {
	ingestor  Ingestor
	documents DocumentStore
	maxUpload int64
	logger    *slog.Logger
}

func NewDocumentHandler(ing Ingestor, documents DocumentStore, maxUpload int64, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{ingestor: ing, documents: documents, maxUpload: maxUpload, logger: logger}
}

type summarizeResponse struct {
	Message string `json:"message"`
	*models.IngestResult
}

// Summarize handles POST /summarize: a multipart upload under the "file" field.
func (h *DocumentHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var sizeErr *http.MaxBytesError
		if errors.As(err, &sizeErr) {
			writeError(w, r, h.logger, err)
			return
		}
		writeError(w, r, h.logger, core.BadRequest("No file part"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A file input submitted with nothing chosen arrives as a plain field.
		if _, present := r.MultipartForm.Value["file"]; present {
			writeError(w, r, h.logger, core.BadRequest("No file selected"))
			return
		}
		writeError(w, r, h.logger, core.BadRequest("No file part"))
		return
	}
	defer file.Close()

	res, err := h.ingestor.Ingest(r.Context(), models.UploadedFile{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{
		Message:      "File uploaded, summarized, and stored successfully",
		IngestResult: res,
	})
}

func (h *DocumentHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	items, err := h.documents.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *DocumentHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	doc, err := h.documents.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, ok := h.documentID(w, r)
	if !ok {
		return
	}
	if err := h.documents.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: fmt.Sprintf("Document %d deleted successfully", id)})
}

func (h *DocumentHandler) DeleteAllFiles(w http.ResponseWriter, r *http.Request) {
	if _, err := h.documents.DeleteAll(r.Context()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "All documents deleted successfully"})
}

func (h *DocumentHandler) documentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, h.logger, core.BadRequest("Invalid document id"))
		return 0, false
	}
	return id, true
}
