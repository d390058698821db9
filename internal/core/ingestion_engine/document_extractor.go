package ingestion_engine

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"

	"github.com/markdave123-py/docsum/internal/core"
)

const (
	extPDF  = ".pdf"
	extDOCX = ".docx"
	extTXT  = ".txt"
)

var _ core.DocumentExtractor = (*FileExtractor)(nil)

func NewFileExtractor(logger *slog.Logger) *FileExtractor {
	return &FileExtractor{logger: logger}
}

// kindOf matches the suffix case-sensitively: "REPORT.PDF" is not a pdf.
func kindOf(filename string) (string, bool) {
	for _, ext := range []string{extPDF, extDOCX, extTXT} {
		if strings.HasSuffix(filename, ext) {
			return ext, true
		}
	}
	return "", false
}

func (e *FileExtractor) Supports(filename string) bool {
	_, ok := kindOf(filename)
	return ok
}

// Extract dispatches on the filename suffix. NUL bytes are dropped from the
// result since Postgres text columns reject them.
func (e *FileExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	kind, ok := kindOf(filename)
	if !ok {
		return "", fmt.Errorf("%s: %w", filename, core.ErrUnsupportedType)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch kind {
	case extPDF:
		text, err = e.extractPDF(ctx, data)
	case extDOCX:
		text, err = extractDOCX(data)
	case extTXT:
		text, err = extractTXT(data)
	}
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(text, "\x00", ""), nil
}

// extractPDF emits one line-terminated block per page. The pdf package panics
// on some malformed input, so the whole walk runs under recover.
func (e *FileExtractor) extractPDF(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf: %v: %w", r, core.ErrExtractionFailed)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w: %w", core.ErrExtractionFailed, err)
	}

	var b strings.Builder
	pages := r.NumPage()
	for n := 1; n <= pages; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b.WriteString(e.pageText(r, n))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// pageText never fails: a page without extractable text contributes "".
func (e *FileExtractor) pageText(r *pdf.Reader, n int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Warn("pdf page unreadable", "page", n, "error", fmt.Sprint(rec))
			text = ""
		}
	}()

	p := r.Page(n)
	if p.V.IsNull() || p.V.Key("Contents").IsNull() {
		return ""
	}
	t, err := p.GetPlainText(nil)
	if err != nil {
		e.logger.Warn("pdf page has no extractable text", "page", n, "error", err)
		return ""
	}
	// GetPlainText opens every text object (BT) with a line break.
	return strings.TrimPrefix(t, "\n")
}

// extractDOCX emits one line per body paragraph of the main document part.
// Headers, footers, tables and text boxes are not part of the body flow.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w: %w", core.ErrExtractionFailed, err)
	}

	part, err := docxMainPart(zr)
	if err != nil {
		return "", fmt.Errorf("read docx: %w: %w", core.ErrExtractionFailed, err)
	}
	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w: %w", part.Name, core.ErrExtractionFailed, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w: %w", part.Name, core.ErrExtractionFailed, err)
	}

	text, err := docconv.XMLToText(bytes.NewReader(runTab.ReplaceAll(raw, []byte("\t"))), docxBreaks, docxSkip, true)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w: %w", part.Name, core.ErrExtractionFailed, err)
	}
	if text == "" {
		return "", nil
	}
	// Every paragraph opens with a break; shift it to the paragraph's end.
	return strings.TrimPrefix(text, "\n") + "\n", nil
}

const (
	docxMainContentType  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	docxMacroContentType = "application/vnd.ms-word.document.macroEnabled.main+xml"
	docxDefaultMainPart  = "word/document.xml"
)

var (
	// A run-level tab carries no attributes; tab stops in w:tabs always do.
	runTab = regexp.MustCompile(`<w:tab\s*/>`)

	docxBreaks = []string{"p", "br", "cr"}
	docxSkip   = []string{"tbl", "txbxContent", "instrText", "delText"}
)

type contentTypes struct {
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// docxMainPart locates the main document part through [Content_Types].xml,
// falling back to the conventional word/document.xml.
func docxMainPart(zr *zip.Reader) (*zip.File, error) {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	name := docxDefaultMainPart
	if ct, ok := files["[Content_Types].xml"]; ok {
		rc, err := ct.Open()
		if err != nil {
			return nil, err
		}
		var types contentTypes
		err = xml.NewDecoder(rc).Decode(&types)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("content types: %w", err)
		}
		for _, o := range types.Overrides {
			if o.ContentType == docxMainContentType || o.ContentType == docxMacroContentType {
				name = strings.TrimPrefix(o.PartName, "/")
				break
			}
		}
	}

	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("main document part %s missing", name)
	}
	return f, nil
}

func extractTXT(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("text file is not valid UTF-8: %w", core.ErrDecode)
	}
	return string(data), nil
}
