package ingestion_engine

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/docsum/internal/core"
	"github.com/markdave123-py/docsum/internal/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// buildPDF writes a minimal PDF with one page per entry. An empty entry
// produces a page without a content stream.
func buildPDF(pages ...string) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
	}
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		page := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >>"
		if text != "" {
			page += fmt.Sprintf(" /Contents %d 0 R", 5+2*i)
		}
		objs = append(objs, page+" >>")
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

// buildDOCX writes a minimal WordprocessingML package with one plain run
// per paragraph.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	return buildDOCXParts(t, body.String(), nil)
}

const (
	wordNS           = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`
	headerContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
)

// buildDOCXParts writes a package whose main part has the given w:body
// content. headers maps part names under word/ to header paragraph XML.
func buildDOCXParts(t *testing.T, bodyXML string, headers map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}

	var overrides strings.Builder
	overrides.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	for name := range headers {
		overrides.WriteString(`<Override PartName="/word/` + name + `" ContentType="` + headerContentType + `"/>`)
	}
	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
		`<Default Extension="xml" ContentType="application/xml"/>`+
		overrides.String()+
		`</Types>`)

	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<w:document `+wordNS+`><w:body>`+bodyXML+`</w:body></w:document>`)

	for name, content := range headers {
		write("word/"+name, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
			`<w:hdr `+wordNS+`>`+content+`</w:hdr>`)
	}

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// fakeDB is an in-memory core.DbClient.
type fakeDB struct {
	mu        sync.Mutex
	nextID    int64
	docs      map[int64]models.Document
	insertErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{docs: make(map[int64]models.Document)}
}

func (f *fakeDB) InsertDocument(_ context.Context, doc *models.Document) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.nextID++
	doc.ID = f.nextID
	doc.UploadedAt = time.Now()
	f.docs[doc.ID] = *doc
	return doc.ID, nil
}

func (f *fakeDB) GetDocumentByID(_ context.Context, id int64) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDB) ListDocuments(context.Context) ([]models.DocumentListItem, error) {
	return nil, nil
}

func (f *fakeDB) DeleteDocument(context.Context, int64) (string, error) {
	return "", core.ErrNotFound
}

func (f *fakeDB) DeleteAllDocuments(context.Context) ([]string, error) {
	return nil, nil
}

func (f *fakeDB) Ping(context.Context) error { return nil }

func (f *fakeDB) Close() error { return nil }

func (f *fakeDB) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs)
}

type llmFunc func(ctx context.Context, system, user string) (string, error)

func (f llmFunc) Generate(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

func staticLLM(out string) llmFunc {
	return func(context.Context, string, string) (string, error) { return out, nil }
}

// stubExtractor returns a canned text for any supported filename.
type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Supports(filename string) bool {
	_, ok := kindOf(filename)
	return ok
}

func (s stubExtractor) Extract(context.Context, string, []byte) (string, error) {
	return s.text, s.err
}
