package document

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeDOCX(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for _, entry := range []struct{ name, body string }{
		{"[Content_Types].xml", `<?xml version="1.0"?><Types/>`},
		{"_rels/.rels", `<?xml version="1.0"?><Relationships/>`},
		{"word/document.xml", `<?xml version="1.0"?><w:document/>`},
	} {
		w, err := zw.Create(entry.name)
		require.NoError(t, err)
		_, err = io.WriteString(w, entry.body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestReaderPlainText(t *testing.T) {
	path := writeFile(t, "rfp.TXT", []byte("  Bidders must be certified.\x00\n\xff"))

	text, err := NewReader(Options{}).Text(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Bidders must be certified.\n�", text)
}

func TestReaderEmptyPlainText(t *testing.T) {
	path := writeFile(t, "empty.txt", nil)

	text, err := NewReader(Options{}).Text(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestReaderUnsupportedExtension(t *testing.T) {
	for _, name := range []string{"profile.rtf", "noext"} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, name, []byte("content"))

			_, err := NewReader(Options{}).Text(context.Background(), path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedFormat))

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Empty(t, fe.Detected)
		})
	}
}

func TestReaderRejectsMismatchedContent(t *testing.T) {
	path := writeFile(t, "fake.pdf", []byte("this is plain text pretending to be a pdf"))

	_, err := NewReader(Options{}).Text(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ".pdf", fe.Ext)
	assert.NotEmpty(t, fe.Detected)
}

func TestReaderDOCXWithoutTika(t *testing.T) {
	path := writeDOCX(t, "rfp.docx")

	_, err := NewReader(Options{}).Text(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependencyUnavailable))
	assert.Contains(t, err.Error(), "extraction.tika-url")
}

func TestReaderDOCXThroughTika(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/tika", r.URL.Path)
		assert.Equal(t, "text/plain", r.Header.Get("Accept"))
		assert.Equal(t, mimeDOCX, r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.NotEmpty(t, body)

		_, _ = io.WriteString(w, "\nApplicants must hold a license.\nTable cell\n")
	}))
	defer srv.Close()

	path := writeDOCX(t, "rfp.docx")

	text, err := NewReader(Options{TikaURL: srv.URL + "/"}).Text(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Applicants must hold a license.\nTable cell", text)
}

func TestReaderDOCXTikaUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	path := writeDOCX(t, "rfp.docx")

	_, err := NewReader(Options{TikaURL: url}).Text(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependencyUnavailable))
}

func TestReaderRegisterOverridesExtractor(t *testing.T) {
	path := writeDOCX(t, "rfp.docx")

	r := NewReader(Options{})
	r.Register(".DOCX", ExtractorFunc(func(context.Context, string) (string, error) {
		return "custom text", nil
	}))

	text, err := r.Text(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "custom text", text)
}

func TestContentTypeFromExt(t *testing.T) {
	assert.Equal(t, mimePDF, contentTypeFromExt(".PDF"))
	assert.Equal(t, mimeDOCX, contentTypeFromExt(".docx"))
	assert.Equal(t, "text/plain", contentTypeFromExt(".txt"))
	assert.Empty(t, contentTypeFromExt(""))
}
