package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	extTXT  = ".txt"
	extPDF  = ".pdf"
	extDOCX = ".docx"

	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZIP  = "application/zip"
)

// SupportedExtensions lists the file extensions the reader understands.
var SupportedExtensions = []string{extPDF, extDOCX, extTXT}

// contentTypes lists the sniffed MIME types accepted for binary formats.
// DOCX files are zip containers and older detectors report them as such.
var contentTypes = map[string][]string{
	extPDF:  {mimePDF},
	extDOCX: {mimeDOCX, mimeZIP},
}

// Extractor turns a file on disk into plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, path string) (string, error)

func (f ExtractorFunc) Extract(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// Options configures a Reader.
type Options struct {
	// TikaURL enables DOCX extraction through an Apache Tika server.
	TikaURL     string
	TikaTimeout time.Duration
	Logger      *zap.Logger
}

// Reader extracts plain text from supported document files.
type Reader struct {
	extractors map[string]Extractor
	missing    map[string]*DependencyError
	logger     *zap.Logger
}

// NewReader builds a reader. PDF and TXT are handled in-process; DOCX needs a Tika server.
func NewReader(opts Options) *Reader {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Reader{
		extractors: map[string]Extractor{
			extTXT: ExtractorFunc(readPlainText),
			extPDF: ExtractorFunc(readPDF),
		},
		missing: make(map[string]*DependencyError),
		logger:  logger,
	}

	if url := strings.TrimSpace(opts.TikaURL); url != "" {
		r.extractors[extDOCX] = NewTikaClient(url, opts.TikaTimeout)
	} else {
		r.missing[extDOCX] = &DependencyError{
			Format:     "DOCX",
			Dependency: "Apache Tika server",
			Hint:       "set extraction.tika-url or RFP_ANALYZER_TIKA_URL",
		}
	}

	return r
}

// Register installs or replaces the extractor for a supported extension.
func (r *Reader) Register(ext string, extractor Extractor) {
	ext = strings.ToLower(ext)
	r.extractors[ext] = extractor
	delete(r.missing, ext)
}

// Text returns the sanitized text content of the document at path.
func (r *Reader) Text(ctx context.Context, path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !isSupported(ext) {
		return "", &FormatError{Path: path, Ext: ext}
	}

	if dep, ok := r.missing[ext]; ok {
		return "", dep
	}

	extractor, ok := r.extractors[ext]
	if !ok {
		return "", &FormatError{Path: path, Ext: ext}
	}

	if err := checkContentType(path, ext); err != nil {
		return "", err
	}

	raw, err := extractor.Extract(ctx, path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", path, err)
	}

	text := SanitizeText(raw)

	r.logger.Debug("document text extracted",
		zap.String("path", path),
		zap.String("format", strings.TrimPrefix(ext, ".")),
		zap.Int("characters", len([]rune(text))),
	)

	return text, nil
}

func isSupported(ext string) bool {
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

func checkContentType(path, ext string) error {
	allowed, ok := contentTypes[ext]
	if !ok {
		return nil
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detect content type of %s: %w", path, err)
	}

	for m := detected; m != nil; m = m.Parent() {
		for _, want := range allowed {
			if m.Is(want) {
				return nil
			}
		}
	}

	return &FormatError{Path: path, Ext: ext, Detected: detected.String()}
}

func readPlainText(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
