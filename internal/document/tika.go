package document

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTikaTimeout = 30 * time.Second

// TikaClient extracts text through an Apache Tika server (PUT /tika, Accept: text/plain).
type TikaClient struct {
	baseURL string
	client  *resty.Client
}

// NewTikaClient creates a client for the Tika server at baseURL.
func NewTikaClient(baseURL string, timeout time.Duration) *TikaClient {
	if timeout <= 0 {
		timeout = defaultTikaTimeout
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")

	return &TikaClient{
		baseURL: baseURL,
		client:  resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// Extract uploads the file at path and returns the text Tika extracted.
func (c *TikaClient) Extract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	req := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		SetBody(data)

	if ct := contentTypeFromExt(filepath.Ext(path)); ct != "" {
		req.SetHeader("Content-Type", ct)
	}

	resp, err := req.Put("/tika")
	if err != nil {
		return "", &DependencyError{
			Format:     strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), ".")),
			Dependency: "Apache Tika server",
			Hint:       fmt.Sprintf("is it running at %s?", c.baseURL),
			Cause:      err,
		}
	}

	if resp.IsError() {
		return "", fmt.Errorf("tika status %d", resp.StatusCode())
	}

	text := SanitizeText(resp.String())
	if text == "" {
		return "", ErrNoText
	}

	return text, nil
}

func contentTypeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case extPDF:
		return mimePDF
	case extDOCX:
		return mimeDOCX
	case extTXT:
		return "text/plain"
	case "", ".":
		return ""
	default:
		return mime.TypeByExtension(ext)
	}
}
