package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spigell/rfp-analyzer/internal/document"
	"github.com/spigell/rfp-analyzer/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const previewLength = 1000

func newReader(config *Config, logger *zap.Logger) *document.Reader {
	return document.NewReader(document.Options{
		TikaURL:     config.Extraction.TikaURL,
		TikaTimeout: config.Extraction.TikaTimeout,
		Logger:      logger,
	})
}

// loadDocuments reads every path concurrently and returns the texts in the same order.
func loadDocuments(ctx context.Context, reader *document.Reader, logger *zap.Logger, paths ...string) ([]string, error) {
	texts := make([]string, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			text, err := reader.Text(gctx, path)
			if err != nil {
				return err
			}
			texts[i] = text

			logger.Info("document loaded",
				zap.String("path", path),
				zap.Int("characters", utf8.RuneCountInString(text)),
			)
			logger.Debug("document preview",
				zap.String("path", path),
				zap.String("preview", utils.Preview(text, previewLength)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}

// documentHint explains how to recover from a document loading error.
func documentHint(err error) string {
	switch {
	case errors.Is(err, document.ErrUnsupportedFormat):
		return fmt.Sprintf("supported formats: %s", strings.Join(document.SupportedExtensions, ", "))
	case errors.Is(err, document.ErrDependencyUnavailable):
		return "start an Apache Tika server and set extraction.tika-url or RFP_ANALYZER_TIKA_URL"
	case errors.Is(err, document.ErrNoText):
		return "the document has no text layer; convert scanned files with OCR first"
	default:
		return "check that the file exists and is readable"
	}
}
