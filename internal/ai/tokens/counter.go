// Package tokens measures and trims prompts against a token budget.
package tokens

import (
	"strings"
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "cl100k_base"

// Counter counts tokens with a tiktoken encoding. When the encoding cannot be
// loaded every rune is counted as one token, which never undercounts.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// New loads the named encoding, falling back to rune counting on failure.
func New(encoding string, logger *zap.Logger) *Counter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		logger.Debug("tiktoken encoding unavailable, counting runes",
			zap.String("encoding", encoding),
			zap.Error(err),
		)
		return &Counter{}
	}

	return &Counter{enc: enc}
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	if c == nil || c.enc == nil {
		return utf8.RuneCountInString(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

// KeepLast returns the newest part of text that fits in limit tokens and the
// number of tokens dropped from the front.
func (c *Counter) KeepLast(text string, limit int) (string, int) {
	if limit <= 0 {
		return text, 0
	}

	if c == nil || c.enc == nil {
		runes := []rune(text)
		if len(runes) <= limit {
			return text, 0
		}
		return string(runes[len(runes)-limit:]), len(runes) - limit
	}

	ids := c.enc.Encode(text, nil, nil)
	if len(ids) <= limit {
		return text, 0
	}
	dropped := len(ids) - limit
	return c.enc.Decode(ids[dropped:]), dropped
}
