package document

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultChunkSize is the chunk length, in characters, used when callers pass a non-positive size.
const DefaultChunkSize = 1000

// Chunk splits text into ordered segments of at most maxSize characters.
//
// Sentences are never split unless a single sentence is longer than maxSize,
// in which case it is packed word by word into its own sub-chunks. A word
// longer than maxSize is emitted alone. Whitespace inside a chunk is
// normalized to the single spaces used to join sentences and words.
func Chunk(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}

	chunks := make([]string, 0)
	current := make([]string, 0)
	currentLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, " "))
		current = current[:0]
		currentLen = 0
	}

	for _, sentence := range SplitSentences(text) {
		n := utf8.RuneCountInString(sentence)

		if n > maxSize {
			flush()
			chunks = append(chunks, packWords(strings.Fields(sentence), maxSize)...)
			continue
		}

		next := n
		if len(current) > 0 {
			next = currentLen + 1 + n
		}

		if next <= maxSize {
			current = append(current, sentence)
			currentLen = next
			continue
		}

		flush()
		current = append(current, sentence)
		currentLen = n
	}
	flush()

	return chunks
}

// SplitSentences splits text after '.', '!' or '?' when followed by whitespace.
// Sentences are trimmed and empty ones are dropped.
func SplitSentences(text string) []string {
	runes := []rune(text)
	sentences := make([]string, 0)

	add := func(part []rune) {
		if s := strings.TrimSpace(string(part)); s != "" {
			sentences = append(sentences, s)
		}
	}

	start := 0
	for i := 0; i < len(runes); i++ {
		if !isSentenceTerminal(runes[i]) {
			continue
		}

		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 {
			continue
		}

		add(runes[start : i+1])
		start = j
		i = j - 1
	}
	add(runes[start:])

	return sentences
}

func packWords(words []string, maxSize int) []string {
	pieces := make([]string, 0)
	piece := make([]string, 0)
	pieceLen := 0

	for _, word := range words {
		n := utf8.RuneCountInString(word)
		next := n
		if len(piece) > 0 {
			next = pieceLen + 1 + n
		}

		if next <= maxSize || len(piece) == 0 {
			piece = append(piece, word)
			pieceLen = next
			continue
		}

		pieces = append(pieces, strings.Join(piece, " "))
		piece = []string{word}
		pieceLen = n
	}

	if len(piece) > 0 {
		pieces = append(pieces, strings.Join(piece, " "))
	}

	return pieces
}

func isSentenceTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
