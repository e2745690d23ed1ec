package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// Criterion is one eligibility requirement extracted from an RFP.
type Criterion struct {
	Description string     `json:"description"`
	Importance  Importance `json:"importance"`
}

// ExtractCriteria asks the model for the requirements in each chunk, parses
// the answers and removes near-duplicates across chunks.
func (a *Analyzer) ExtractCriteria(ctx context.Context, chunks []string) ([]Criterion, error) {
	raw := make([]Criterion, 0)

	for i, chunk := range chunks {
		out, err := a.generate(ctx, "criteria", criteriaPrompt(chunk), a.opts.CriteriaMaxLength)
		if err != nil {
			return nil, fmt.Errorf("extract criteria from chunk %d/%d: %w", i+1, len(chunks), err)
		}

		parsed := ParseCriteria(out)
		a.logger.Debug("criteria parsed",
			zap.Int("chunk", i+1),
			zap.Int("criteria", len(parsed)),
		)
		raw = append(raw, parsed...)
	}

	unique := Dedup(raw)
	a.logger.Info("criteria extracted",
		zap.Int("chunks", len(chunks)),
		zap.Int("extracted", len(raw)),
		zap.Int("duplicates", len(raw)-len(unique)),
		zap.Int("left", len(unique)),
	)

	return unique, nil
}

var (
	numberedItem = regexp.MustCompile(`^\d+\.\s+`)
	bulletItem   = regexp.MustCompile(`^[-•◦▪‣∙]\s+`)
)

type parseState int

const (
	awaitingItem parseState = iota
	inItem
)

// criteriaParser is a line-oriented state machine over model output.
// Enumerated lines open an item, other non-blank lines extend the open item.
type criteriaParser struct {
	state      parseState
	desc       []string
	importance Importance
	items      []Criterion
}

// ParseCriteria reads criteria out of free-form model text. Malformed input
// never fails; it yields fewer criteria or default importances.
func ParseCriteria(text string) []Criterion {
	p := &criteriaParser{items: make([]Criterion, 0)}
	for _, line := range strings.Split(text, "\n") {
		p.feed(line)
	}
	p.close()
	return p.items
}

func (p *criteriaParser) feed(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	if body, ok := itemBody(line); ok {
		p.close()
		p.open(body)
		return
	}

	if p.state == inItem {
		p.desc = append(p.desc, line)
	}
}

func (p *criteriaParser) open(body string) {
	desc, label, labeled := strings.Cut(body, " - ")
	desc = strings.TrimSpace(desc)

	if labeled {
		p.importance = NormalizeImportance(label)
	} else {
		p.importance = InferImportance(desc)
	}

	p.desc = append(p.desc[:0], desc)
	p.state = inItem
}

func (p *criteriaParser) close() {
	if p.state != inItem {
		return
	}
	p.state = awaitingItem

	desc := strings.TrimSpace(strings.Join(p.desc, " "))
	if desc == "" {
		return
	}
	p.items = append(p.items, Criterion{Description: desc, Importance: p.importance})
}

// itemBody reports whether line opens a new item and returns it without its enumerator.
func itemBody(line string) (string, bool) {
	for _, re := range []*regexp.Regexp{numberedItem, bulletItem} {
		if loc := re.FindStringIndex(line); loc != nil {
			return line[loc[1]:], true
		}
	}
	return "", false
}
