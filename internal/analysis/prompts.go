package analysis

import (
	"fmt"
	"strings"

	_ "embed"
)

//go:embed summarize_chunk.md
var summarizeChunkTemplate string

//go:embed meta_summary.md
var metaSummaryTemplate string

//go:embed criteria.md
var criteriaTemplate string

//go:embed evaluate.md
var evaluateTemplate string

// render fills {{KEY}} placeholders in a single pass, so document text that
// happens to contain a placeholder is left as is.
func render(template string, pairs ...string) string {
	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{{"+pairs[i]+"}}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(strings.TrimSpace(template))
}

func summarizeChunkPrompt(section string) string {
	return render(summarizeChunkTemplate, "SECTION", section)
}

func metaSummaryPrompt(summaries []string) string {
	return render(metaSummaryTemplate, "SUMMARIES", strings.Join(summaries, "\n\n"))
}

func criteriaPrompt(section string) string {
	return render(criteriaTemplate, "SECTION", section)
}

func evaluatePrompt(criteria []Criterion, companyChunks []string) string {
	return render(evaluateTemplate,
		"CRITERIA", FormatCriteria(criteria),
		"COMPANY", strings.Join(companyChunks, "\n\n"),
	)
}

// FormatCriteria renders criteria as numbered "N. description - importance" lines.
func FormatCriteria(criteria []Criterion) string {
	lines := make([]string, 0, len(criteria))
	for i, c := range criteria {
		lines = append(lines, fmt.Sprintf("%d. %s - %s", i+1, c.Description, c.Importance))
	}
	return strings.Join(lines, "\n")
}
