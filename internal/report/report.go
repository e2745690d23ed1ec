// Package report renders analysis results as a self-contained HTML document.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	_ "embed"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/afero"
	"github.com/spigell/rfp-analyzer/internal/analysis"
)

// DefaultOutput is the report file name used when none is configured.
const DefaultOutput = "rfp_eligibility_report.html"

//go:embed report.html.tmpl
var reportTemplate string

var tmpl = template.Must(template.New("report").
	Funcs(sprig.HtmlFuncMap()).
	Funcs(template.FuncMap{"verdictClass": verdictClass}).
	Parse(reportTemplate))

// Data is everything shown in a report. Document-derived text is escaped on render.
type Data struct {
	Summary     string
	Criteria    []analysis.Criterion
	Evaluation  string
	Verdict     analysis.Verdict
	GeneratedAt time.Time
	RunID       string
	// Generator names the provider and model, e.g. "gemini/gemini-2.5-flash".
	Generator string
}

// Render returns the HTML report for data.
func Render(data Data) (string, error) {
	if data.GeneratedAt.IsZero() {
		data.GeneratedAt = time.Now()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// Write stores the rendered report at path, creating parent directories.
func Write(fs afero.Fs, path, html string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	if err := afero.WriteFile(fs, path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func verdictClass(d analysis.Decision) string {
	if d == analysis.Eligible {
		return "eligible"
	}
	return "not-eligible"
}
