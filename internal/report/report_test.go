package report

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/spigell/rfp-analyzer/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() Data {
	return Data{
		Summary: "The agency seeks a <b>cloud</b> vendor.",
		Criteria: []analysis.Criterion{
			{Description: "ISO 9001 & ISO 27001", Importance: analysis.Critical},
			{Description: "Local office", Importance: analysis.Important},
			{Description: "<script>alert(1)</script>", Importance: analysis.NiceToHave},
		},
		Evaluation:  "1. ISO 9001 (Critical): DOES NOT MEET",
		Verdict:     analysis.Verdict{Decision: analysis.NotEligible, Reasoning: analysis.ReasonCriticalFailure},
		GeneratedAt: time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local),
		RunID:       "run-1",
		Generator:   "mock/demo-v1",
	}
}

func TestRender(t *testing.T) {
	html, err := Render(sampleData())
	require.NoError(t, err)

	assert.Contains(t, html, "Generated on: 2024-05-06 07:08:09")
	assert.Contains(t, html, "run run-1")
	assert.Contains(t, html, `<div class="verdict not-eligible">`)
	assert.Contains(t, html, `<div class="decision">NOT ELIGIBLE</div>`)
	assert.Contains(t, html, analysis.ReasonCriticalFailure)
	assert.Contains(t, html, `<span class="badge critical">Critical</span>`)
	assert.Contains(t, html, `<span class="badge nicetohave">Nice-to-have</span>`)
	assert.Contains(t, html, `<span class="number">3</span>`)
	assert.Contains(t, html, "<pre>1. ISO 9001 (Critical): DOES NOT MEET</pre>")
	assert.Contains(t, html, "mock/demo-v1")
}

func TestRenderEscapesDocumentText(t *testing.T) {
	html, err := Render(sampleData())
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, html, "&lt;b&gt;cloud&lt;/b&gt;")
	assert.Contains(t, html, "ISO 9001 &amp; ISO 27001")
}

func TestRenderEmptyResults(t *testing.T) {
	html, err := Render(Data{Verdict: analysis.Verdict{Decision: analysis.Eligible, Reasoning: analysis.ReasonAllMet}})
	require.NoError(t, err)

	assert.Contains(t, html, "No eligibility criteria could be extracted")
	assert.Contains(t, html, "No summary available.")
	assert.Contains(t, html, `<div class="verdict eligible">`)
	assert.Contains(t, html, `<div class="decision">ELIGIBLE</div>`)
	assert.Contains(t, html, "a language model")
	assert.False(t, strings.Contains(html, "&middot; run"))
}

func TestWrite(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, Write(fs, "/reports/out/report.html", "<html></html>"))

	data, err := afero.ReadFile(fs, "/reports/out/report.html")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))
}
