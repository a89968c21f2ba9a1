package display

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajaydixit/finsight/internal/i18n"
	"github.com/ajaydixit/finsight/internal/schema"
)

func parseResult(t *testing.T, body string) *schema.AnalysisResult {
	t.Helper()
	res, err := schema.Parse([]byte(body))
	require.NoError(t, err)
	return res
}

func TestResultViewShowsScoreAndGrade(t *testing.T) {
	res := parseResult(t, `{
		"credit_readiness": {"score": 72, "grade": "B"},
		"financial_summary": {"metrics": {"total_revenue": 500000}},
		"projections": [{"month": "Jan", "projected_revenue": 510000, "projected_net_cashflow": 125000}],
		"ai_report": "Stable growth trend."
	}`)

	var buf bytes.Buffer
	NewRendererTo(&buf, i18n.English).Result(res, "3e9c2f44-aaaa-bbbb-cccc-000000000000")
	out := buf.String()

	assert.Contains(t, out, "72 / 100")
	assert.Contains(t, out, "Jan")
	assert.Contains(t, out, "Stable growth trend.")
	assert.Contains(t, out, "3e9c2f44", "scan id is shown shortened")
	// Missing metrics render as zero at the display boundary
	assert.Contains(t, out, "₹ 0.00")
}

func TestResultViewSkipsAbsentSections(t *testing.T) {
	res := parseResult(t, `{
		"credit_readiness": {"score": 40, "grade": "C"},
		"financial_summary": {"metrics": {}},
		"projections": [],
		"ai_report": "Thin data."
	}`)

	var buf bytes.Buffer
	r := NewRendererTo(&buf, i18n.English)
	r.Result(res, "")
	out := buf.String()

	assert.NotContains(t, out, "Risk Assessment")
	assert.NotContains(t, out, "Recommended Products")
	assert.NotContains(t, out, "Tax Compliance")
}

func TestResultViewLocalizedLabels(t *testing.T) {
	res := parseResult(t, `{
		"credit_readiness": {"score": 60, "grade": "B"},
		"financial_summary": {"metrics": {}},
		"projections": [],
		"ai_report": "ठीक है।"
	}`)

	var buf bytes.Buffer
	NewRendererTo(&buf, i18n.Hindi).Result(res, "")
	out := buf.String()

	assert.Contains(t, out, "क्रेडिट तत्परता")
	assert.Contains(t, out, "ठीक है।")
}

func TestFailureView(t *testing.T) {
	var buf bytes.Buffer
	NewRendererTo(&buf, i18n.English).Failure(errors.New("analyze: server error: HTTP 500"))
	out := buf.String()

	assert.Contains(t, out, "Analysis failed")
	assert.Contains(t, out, "HTTP 500")
	assert.Contains(t, out, "still selected")
}

func TestHistoryView(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererTo(&buf, i18n.English)

	r.History(nil)
	assert.Contains(t, buf.String(), "No analyses recorded yet.")

	buf.Reset()
	r.History([]schema.HistoryEntry{
		{ID: 7, BusinessName: "statement.csv", BusinessType: "Retail", RiskLevel: "Low", Timestamp: "2026-02-06T18:45:30"},
	})
	out := buf.String()
	assert.Contains(t, out, "statement.csv")
	assert.Contains(t, out, "Low")
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "a b", wrapText("a b", 10))
	assert.Equal(t, "aaaa\nbbbb", wrapText("aaaa bbbb", 5))
	assert.Equal(t, "", wrapText("", 10))
}
