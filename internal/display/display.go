// Package display renders validated analysis results as fixed terminal
// widgets. It only reads workflow state; it never mutates it.
package display

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ajaydixit/finsight/internal/i18n"
	"github.com/ajaydixit/finsight/internal/schema"
)

const gaugeWidth = 40

// Renderer writes the result and error views in the active language.
type Renderer struct {
	out  io.Writer
	lang i18n.Language
}

func NewRenderer(lang i18n.Language) *Renderer {
	return &Renderer{out: os.Stdout, lang: lang}
}

// NewRendererTo writes to a custom writer; used by tests.
func NewRendererTo(out io.Writer, lang i18n.Language) *Renderer {
	return &Renderer{out: out, lang: lang}
}

// SetLanguage switches the static label language. Only labels change;
// result data is rendered as received.
func (r *Renderer) SetLanguage(lang i18n.Language) {
	r.lang = lang
}

func (r *Renderer) t(key string) string {
	return i18n.T(r.lang, key)
}

// Result renders the full result view for one scan.
func (r *Renderer) Result(res *schema.AnalysisResult, scanID string) {
	title := r.t("result.title")
	if scanID != "" {
		title = fmt.Sprintf("%s  [%s]", title, shortID(scanID))
	}
	fmt.Fprintln(r.out, titleStyle.Render(title))

	r.creditReadiness(res.CreditReadiness)
	r.financialSummary(res.FinancialSummary)
	r.projections(res.Projections)
	if res.FinancialSummary.Risk != nil {
		r.risk(res.FinancialSummary.Risk)
	}
	if len(res.BankingProducts) > 0 {
		r.products(res.BankingProducts)
	}
	if res.TaxCompliance != nil {
		r.tax(res.TaxCompliance)
	}
	r.narrative(res.AIReport)
}

func (r *Renderer) creditReadiness(cr schema.CreditReadiness) {
	fmt.Fprintln(r.out, sectionStyle.Render(r.t("result.credit_readiness")))

	gradeStyle, ok := gradeStyles[cr.Grade]
	if !ok {
		gradeStyle = valueStyle
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(r.t("result.score")))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d / 100", cr.Score)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(""))
	b.WriteString(scoreGauge(cr.Score))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(r.t("result.grade")))
	b.WriteString(gradeStyle.Render(cr.Grade))
	fmt.Fprintln(r.out, panelStyle.Render(b.String()))
}

// scoreGauge draws a 0-100 bar. The grade banding behind the score is
// server-defined, so the gauge shows the raw score only.
func scoreGauge(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * gaugeWidth / 100
	return gaugeFilledStyle.Render(strings.Repeat("█", filled)) +
		gaugeEmptyStyle.Render(strings.Repeat("░", gaugeWidth-filled))
}

func (r *Renderer) financialSummary(fs schema.FinancialSummary) {
	fmt.Fprintln(r.out, sectionStyle.Render(r.t("result.summary")))

	rows := []struct {
		label string
		key   string
	}{
		{r.t("result.total_revenue"), schema.MetricTotalRevenue},
		{r.t("result.net_cashflow"), schema.MetricNetCashflow},
		{r.t("result.total_expenses"), schema.MetricTotalExpenses},
		{r.t("result.avg_transaction"), schema.MetricAvgTransaction},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(row.label))
		// Missing metrics display as zero; the schema keeps them absent.
		b.WriteString(valueStyle.Render(money(fs.Metrics.Amount(row.key))))
	}
	fmt.Fprintln(r.out, panelStyle.Render(b.String()))
}

func (r *Renderer) projections(projections []schema.Projection) {
	fmt.Fprintln(r.out, sectionStyle.Render(r.t("result.projections")))

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %24s %26s", r.t("result.proj_month"), r.t("result.proj_revenue"), r.t("result.proj_cashflow"))
	for _, p := range projections {
		fmt.Fprintf(&b, "\n%-12s %24s %26s", string(p.Month), money(p.ProjectedRevenue), money(p.ProjectedNetCashflow))
	}
	fmt.Fprintln(r.out, panelStyle.Render(b.String()))
}

func (r *Renderer) risk(risk *schema.RiskAssessment) {
	fmt.Fprintln(r.out, sectionStyle.Render(r.t("result.risk")))

	var b strings.Builder
	b.WriteString(labelStyle.Render("Overall"))
	b.WriteString(riskLevel(risk.OverallRisk))

	// Stable ordering for the breakdown categories
	categories := make([]string, 0, len(risk.Breakdown))
	for c := range risk.Breakdown {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		f := risk.Breakdown[c]
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(c))
		b.WriteString(riskLevel(f.Level))
		if f.Reason != "" {
			b.WriteString(hintStyle.Render("  " + f.Reason))
		}
	}
	fmt.Fprintln(r.out, panelStyle.Render(b.String()))
}

func riskLevel(level string) string {
	if style, ok := riskStyles[level]; ok {
		return style.Render(level)
	}
	return valueStyle.Render(level)
}

func (r *Renderer) products(products []schema.BankingProduct) {
	fmt.Fprintln(r.out, sectionStyle.Render(r.t("result.products")))

	var b strings.Builder
	for i, p := range products {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(valueStyle.Render(p.Product))
		fmt.Fprintf(&b, "  (%s, %s)", p.Provider, p.Suitability)
		if p.Benefit != "" {
			b.WriteString("\n")
			b.WriteString(hintStyle.Render("  " + p.Benefit))
		}
	}
	fmt.Fprintln(r.out, panelStyle.Render(b.String()))
}

func (r *Renderer) tax(tax *schema.TaxCompliance) {
	fmt.Fprintln(r.out, sectionStyle.Render(r.t("result.tax")))

	var b strings.Builder
	b.WriteString(labelStyle.Render("Output GST"))
	b.WriteString(valueStyle.Render(money(tax.EstimatedOutputGST)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Input tax credit"))
	b.WriteString(valueStyle.Render(money(tax.EstimatedITC)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Net GST payable"))
	b.WriteString(valueStyle.Render(money(tax.NetGSTPayable)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Reserve status"))
	b.WriteString(riskLevel(tax.ReserveStatus))
	for _, alert := range tax.ComplianceAlerts {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("⚠ " + alert))
	}
	fmt.Fprintln(r.out, panelStyle.Render(b.String()))
}

func (r *Renderer) narrative(report string) {
	fmt.Fprintln(r.out, sectionStyle.Render(r.t("result.ai_report")))
	fmt.Fprintln(r.out, narrativeStyle.Render(wrapText(report, 70)))
}

// Failure renders the error view. The workflow keeps the selected file
// on failure, and the hint says so.
func (r *Renderer) Failure(err error) {
	fmt.Fprintln(r.out, errorStyle.Render("✗ "+r.t("error.title")))
	fmt.Fprintln(r.out, panelStyle.BorderForeground(errorStyle.GetForeground()).Render(wrapText(err.Error(), 70)))
	fmt.Fprintln(r.out, hintStyle.Render(r.t("error.retry_hint")))
}

// InvestorReport renders the structured report from the report endpoint.
func (r *Renderer) InvestorReport(rep *schema.InvestorReport) {
	fmt.Fprintln(r.out, titleStyle.Render("Investor Report"))

	var b strings.Builder
	b.WriteString(labelStyle.Render("Overall health"))
	b.WriteString(riskLevel(rep.ExecutiveSummary.OverallHealth))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Credit grade"))
	if style, ok := gradeStyles[rep.ExecutiveSummary.CreditGrade]; ok {
		b.WriteString(style.Render(rep.ExecutiveSummary.CreditGrade))
	} else {
		b.WriteString(valueStyle.Render(rep.ExecutiveSummary.CreditGrade))
	}
	if rep.ExecutiveSummary.KeyMessage != "" {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(wrapText(rep.ExecutiveSummary.KeyMessage, 70)))
	}
	fmt.Fprintln(r.out, panelStyle.Render(b.String()))

	if len(rep.FinancialHighlights) > 0 {
		fmt.Fprintln(r.out, sectionStyle.Render("Financial Highlights"))
		keys := make([]string, 0, len(rep.FinancialHighlights))
		for k := range rep.FinancialHighlights {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var hb strings.Builder
		for i, k := range keys {
			if i > 0 {
				hb.WriteString("\n")
			}
			hb.WriteString(labelStyle.Render(k))
			hb.WriteString(valueStyle.Render(money(rep.FinancialHighlights[k])))
		}
		fmt.Fprintln(r.out, panelStyle.Render(hb.String()))
	}

	if rep.AIInsights.Narrative != "" {
		fmt.Fprintln(r.out, sectionStyle.Render(r.t("result.ai_report")))
		fmt.Fprintln(r.out, narrativeStyle.Render(wrapText(rep.AIInsights.Narrative, 70)))
	}
	if rep.Disclaimer != "" {
		fmt.Fprintln(r.out, hintStyle.Render(wrapText(rep.Disclaimer, 76)))
	}
}

// History renders the server-side analysis history as a table.
func (r *Renderer) History(entries []schema.HistoryEntry) {
	fmt.Fprintln(r.out, titleStyle.Render("Analysis History"))
	if len(entries) == 0 {
		fmt.Fprintln(r.out, hintStyle.Render("No analyses recorded yet."))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-24s %-14s %-10s %-20s", "ID", "Business", "Type", "Risk", "When")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%-6d %-24s %-14s %-10s %-20s",
			e.ID, truncate(e.BusinessName, 24), truncate(e.BusinessType, 14), e.RiskLevel, truncate(e.Timestamp, 20))
	}
	fmt.Fprintln(r.out, panelStyle.Render(b.String()))
}

// money formats a currency amount for display.
func money(d decimal.Decimal) string {
	return "₹ " + d.StringFixed(2)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

// wrapText does a simple word wrap for narrative panels.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len([]rune(word)) > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += len([]rune(word))
	}
	return b.String()
}
