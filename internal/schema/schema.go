// Package schema defines the shape of the analysis service's responses
// and the validating parse that stands between the wire and the rest of
// the application. A malformed response fails here, with the offending
// field named, instead of surfacing as a zero value in a display panel.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Recognized keys of the financial summary metric set. The server may
// send more (expense ratios, category breakdowns); unknown keys are
// kept and simply not rendered by the fixed widgets.
const (
	MetricTotalRevenue   = "total_revenue"
	MetricNetCashflow    = "net_cashflow"
	MetricTotalExpenses  = "total_expenses"
	MetricAvgTransaction = "avg_transaction"
)

// Grades the server assigns. The score-to-grade banding is a server
// decision; the client only checks membership.
var validGrades = map[string]bool{"A": true, "B": true, "C": true, "D": true}

// SchemaError reports the first missing or mistyped field found while
// parsing a server response.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("analysis result: field %q %s", e.Field, e.Reason)
}

// CreditReadiness is the server-computed score/grade pair.
type CreditReadiness struct {
	Score int    `json:"score"`
	Grade string `json:"grade"`
}

// MetricSet holds the summary metrics keyed as they arrive on the wire.
// Absent keys stay absent here; zero-defaulting is a display decision,
// made through Amount.
type MetricSet map[string]decimal.Decimal

// Amount returns the metric for key, or zero when the server omitted
// it. This is the only place absence turns into a number.
func (m MetricSet) Amount(key string) decimal.Decimal {
	if v, ok := m[key]; ok {
		return v
	}
	return decimal.Zero
}

// Has reports whether the server actually sent the metric.
func (m MetricSet) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// RiskFactor is one category of the server's risk breakdown.
type RiskFactor struct {
	Level  string `json:"level"`
	Reason string `json:"reason"`
}

// RiskAssessment is the optional risk section of the financial summary.
type RiskAssessment struct {
	OverallRisk string                `json:"overall_risk"`
	Breakdown   map[string]RiskFactor `json:"risk_breakdown"`
}

type FinancialSummary struct {
	Metrics MetricSet       `json:"metrics"`
	Risk    *RiskAssessment `json:"risk,omitempty"`
}

// MonthLabel tolerates both spellings the service has used for a
// projection month: a name ("Jan") and an ordinal (1).
type MonthLabel string

func (m *MonthLabel) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = MonthLabel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("month must be a string or number")
	}
	i, err := n.Int64()
	if err != nil {
		return fmt.Errorf("month must be a string or whole number")
	}
	*m = MonthLabel("Month " + strconv.FormatInt(i, 10))
	return nil
}

// Projection is one month of the server's cashflow forecast.
type Projection struct {
	Month                MonthLabel      `json:"month"`
	ProjectedRevenue     decimal.Decimal `json:"projected_revenue"`
	ProjectedNetCashflow decimal.Decimal `json:"projected_net_cashflow"`
}

// BankingProduct is an optional product recommendation.
type BankingProduct struct {
	Product     string `json:"product"`
	Provider    string `json:"provider"`
	Suitability string `json:"suitability"`
	Benefit     string `json:"benefit"`
}

// TaxCompliance is the optional GST estimation section.
type TaxCompliance struct {
	EstimatedOutputGST decimal.Decimal `json:"estimated_output_gst"`
	EstimatedITC       decimal.Decimal `json:"estimated_itc"`
	NetGSTPayable      decimal.Decimal `json:"net_gst_payable"`
	ReserveStatus      string          `json:"tax_reserve_status"`
	ComplianceAlerts   []string        `json:"compliance_alerts"`
	GSTRateApplied     string          `json:"gst_rate_applied"`
}

// BusinessInfo echoes what the server knows about the submitted file.
type BusinessInfo struct {
	Type                  string          `json:"type"`
	Source                string          `json:"source"`
	ExternalVerifications json.RawMessage `json:"external_verifications,omitempty"`
}

// Meta carries server-side bookkeeping for the analysis.
type Meta struct {
	Language string `json:"language"`
	DBID     int64  `json:"db_id"`
}

// AnalysisResult is the validated assessment for one scan. Immutable
// once parsed; the workflow holds exactly one and discards it on reset.
type AnalysisResult struct {
	CreditReadiness  CreditReadiness  `json:"credit_readiness"`
	FinancialSummary FinancialSummary `json:"financial_summary"`
	Projections      []Projection     `json:"projections"`
	AIReport         string           `json:"ai_report"`

	// Optional sections; nil when the server omitted them.
	BankingProducts []BankingProduct `json:"banking_products,omitempty"`
	TaxCompliance   *TaxCompliance   `json:"tax_compliance,omitempty"`
	BusinessInfo    *BusinessInfo    `json:"business_info,omitempty"`
	Meta            *Meta            `json:"meta,omitempty"`

	// Raw is the verbatim response body, kept so the full payload can
	// be forwarded to the report endpoint without re-marshalling.
	Raw json.RawMessage `json:"-"`
}

// wire mirrors AnalysisResult with pointer fields so required-field
// absence is distinguishable from zero values.
type wire struct {
	CreditReadiness *struct {
		Score *int    `json:"score"`
		Grade *string `json:"grade"`
	} `json:"credit_readiness"`
	FinancialSummary *struct {
		Metrics map[string]decimal.Decimal `json:"metrics"`
		Risk    *RiskAssessment            `json:"risk"`
	} `json:"financial_summary"`
	Projections []struct {
		Month                *MonthLabel      `json:"month"`
		ProjectedRevenue     *decimal.Decimal `json:"projected_revenue"`
		ProjectedNetCashflow *decimal.Decimal `json:"projected_net_cashflow"`
	} `json:"projections"`
	AIReport *string `json:"ai_report"`

	BankingProducts []BankingProduct `json:"banking_products"`
	TaxCompliance   *TaxCompliance   `json:"tax_compliance"`
	BusinessInfo    *BusinessInfo    `json:"business_info"`
	Meta            *Meta            `json:"meta"`
}

// Parse validates an analysis response body. It returns either a fully
// populated result or a *SchemaError naming the first bad field; it
// never returns a partially filled result.
func Parse(data []byte) (*AnalysisResult, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var w wire
	if err := dec.Decode(&w); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "(root)"
			}
			return nil, &SchemaError{Field: field, Reason: "has wrong type: " + err.Error()}
		}
		return nil, &SchemaError{Field: "(root)", Reason: "is not valid JSON: " + err.Error()}
	}

	if w.CreditReadiness == nil {
		return nil, &SchemaError{Field: "credit_readiness", Reason: "is missing"}
	}
	if w.CreditReadiness.Score == nil {
		return nil, &SchemaError{Field: "credit_readiness.score", Reason: "is missing"}
	}
	if s := *w.CreditReadiness.Score; s < 0 || s > 100 {
		return nil, &SchemaError{Field: "credit_readiness.score", Reason: fmt.Sprintf("must be in 0..100, got %d", s)}
	}
	if w.CreditReadiness.Grade == nil {
		return nil, &SchemaError{Field: "credit_readiness.grade", Reason: "is missing"}
	}
	if !validGrades[*w.CreditReadiness.Grade] {
		return nil, &SchemaError{Field: "credit_readiness.grade", Reason: fmt.Sprintf("must be one of A, B, C, D, got %q", *w.CreditReadiness.Grade)}
	}

	if w.FinancialSummary == nil {
		return nil, &SchemaError{Field: "financial_summary", Reason: "is missing"}
	}
	if w.FinancialSummary.Metrics == nil {
		return nil, &SchemaError{Field: "financial_summary.metrics", Reason: "is missing"}
	}

	if w.Projections == nil {
		return nil, &SchemaError{Field: "projections", Reason: "is missing"}
	}
	for i, p := range w.Projections {
		if p.Month == nil {
			return nil, &SchemaError{Field: fmt.Sprintf("projections[%d].month", i), Reason: "is missing"}
		}
		if p.ProjectedRevenue == nil {
			return nil, &SchemaError{Field: fmt.Sprintf("projections[%d].projected_revenue", i), Reason: "is missing"}
		}
		if p.ProjectedNetCashflow == nil {
			return nil, &SchemaError{Field: fmt.Sprintf("projections[%d].projected_net_cashflow", i), Reason: "is missing"}
		}
	}

	if w.AIReport == nil {
		return nil, &SchemaError{Field: "ai_report", Reason: "is missing"}
	}

	res := &AnalysisResult{
		CreditReadiness: CreditReadiness{
			Score: *w.CreditReadiness.Score,
			Grade: *w.CreditReadiness.Grade,
		},
		FinancialSummary: FinancialSummary{
			Metrics: MetricSet(w.FinancialSummary.Metrics),
			Risk:    w.FinancialSummary.Risk,
		},
		Projections:     make([]Projection, 0, len(w.Projections)),
		AIReport:        *w.AIReport,
		BankingProducts: w.BankingProducts,
		TaxCompliance:   w.TaxCompliance,
		BusinessInfo:    w.BusinessInfo,
		Meta:            w.Meta,
		Raw:             json.RawMessage(bytes.Clone(data)),
	}
	for _, p := range w.Projections {
		res.Projections = append(res.Projections, Projection{
			Month:                *p.Month,
			ProjectedRevenue:     *p.ProjectedRevenue,
			ProjectedNetCashflow: *p.ProjectedNetCashflow,
		})
	}
	return res, nil
}
