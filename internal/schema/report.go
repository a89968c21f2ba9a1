package schema

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ExecutiveSummary opens the investor-ready report.
type ExecutiveSummary struct {
	OverallHealth string `json:"overall_health"`
	CreditGrade   string `json:"credit_grade"`
	KeyMessage    string `json:"key_message"`
}

// InvestorReport is the structured report built by the report endpoint
// from a full analysis payload.
type InvestorReport struct {
	ExecutiveSummary    ExecutiveSummary           `json:"executive_summary"`
	FinancialHighlights map[string]decimal.Decimal `json:"financial_highlights"`
	RiskAssessment      RiskAssessment             `json:"risk_assessment"`
	Recommendations     json.RawMessage            `json:"recommendations,omitempty"`
	AIInsights          struct {
		Narrative string `json:"narrative"`
	} `json:"ai_insights"`
	Disclaimer string `json:"disclaimer"`
}

type investorReportEnvelope struct {
	Status string          `json:"status"`
	Report *InvestorReport `json:"report"`
}

// ParseInvestorReport validates a report endpoint response body.
func ParseInvestorReport(data []byte) (*InvestorReport, error) {
	var env investorReportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &SchemaError{Field: "(root)", Reason: "is not valid JSON: " + err.Error()}
	}
	if env.Report == nil {
		return nil, &SchemaError{Field: "report", Reason: "is missing"}
	}
	return env.Report, nil
}

// HistoryEntry is one past analysis as recorded server-side.
type HistoryEntry struct {
	ID             int64  `json:"id"`
	BusinessName   string `json:"business_name"`
	BusinessType   string `json:"business_type"`
	Timestamp      string `json:"timestamp"`
	RiskLevel      string `json:"risk_level"`
	ReportLanguage string `json:"report_language"`
}

type historyEnvelope struct {
	Status  string         `json:"status"`
	History []HistoryEntry `json:"history"`
}

// ParseHistory validates a history endpoint response body.
func ParseHistory(data []byte) ([]HistoryEntry, error) {
	var env historyEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &SchemaError{Field: "(root)", Reason: "is not valid JSON: " + err.Error()}
	}
	if env.History == nil {
		return nil, &SchemaError{Field: "history", Reason: "is missing"}
	}
	return env.History, nil
}
