// Package i18n holds the static label text for the two display
// languages. Only static copy lives here; the AI narrative arrives from
// the server already language-matched to the request.
package i18n

import "fmt"

// Language is a display-language tag.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
)

// Parse validates a language tag.
func Parse(s string) (Language, error) {
	switch Language(s) {
	case English:
		return English, nil
	case Hindi:
		return Hindi, nil
	default:
		return "", fmt.Errorf("unsupported language %q (supported: en, hi)", s)
	}
}

var labels = map[Language]map[string]string{
	English: {
		"app.tagline":             "SME financial health at a glance",
		"upload.title":            "Upload a statement",
		"upload.file":             "Path to your statement file (CSV, XLSX or PDF):",
		"upload.business_type":    "Business category:",
		"upload.language":         "Report language:",
		"upload.confirm":          "Submit this file for analysis?",
		"upload.submitting":       "Analyzing your statement...",
		"result.title":            "Analysis Result",
		"result.credit_readiness": "Credit Readiness",
		"result.score":            "Score",
		"result.grade":            "Grade",
		"result.summary":          "Financial Summary",
		"result.total_revenue":    "Total revenue",
		"result.net_cashflow":     "Net cashflow",
		"result.total_expenses":   "Total expenses",
		"result.avg_transaction":  "Avg. transaction",
		"result.projections":      "Cashflow Forecast",
		"result.proj_month":       "Month",
		"result.proj_revenue":     "Projected revenue",
		"result.proj_cashflow":    "Projected net cashflow",
		"result.risk":             "Risk Assessment",
		"result.products":         "Recommended Products",
		"result.tax":              "Tax Compliance",
		"result.ai_report":        "AI Insight",
		"error.title":             "Analysis failed",
		"error.retry_hint":        "Your file is still selected; you can retry without choosing it again.",
		"next.report":             "Generate investor report",
		"next.new_scan":           "Start a new scan",
		"next.retry":              "Retry with the same file",
		"next.change_file":        "Choose a different file",
		"next.exit":               "Exit",
	},
	Hindi: {
		"app.tagline":             "एक नज़र में SME वित्तीय स्वास्थ्य",
		"upload.title":            "स्टेटमेंट अपलोड करें",
		"upload.file":             "अपनी स्टेटमेंट फ़ाइल का पथ (CSV, XLSX या PDF):",
		"upload.business_type":    "व्यवसाय श्रेणी:",
		"upload.language":         "रिपोर्ट की भाषा:",
		"upload.confirm":          "विश्लेषण के लिए यह फ़ाइल भेजें?",
		"upload.submitting":       "आपके स्टेटमेंट का विश्लेषण हो रहा है...",
		"result.title":            "विश्लेषण परिणाम",
		"result.credit_readiness": "क्रेडिट तत्परता",
		"result.score":            "स्कोर",
		"result.grade":            "ग्रेड",
		"result.summary":          "वित्तीय सारांश",
		"result.total_revenue":    "कुल राजस्व",
		"result.net_cashflow":     "शुद्ध नकदी प्रवाह",
		"result.total_expenses":   "कुल खर्च",
		"result.avg_transaction":  "औसत लेन-देन",
		"result.projections":      "नकदी प्रवाह पूर्वानुमान",
		"result.proj_month":       "महीना",
		"result.proj_revenue":     "अनुमानित राजस्व",
		"result.proj_cashflow":    "अनुमानित शुद्ध नकदी प्रवाह",
		"result.risk":             "जोखिम आकलन",
		"result.products":         "अनुशंसित उत्पाद",
		"result.tax":              "कर अनुपालन",
		"result.ai_report":        "AI अंतर्दृष्टि",
		"error.title":             "विश्लेषण विफल रहा",
		"error.retry_hint":        "आपकी फ़ाइल अभी भी चयनित है; दोबारा चुने बिना पुनः प्रयास करें।",
		"next.report":             "निवेशक रिपोर्ट बनाएं",
		"next.new_scan":           "नया स्कैन शुरू करें",
		"next.retry":              "उसी फ़ाइल से पुनः प्रयास करें",
		"next.change_file":        "दूसरी फ़ाइल चुनें",
		"next.exit":               "बाहर निकलें",
	},
}

// T returns the label for key in lang, falling back to English, then to
// the key itself so a missing entry is visible instead of blank.
func T(lang Language, key string) string {
	if s, ok := labels[lang][key]; ok {
		return s
	}
	if s, ok := labels[English][key]; ok {
		return s
	}
	return key
}
