package display

import "github.com/charmbracelet/lipgloss"

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6")).
		MarginTop(1)

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3B82F6")).
		Padding(0, 2).
		Width(76)

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Width(24)

	valueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E5E7EB")).
		Bold(true)

	narrativeStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F59E0B")).
		Padding(0, 2).
		Width(76)

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EF4444")).
		Bold(true)

	hintStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Italic(true)

	gaugeFilledStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	gaugeEmptyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#374151"))

	// Grade badge styles, best to worst
	gradeStyles = map[string]lipgloss.Style{
		"A": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		"B": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		"C": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
		"D": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
	}

	riskStyles = map[string]lipgloss.Style{
		"Low":    lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		"Medium": lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		"High":   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
	}
)
