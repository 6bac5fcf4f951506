package viz

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	LabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	AccentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	HelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

// ReportBlock renders label/value rows as a bordered panel.
func ReportBlock(title string, rows [][2]string) string {
	out := HeaderStyle.Render(title) + "\n"
	for _, row := range rows {
		out += LabelStyle.Render(row[0]) + ValueStyle.Render(row[1]) + "\n"
	}
	return PanelStyle.Render(out)
}
