package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4F46E5"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748B"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#94A3B8"))

	statusStyles = map[string]lipgloss.Style{
		models.StatusInStock:    lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
		models.StatusLowStock:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		models.StatusOutOfStock: lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}
)

func renderStatus(status string) string {
	if s, ok := statusStyles[status]; ok {
		return s.Render(status)
	}
	return status
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(headers...)
}
