// internal/ui/layout.go

package ui

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

// CreateLipglossTable tworzy tabelę lipgloss z odpowiednimi stylami
func CreateLipglossTable(headers []string, rows [][]string) string {
	tableStyle := func(row, col int) lipgloss.Style {
		switch {
		case row == ltable.HeaderRow:
			return lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(Highlight).
				Bold(true)
		default:
			return lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(Special)
		}
	}

	return ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Border)).
		StyleFunc(tableStyle).
		Headers(headers...).
		Rows(rows...).
		Render()
}

// PanelWidths splits the terminal width between the selector and details
// panels.
func PanelWidths(width int) (left, right int) {
	const (
		minPanel = 30
		frame    = 12 // ramki, padding i separator
	)
	usable := width - frame
	if usable < 2*minPanel {
		return minPanel, minPanel
	}
	left = usable / 2
	return left, usable - left
}
