// internal/ui/styles.go

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Kolory, ustawiane przez aktywny motyw
	Subtle    lipgloss.Color
	Highlight lipgloss.Color
	Special   lipgloss.Color
	Error     lipgloss.Color
	StatusBar lipgloss.Color
	Border    lipgloss.Color

	BaseStyle         lipgloss.Style
	TitleStyle        lipgloss.Style
	SelectedItemStyle lipgloss.Style
	ItemStyle         lipgloss.Style
	DescriptionStyle  lipgloss.Style
	Infotext          lipgloss.Style
	HostStyle         lipgloss.Style
	LabelStyle        lipgloss.Style
	InputStyle        lipgloss.Style

	// Statusy
	SuccessStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	NeutralStyle   lipgloss.Style
	LaunchingStyle lipgloss.Style

	// Przyciski
	ButtonStyle         lipgloss.Style
	ButtonDisabledStyle lipgloss.Style

	// Kontenery
	WindowStyle      lipgloss.Style
	PanelStyle       lipgloss.Style
	PanelTitleStyle  lipgloss.Style
	DialogStyle      lipgloss.Style
	DialogTitleStyle lipgloss.Style
	StatusBarStyle   lipgloss.Style
)

func init() {
	updateStyles(themes[currentThemeIndex])
}

// GetMaxWidth zwraca maksymalną szerokość tekstu w slice'u
func GetMaxWidth(items []string) int {
	maxWidth := 0
	for _, item := range items {
		if w := lipgloss.Width(item); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// CenterText centruje tekst w danej szerokości
func CenterText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
