// internal/ui/themes.go

package ui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	Name string

	// Podstawowe kolory
	Subtle    lipgloss.Color
	Highlight lipgloss.Color
	Special   lipgloss.Color
	Error     lipgloss.Color
	StatusBar lipgloss.Color
	Border    lipgloss.Color

	// Kolory elementów menu i informacji
	ItemColor     lipgloss.Color
	InfotextColor lipgloss.Color
	HostColor     lipgloss.Color
	LabelColor    lipgloss.Color
	InputColor    lipgloss.Color
}

var (
	currentThemeIndex = 0

	themes = []Theme{
		{
			// Domyślny motyw
			Name:      "default",
			Subtle:    lipgloss.Color("#6C7086"),
			Highlight: lipgloss.Color("#7DC4E4"),
			Special:   lipgloss.Color("#FF9E64"),
			Error:     lipgloss.Color("#F38BA8"),
			StatusBar: lipgloss.Color("#E7E7E7"),
			Border:    lipgloss.Color("#33B2FF"),

			ItemColor:     lipgloss.Color("#FF3A99"),
			InfotextColor: lipgloss.Color("#FF3A99"),
			HostColor:     lipgloss.Color("#2DAFFF"),
			LabelColor:    lipgloss.Color("#A6ADC8"),
			InputColor:    lipgloss.Color("#FFFFFF"),
		},
		{
			// Dracula Classic
			Name:      "dracula",
			Subtle:    lipgloss.Color("#6272A4"), // Delikatny fioletowy
			Highlight: lipgloss.Color("#8BE9FD"), // Jasny cyan
			Special:   lipgloss.Color("#FF79C6"), // Różowy
			Error:     lipgloss.Color("#FF5555"), // Czerwony
			StatusBar: lipgloss.Color("#44475A"),
			Border:    lipgloss.Color("#BD93F9"), // Jasny fioletowy

			ItemColor:     lipgloss.Color("#50FA7B"), // Zielony
			InfotextColor: lipgloss.Color("#F1FA8C"), // Żółty
			HostColor:     lipgloss.Color("#8BE9FD"),
			LabelColor:    lipgloss.Color("#F8F8F2"),
			InputColor:    lipgloss.Color("#F8F8F2"),
		},
		{
			// Green screen, w klimacie terminala 5250
			Name:      "5250",
			Subtle:    lipgloss.Color("#2E7D32"),
			Highlight: lipgloss.Color("#39FF14"),
			Special:   lipgloss.Color("#FFFFFF"),
			Error:     lipgloss.Color("#FF5555"),
			StatusBar: lipgloss.Color("#1B5E20"),
			Border:    lipgloss.Color("#39FF14"),

			ItemColor:     lipgloss.Color("#7CFC00"),
			InfotextColor: lipgloss.Color("#00FFFF"),
			HostColor:     lipgloss.Color("#39FF14"),
			LabelColor:    lipgloss.Color("#A5D6A7"),
			InputColor:    lipgloss.Color("#FFFFFF"),
		},
		{
			// VSCodeDark
			Name:      "vscode",
			Subtle:    lipgloss.Color("#808080"),
			Highlight: lipgloss.Color("#569CD6"), // Niebieski VS Code
			Special:   lipgloss.Color("#CE9178"),
			Error:     lipgloss.Color("#F44747"),
			StatusBar: lipgloss.Color("#007ACC"),
			Border:    lipgloss.Color("#569CD6"),

			ItemColor:     lipgloss.Color("#DCDCAA"),
			InfotextColor: lipgloss.Color("#9CDCFE"),
			HostColor:     lipgloss.Color("#4EC9B0"),
			LabelColor:    lipgloss.Color("#D4D4D4"),
			InputColor:    lipgloss.Color("#FFFFFF"),
		},
	}
)

// SwitchTheme przełącza na następny motyw i aktualizuje wszystkie style
func SwitchTheme() string {
	currentThemeIndex = (currentThemeIndex + 1) % len(themes)
	currentTheme := themes[currentThemeIndex]
	updateStyles(currentTheme)
	return currentTheme.Name
}

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	return themes[currentThemeIndex]
}

func updateStyles(theme Theme) {
	// Aktualizacja podstawowych kolorów
	Subtle = theme.Subtle
	Highlight = theme.Highlight
	Special = theme.Special
	Error = theme.Error
	StatusBar = theme.StatusBar
	Border = theme.Border

	// Aktualizacja wszystkich stylów
	BaseStyle = lipgloss.NewStyle().
		Foreground(Subtle).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Border)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight).
		MarginLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(Highlight).
		Bold(true)

	ItemStyle = lipgloss.NewStyle().
		Foreground(theme.ItemColor)

	DescriptionStyle = lipgloss.NewStyle().
		Foreground(Subtle).
		MarginLeft(2)

	Infotext = lipgloss.NewStyle().
		Foreground(theme.InfotextColor)

	HostStyle = lipgloss.NewStyle().
		Foreground(theme.HostColor)

	LabelStyle = lipgloss.NewStyle().
		Foreground(theme.LabelColor)

	InputStyle = lipgloss.NewStyle().
		Foreground(theme.InputColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Highlight).
		Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(Special).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	NeutralStyle = lipgloss.NewStyle().
		Foreground(theme.LabelColor)

	LaunchingStyle = lipgloss.NewStyle().
		Foreground(Highlight).
		Bold(true)

	ButtonStyle = lipgloss.NewStyle().
		Foreground(Special).
		Bold(true)

	ButtonDisabledStyle = lipgloss.NewStyle().
		Foreground(Subtle).
		Bold(true)

	WindowStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
		Foreground(Highlight).
		Bold(true).
		Padding(0, 1)

	DialogStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	DialogTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(theme.InputColor).
		Background(StatusBar).
		Bold(true).
		Padding(0, 1)
}
