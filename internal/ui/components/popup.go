package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"acsLauncher/internal/ui"
)

type PopupType int

const (
	PopupNone PopupType = iota
	PopupPassword
	PopupManagePassword
	PopupMessage
)

type Popup struct {
	Type         PopupType
	Title        string
	Message      string
	Input        textinput.Model
	Save         bool // zapis hasła w keyringu
	ShowSave     bool
	Width        int
	Height       int
	ScreenWidth  int
	ScreenHeight int
}

func NewPopup(popupType PopupType, title, message string, width, height, screenWidth, screenHeight int) *Popup {
	input := textinput.New()
	input.Placeholder = "Enter value..."
	input.Focus()

	return &Popup{
		Type:         popupType,
		Title:        title,
		Message:      message,
		Input:        input,
		Width:        width,
		Height:       height,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// NewPasswordPopup builds the masked password prompt. showSave adds the
// "save to keyring" toggle.
func NewPasswordPopup(system, user string, showSave bool, screenWidth, screenHeight int) *Popup {
	p := NewPopup(PopupPassword, "Password", "Password for "+user+"@"+system, 50, 9, screenWidth, screenHeight)
	p.Input.Placeholder = "password"
	p.Input.EchoMode = textinput.EchoPassword
	p.Input.EchoCharacter = '•'
	p.ShowSave = showSave
	return p
}

// Value returns the typed text.
func (p *Popup) Value() string {
	return p.Input.Value()
}

// ToggleSave flips the keyring toggle.
func (p *Popup) ToggleSave() {
	if p.ShowSave {
		p.Save = !p.Save
	}
}

func (p *Popup) Render() string {
	// Style dla popupu
	popupStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Border).
		Padding(1, 2).
		Width(p.Width).
		Height(p.Height)

	// Style dla tytułu
	titleStyle := ui.TitleStyle.
		Align(lipgloss.Center).
		Width(p.Width - 4)

	// Budowanie zawartości popupu
	var content strings.Builder
	content.WriteString(titleStyle.Render(p.Title) + "\n\n")
	content.WriteString(p.Message + "\n")

	if p.Type == PopupPassword {
		content.WriteString("\n" + p.Input.View() + "\n")
		if p.ShowSave {
			box := "[ ]"
			if p.Save {
				box = "[x]"
			}
			content.WriteString("\n" + ui.LabelStyle.Render(box+" Save to keyring"))
		}
	}

	// Dodaj informację o klawiszach
	var keys string
	switch p.Type {
	case PopupManagePassword:
		keys = "u - Update, r - Remove, ESC - Cancel"
	case PopupMessage:
		keys = "ESC/ENTER - Close"
	case PopupPassword:
		if p.ShowSave {
			keys = "ENTER - Confirm, TAB - Save toggle, ESC - Cancel"
		} else {
			keys = "ENTER - Confirm, ESC - Cancel"
		}
	default:
		keys = "ENTER - Confirm, ESC - Cancel"
	}
	content.WriteString("\n" + ui.DescriptionStyle.Render(keys))

	// Renderowanie popupu
	popupContent := popupStyle.Render(content.String())

	// Wyśrodkowanie popupu na ekranie
	return lipgloss.Place(
		p.ScreenWidth,
		p.ScreenHeight,
		lipgloss.Center,
		lipgloss.Center,
		popupContent,
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")),
	)
}
