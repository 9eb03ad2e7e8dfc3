package views

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"acsLauncher/internal/credentials"
	"acsLauncher/internal/launch"
	"acsLauncher/internal/models"
	"acsLauncher/internal/placeholder"
	"acsLauncher/internal/ui"
	"acsLauncher/internal/ui/components"
	"acsLauncher/internal/ui/messages"
)

type field int

const (
	fieldSystem field = iota
	fieldUser
	fieldFunction
	fieldCount
)

// Do czego służy otwarty prompt hasła
type promptPurpose int

const (
	promptLaunch promptPurpose = iota
	promptStore
)

type mainView struct {
	model       *ui.Model
	systems     []models.System
	functions   []models.Function
	systemIdx   int
	userIdx     int
	functionIdx int
	focus       field
	gateMsg     string
	spinner     spinner.Model
	help        help.Model
	popup       *components.Popup
	width       int
	height      int

	// Otwarty prompt hasła
	pendingReply chan<- messages.PasswordReply
	promptFor    promptPurpose
	promptSystem string
	promptUser   string

	// Prompt logowania czekający na zamknięcie innego popupu
	queued *messages.PasswordPromptMsg
}

func NewMainView(model *ui.Model) *mainView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.LaunchingStyle

	cfg := model.GetConfig()
	v := &mainView{
		model:     model,
		systems:   cfg.GetSystems(),
		functions: cfg.GetFunctions(),
		spinner:   s,
		help:      help.New(),
		width:     model.GetTerminalWidth(),
		height:    model.GetTerminalHeight(),
	}
	v.restoreLastSelection()
	v.refreshReadiness()
	return v
}

func (v *mainView) restoreLastSelection() {
	lastSystem, lastUser, lastFunction := v.model.GetConfig().LastSelection()
	for i, s := range v.systems {
		if s.Name == lastSystem {
			v.systemIdx = i
			for j, u := range s.Users {
				if u == lastUser {
					v.userIdx = j
				}
			}
		}
	}
	for i, fn := range v.functions {
		if fn.ID == lastFunction {
			v.functionIdx = i
		}
	}
}

func (v *mainView) Init() tea.Cmd {
	return nil
}

func (v *mainView) selectedSystem() *models.System {
	if v.systemIdx < 0 || v.systemIdx >= len(v.systems) {
		return nil
	}
	return &v.systems[v.systemIdx]
}

func (v *mainView) selectedUser() string {
	sys := v.selectedSystem()
	if sys == nil || v.userIdx < 0 || v.userIdx >= len(sys.Users) {
		return ""
	}
	return sys.Users[v.userIdx]
}

func (v *mainView) selectedFunction() *models.Function {
	if v.functionIdx < 0 || v.functionIdx >= len(v.functions) {
		return nil
	}
	return &v.functions[v.functionIdx]
}

// refreshReadiness shows or clears the capability gate message for the
// current selection without overwriting launch results.
func (v *mainView) refreshReadiness() bool {
	ok, why := ui.CheckReady(v.selectedSystem(), v.selectedUser(), v.selectedFunction())
	if !ok {
		v.gateMsg = why
		v.model.SetStatus(why, true)
		return false
	}
	if v.gateMsg != "" && v.model.GetStatus().Message == v.gateMsg {
		v.model.ClearStatus()
	}
	v.gateMsg = ""
	return true
}

func (v *mainView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keys := v.model.Keys()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.help.Width = msg.Width
		v.model.SetTerminalSize(msg.Width, msg.Height)
		return v, nil

	case messages.StatusMsg:
		v.model.SetStatus(msg.Text, msg.IsError)
		return v, nil

	case messages.PasswordPromptMsg:
		if v.pendingReply != nil || v.queued != nil {
			// Tylko jeden prompt naraz
			msg.Reply <- messages.PasswordReply{}
			return v, nil
		}
		if v.popup != nil {
			v.queued = &msg
			return v, nil
		}
		return v, v.openLaunchPrompt(msg)

	case messages.LaunchFinishedMsg:
		v.model.SetLaunching(false)
		return v, nil

	case spinner.TickMsg:
		if !v.model.IsLaunching() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		if v.popup != nil {
			return v.handlePopupKey(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			v.model.Quit()
			return v, tea.Quit

		case key.Matches(msg, keys.Up):
			v.focus = (v.focus + fieldCount - 1) % fieldCount
			return v, nil

		case key.Matches(msg, keys.Down):
			v.focus = (v.focus + 1) % fieldCount
			return v, nil

		case key.Matches(msg, keys.Prev):
			v.cycle(-1)
			v.refreshReadiness()
			return v, nil

		case key.Matches(msg, keys.Next):
			v.cycle(1)
			v.refreshReadiness()
			return v, nil

		case key.Matches(msg, keys.Launch):
			return v.launch(v.selectedFunction())

		case key.Matches(msg, keys.Favourite):
			return v.launchFavourite(msg.String())

		case key.Matches(msg, keys.LaunchACS):
			return v.launchACS()

		case key.Matches(msg, keys.Password):
			return v.managePassword()

		case key.Matches(msg, keys.Theme):
			name := ui.SwitchTheme()
			v.spinner.Style = ui.LaunchingStyle
			v.model.SetStatus("Theme: "+name, false)
			return v, nil

		case key.Matches(msg, keys.Help):
			v.help.ShowAll = !v.help.ShowAll
			return v, nil
		}
	}

	return v, nil
}

func wrap(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

func (v *mainView) cycle(delta int) {
	switch v.focus {
	case fieldSystem:
		v.systemIdx = wrap(v.systemIdx, delta, len(v.systems))
		v.userIdx = 0
	case fieldUser:
		if sys := v.selectedSystem(); sys != nil {
			v.userIdx = wrap(v.userIdx, delta, len(sys.Users))
		}
	case fieldFunction:
		v.functionIdx = wrap(v.functionIdx, delta, len(v.functions))
	}
}

// launch starts one attempt for fn on the worker goroutine.
func (v *mainView) launch(fn *models.Function) (tea.Model, tea.Cmd) {
	if v.model.IsLaunching() {
		return v, nil
	}
	system, user := v.selectedSystem(), v.selectedUser()
	if ok, why := ui.CheckReady(system, user, fn); !ok {
		v.model.SetStatus(why, true)
		return v, nil
	}

	cfg := v.model.GetConfig()
	if err := cfg.SetLastSelection(system.Name, user, fn.ID); err != nil {
		log := v.model.GetLogger()
		log.Warn().Err(err).Msg("cannot save last selection")
	}

	session := v.model.GetSession()
	if session == nil {
		v.model.SetStatus("Launcher is not ready", true)
		return v, nil
	}

	req := launch.Request{
		Settings: cfg.Settings(),
		System:   system.Clone(),
		User:     user,
		Function: fn.Clone(),
	}
	v.model.SetLaunching(true)
	v.model.SetStatus(launch.MsgLaunching, false)
	results := session.Start(v.model.Context(), req)

	return v, tea.Batch(v.spinner.Tick, waitForResult(results))
}

func waitForResult(results <-chan launch.Result) tea.Cmd {
	return func() tea.Msg {
		res := <-results
		return messages.LaunchFinishedMsg{OK: res.Outcome.OK, Err: res.Err}
	}
}

func (v *mainView) launchFavourite(digit string) (tea.Model, tea.Cmd) {
	favs := v.model.GetConfig().Favourites()
	n := int(digit[0] - '0')
	if n < 1 || n > len(favs) {
		v.model.SetStatus(fmt.Sprintf("No favourite #%d", n), true)
		return v, nil
	}
	fav := favs[n-1]
	for i := range v.functions {
		if v.functions[i].ID == fav.ID {
			v.functionIdx = i
		}
	}
	return v.launch(&fav)
}

// launchACS opens the bare ACS main window without any system selected.
func (v *mainView) launchACS() (tea.Model, tea.Cmd) {
	command, ok := launch.ACSCommand(v.model.GetConfig().Settings())
	if !ok {
		v.model.SetStatus(launch.MsgNoACS, true)
		return v, nil
	}
	v.model.SetStatus("Launching ACS...", false)

	runner, ctx := v.model.GetRunner(), v.model.Context()
	return v, func() tea.Msg {
		out := runner.SpawnDetached(ctx, command)
		return messages.StatusMsg{Text: out.Message, IsError: !out.OK}
	}
}

func (v *mainView) managePassword() (tea.Model, tea.Cmd) {
	system, user := v.selectedSystem(), v.selectedUser()
	if system == nil || user == "" {
		v.model.SetStatus("Select a system and user first", true)
		return v, nil
	}
	v.promptSystem, v.promptUser = system.Name, user

	exists, err := v.model.GetCredentials().Exists(system.Name, user)
	if err != nil {
		v.model.SetStatus(fmt.Sprintf("Keyring error: %v", err), true)
		return v, nil
	}
	if exists {
		v.popup = components.NewPopup(
			components.PopupManagePassword,
			"Password for "+credentials.Account(system.Name, user),
			"A password is stored in the keyring.\nWhat would you like to do?",
			50,
			8,
			v.width,
			v.height,
		)
		return v, nil
	}
	return v.openStorePrompt()
}

func (v *mainView) openStorePrompt() (tea.Model, tea.Cmd) {
	v.promptFor = promptStore
	v.popup = components.NewPasswordPopup(v.promptSystem, v.promptUser, false, v.width, v.height)
	return v, textinput.Blink
}

func (v *mainView) openLaunchPrompt(msg messages.PasswordPromptMsg) tea.Cmd {
	v.pendingReply = msg.Reply
	v.promptFor = promptLaunch
	v.popup = components.NewPasswordPopup(msg.System, msg.User, true, v.width, v.height)
	return textinput.Blink
}

// closePopup closes the current popup and opens a queued logon prompt.
func (v *mainView) closePopup() tea.Cmd {
	v.popup = nil
	if v.queued == nil {
		return nil
	}
	next := *v.queued
	v.queued = nil
	return v.openLaunchPrompt(next)
}

func (v *mainView) reply(r messages.PasswordReply) {
	if v.pendingReply != nil {
		v.pendingReply <- r
		v.pendingReply = nil
	}
}

func (v *mainView) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch v.popup.Type {
	case components.PopupMessage:
		switch msg.String() {
		case "esc", "enter":
			return v, v.closePopup()
		}
		return v, nil

	case components.PopupManagePassword:
		switch msg.String() {
		case "u", "U":
			return v.openStorePrompt()
		case "r", "R":
			clear := v.clearPassword(v.promptSystem, v.promptUser)
			return v, tea.Batch(clear, v.closePopup())
		case "esc":
			return v, v.closePopup()
		}
		return v, nil

	case components.PopupPassword:
		switch msg.String() {
		case "ctrl+c":
			v.reply(messages.PasswordReply{})
			if v.queued != nil {
				v.queued.Reply <- messages.PasswordReply{}
				v.queued = nil
			}
			v.popup = nil
			v.model.Quit()
			return v, tea.Quit

		case "esc":
			if v.promptFor == promptLaunch {
				v.reply(messages.PasswordReply{})
			}
			return v, v.closePopup()

		case "tab":
			v.popup.ToggleSave()
			return v, nil

		case "enter":
			password, save := v.popup.Value(), v.popup.Save
			if v.promptFor == promptLaunch {
				// Puste hasło też jest odpowiedzią, anuluje tylko ESC
				v.reply(messages.PasswordReply{Password: password, Persist: save, OK: true})
				return v, v.closePopup()
			}
			if password == "" {
				return v, v.closePopup()
			}
			store := v.storePassword(v.promptSystem, v.promptUser, password)
			return v, tea.Batch(store, v.closePopup())
		}

		var cmd tea.Cmd
		v.popup.Input, cmd = v.popup.Input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *mainView) storePassword(system, user, password string) tea.Cmd {
	creds, session := v.model.GetCredentials(), v.model.GetSession()
	return func() tea.Msg {
		if err := creds.Store(system, user, password); err != nil {
			return messages.StatusMsg{Text: fmt.Sprintf("Keyring error: %v", err), IsError: true}
		}
		if session != nil {
			session.ForgetLogon(system, user)
		}
		return messages.StatusMsg{Text: "Password updated for " + credentials.Account(system, user)}
	}
}

func (v *mainView) clearPassword(system, user string) tea.Cmd {
	creds, session := v.model.GetCredentials(), v.model.GetSession()
	return func() tea.Msg {
		if _, err := creds.Clear(system, user); err != nil {
			return messages.StatusMsg{Text: fmt.Sprintf("Keyring error: %v", err), IsError: true}
		}
		if session != nil {
			session.ForgetLogon(system, user)
		}
		return messages.StatusMsg{Text: "Password removed for " + credentials.Account(system, user)}
	}
}

func (v *mainView) View() string {
	var content strings.Builder
	content.WriteString(ui.TitleStyle.Render("ACS Launcher") + "\n\n")

	leftWidth, rightWidth := ui.PanelWidths(v.width)
	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		v.renderSelectionPanel(leftWidth),
		"  ",
		v.renderDetailsPanel(rightWidth),
	)
	content.WriteString(mainContent + "\n")

	if favs := v.renderFavourites(); favs != "" {
		content.WriteString("\n" + favs + "\n")
	}

	content.WriteString("\n" + v.renderStatusBar() + "\n\n")
	content.WriteString(v.help.View(v.model.Keys()))

	framedContent := ui.WindowStyle.Render(content.String())

	if v.popup != nil {
		return v.popup.Render()
	}
	return framedContent
}

func (v *mainView) renderSelectionPanel(width int) string {
	row := func(f field, label, value string) string {
		prefix := "  "
		text := ui.ItemStyle.Render(value)
		if f == v.focus {
			prefix = ui.SuccessStyle.Render("❯ ")
			text = ui.SelectedItemStyle.Render("‹ " + value + " ›")
		}
		return fmt.Sprintf("\n%s%s %s", prefix, ui.LabelStyle.Render(fmt.Sprintf("%-9s", label)), text)
	}

	systemName, functionName := "-", "-"
	if sys := v.selectedSystem(); sys != nil {
		systemName = sys.DisplayName()
	}
	if fn := v.selectedFunction(); fn != nil {
		functionName = fn.DisplayName()
	}
	user := v.selectedUser()
	if user == "" {
		user = "-"
	}

	var content strings.Builder
	content.WriteString(ui.PanelTitleStyle.Render("Launch"))
	content.WriteString(row(fieldSystem, "System:", systemName))
	content.WriteString(row(fieldUser, "User:", user))
	content.WriteString(row(fieldFunction, "Function:", functionName))
	content.WriteString("\n\n  " + v.renderLaunchButton())

	return ui.PanelStyle.Width(width).Render(content.String())
}

func (v *mainView) renderLaunchButton() string {
	switch {
	case v.model.IsLaunching():
		return ui.ButtonDisabledStyle.Render("[ Launching... ]")
	case v.gateMsg != "":
		return ui.ButtonDisabledStyle.Render("[ Launch ]")
	default:
		return ui.ButtonStyle.Render("[ Launch ]")
	}
}

func (v *mainView) renderDetailsPanel(width int) string {
	var content strings.Builder
	content.WriteString(ui.PanelTitleStyle.Render("Details"))

	detail := func(label, value string) {
		content.WriteString(fmt.Sprintf("\n  %s %s", ui.LabelStyle.Render(label), ui.Infotext.Render(value)))
	}

	if sys := v.selectedSystem(); sys != nil {
		detail("Host:", sys.Name)
		for _, name := range sortedKeys(sys.Fields) {
			detail(name+":", sys.Fields[name])
		}
	} else {
		content.WriteString("\n" + ui.DescriptionStyle.Render("No systems configured.\nAdd them to "+v.model.GetConfig().Path()))
	}

	if fn := v.selectedFunction(); fn != nil {
		content.WriteString("\n")
		detail("Command:", fn.LaunchCmd)
		if tokens := placeholder.Tokens(fn.LaunchCmd); len(tokens) > 0 {
			detail("Uses:", strings.Join(tokens, ", "))
		}
		logon := "no"
		if fn.NeedsAuthentication() {
			logon = "yes"
		}
		detail("Logon:", logon)
		if len(fn.SystemFields) > 0 {
			detail("Needs:", strings.Join(fn.SystemFields, ", "))
		}
	}

	return ui.PanelStyle.Width(width).Render(content.String())
}

func (v *mainView) renderFavourites() string {
	favs := v.model.GetConfig().Favourites()
	if len(favs) == 0 {
		return ""
	}
	var parts []string
	for i, fn := range favs {
		if i >= 9 {
			break
		}
		parts = append(parts, ui.ButtonStyle.Render(fmt.Sprintf("%d", i+1))+" "+ui.ItemStyle.Render(fn.DisplayName()))
	}
	return ui.LabelStyle.Render("Favourites: ") + strings.Join(parts, "   ")
}

func (v *mainView) renderStatusBar() string {
	status := v.model.GetStatus()
	var text string
	switch {
	case status.Message == "":
		text = ui.DescriptionStyle.Render("Ready")
	case status.IsError:
		text = ui.ErrorStyle.Render(status.Message)
	default:
		text = ui.SuccessStyle.Render(status.Message)
	}
	if v.model.IsLaunching() {
		text = v.spinner.View() + " " + text
	}
	return text
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
