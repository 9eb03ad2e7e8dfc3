// internal/ui/models.go

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"acsLauncher/internal/config"
	"acsLauncher/internal/credentials"
	"acsLauncher/internal/launch"
	"acsLauncher/internal/models"
	"acsLauncher/internal/process"
)

// KeyMap definiuje skróty klawiszowe
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Prev      key.Binding
	Next      key.Binding
	Launch    key.Binding
	LaunchACS key.Binding
	Favourite key.Binding
	Password  key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap zwraca domyślne ustawienia klawiszy
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "down"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "launch"),
		),
		LaunchACS: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "open ACS"),
		),
		Favourite: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "favourite"),
		),
		Password: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "password"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Favourite, k.Password, k.LaunchACS, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Launch, k.Favourite, k.LaunchACS},
		{k.Password, k.Theme, k.Help, k.Quit},
	}
}

// Status reprezentuje stan aplikacji
type Status struct {
	Message string
	IsError bool
}

// Model reprezentuje główny model aplikacji
type Model struct {
	keys      KeyMap
	status    Status
	config    *config.Manager
	creds     credentials.Store
	runner    *process.Runner
	session   *launch.Session
	logger    zerolog.Logger
	program   *tea.Program
	ctx       context.Context
	cancel    context.CancelFunc
	width     int
	height    int
	launching bool
	quitting  bool
}

// NewModel tworzy nowy model aplikacji. The session is created once the
// program is known, see SetProgram.
func NewModel(cfg *config.Manager, creds credentials.Store, runner *process.Runner, logger zerolog.Logger) *Model {
	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		keys:   DefaultKeyMap(),
		config: cfg,
		creds:  creds,
		runner: runner,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetProgram wires the launch session to the running program.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.SetSession(launch.NewSession(m.runner, m.creds, NewProgramPresenter(p), m.logger))
}

func (m *Model) SetSession(s *launch.Session) {
	m.session = s
}

func (m *Model) GetSession() *launch.Session {
	return m.session
}

func (m *Model) GetConfig() *config.Manager {
	return m.config
}

func (m *Model) GetCredentials() credentials.Store {
	return m.creds
}

func (m *Model) GetRunner() *process.Runner {
	return m.runner
}

func (m *Model) GetLogger() zerolog.Logger {
	return m.logger
}

func (m *Model) Keys() KeyMap {
	return m.keys
}

// Context ends when the application quits.
func (m *Model) Context() context.Context {
	return m.ctx
}

// SetStatus ustawia status aplikacji
func (m *Model) SetStatus(msg string, isError bool) {
	m.status = Status{
		Message: msg,
		IsError: isError,
	}
}

// ClearStatus czyści status
func (m *Model) ClearStatus() {
	m.status = Status{}
}

func (m *Model) GetStatus() Status {
	return m.status
}

// IsLaunching reports whether an attempt is in flight. Launch keys are
// ignored while it is set.
func (m *Model) IsLaunching() bool {
	return m.launching
}

func (m *Model) SetLaunching(v bool) {
	m.launching = v
}

func (m *Model) SetTerminalSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) GetTerminalWidth() int {
	return m.width
}

func (m *Model) GetTerminalHeight() int {
	return m.height
}

// Quit cancels pending prompts so no worker stays blocked on the UI.
func (m *Model) Quit() {
	m.quitting = true
	m.cancel()
}

func (m *Model) IsQuitting() bool {
	return m.quitting
}

// CheckReady runs the capability gate for a selection and returns the status
// message explaining why a launch is not possible.
func CheckReady(system *models.System, user string, fn *models.Function) (bool, string) {
	switch {
	case system == nil:
		return false, "No systems configured - add one to config.json"
	case user == "":
		return false, fmt.Sprintf("System '%s' has no users", system.DisplayName())
	case fn == nil:
		return false, "No functions configured"
	}
	if missing := models.MissingFields(system, fn); len(missing) > 0 {
		return false, fmt.Sprintf("System '%s' is missing required fields: %s",
			system.DisplayName(), strings.Join(missing, ", "))
	}
	return true, ""
}
