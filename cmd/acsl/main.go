package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"acsLauncher/internal/config"
	"acsLauncher/internal/credentials"
	apperrors "acsLauncher/internal/error"
	"acsLauncher/internal/launch"
	"acsLauncher/internal/logging"
	"acsLauncher/internal/process"
	"acsLauncher/internal/ui"
	"acsLauncher/internal/ui/views"
)

type options struct {
	configPath string
	logPath    string
	system     string
	user       string
	function   string
	openACS    bool
	list       bool
	verbose    bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configPath, "config", "", "path to config.json (default ~/"+config.DefaultConfigDir+"/"+config.DefaultConfigFileName+")")
	flag.StringVar(&o.logPath, "log", "", "path to the log file (default next to the config file)")
	flag.StringVar(&o.system, "system", "", "launch non-interactively on this system")
	flag.StringVar(&o.user, "user", "", "user for -system (may be omitted when the system has one user)")
	flag.StringVar(&o.function, "function", "", "function id to launch with -system")
	flag.BoolVar(&o.openACS, "acs", false, "open the ACS main window and exit")
	flag.BoolVar(&o.list, "list", false, "list configured systems and functions and exit")
	flag.BoolVar(&o.verbose, "verbose", false, "with -system, print debug logs to stderr instead of the log file")
	flag.Parse()
	return o
}

// programModel zamyka widok główny i wyświetla pożegnanie po wyjściu
type programModel struct {
	uiModel     *ui.Model
	currentView tea.Model
}

func (m *programModel) Init() tea.Cmd {
	return m.currentView.Init()
}

func (m *programModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.uiModel.IsQuitting() {
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.currentView, cmd = m.currentView.Update(msg)
	return m, cmd
}

func (m *programModel) View() string {
	if m.uiModel.IsQuitting() {
		return "Goodbye!\n"
	}
	return m.currentView.View()
}

func main() {
	os.Exit(run(parseFlags()))
}

func run(o options) int {
	configPath := config.ResolveConfigPath(o.configPath)

	// Plik .env obok konfiguracji
	if err := config.LoadEnvFile(config.SiblingPath(configPath, config.DefaultEnvFileName)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	logPath := o.logPath
	if logPath == "" {
		logPath = config.SiblingPath(configPath, config.DefaultLogFileName)
	}
	logger, closer, err := logging.OpenFile(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger = zerolog.Nop()
	} else {
		defer closer.Close()
	}

	cfg := config.NewManager(configPath)
	if err := cfg.Load(); err != nil {
		logger.Warn().Err(err).Str("path", configPath).Msg("configuration problem")
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg.ApplyEnv()
	logger.Info().Str("config", configPath).Int("systems", len(cfg.GetSystems())).
		Int("functions", len(cfg.GetFunctions())).Msg("launcher started")

	runner := process.NewRunner(logger)
	creds := credentials.NewKeyringStore()

	switch {
	case o.list:
		printInventory(os.Stdout, cfg)
		return 0
	case o.openACS:
		return openACS(runner, cfg)
	case o.system != "" || o.function != "":
		return launchOnce(o, cfg, creds, runner, logger)
	}

	return runTUI(cfg, creds, runner, logger)
}

func printInventory(w io.Writer, cfg *config.Manager) {
	var systemRows [][]string
	for _, s := range cfg.GetSystems() {
		systemRows = append(systemRows, []string{s.Name, s.DisplayName(), strings.Join(s.Users, ", ")})
	}
	fmt.Fprintln(w, ui.CreateLipglossTable([]string{"System", "Label", "Users"}, systemRows))

	var functionRows [][]string
	for _, fn := range cfg.GetFunctions() {
		logon := "no"
		if fn.NeedsAuthentication() {
			logon = "yes"
		}
		functionRows = append(functionRows, []string{fn.ID, fn.DisplayName(), logon, fn.LaunchCmd})
	}
	fmt.Fprintln(w, ui.CreateLipglossTable([]string{"ID", "Function", "Logon", "Command"}, functionRows))
}

func openACS(runner *process.Runner, cfg *config.Manager) int {
	command, ok := launch.ACSCommand(cfg.Settings())
	if !ok {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(launch.MsgNoACS))
		return 1
	}
	out := runner.SpawnDetached(context.Background(), command)
	if !out.OK {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(out.Message))
		return 1
	}
	fmt.Println(ui.SuccessStyle.Render(out.Message))
	return 0
}

// launchOnce runs one attempt without the TUI and reports on the terminal.
func launchOnce(o options, cfg *config.Manager, creds credentials.Store, runner *process.Runner, logger zerolog.Logger) int {
	system, ok := cfg.GetSystem(o.system)
	if !ok {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Unknown system '%s'", o.system)))
		return 1
	}
	fn, ok := cfg.GetFunction(o.function)
	if !ok {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Unknown function '%s'", o.function)))
		return 1
	}

	user := o.user
	if user == "" && len(system.Users) == 1 {
		user = system.Users[0]
	}
	if user != "" && !system.HasUser(user) {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("User '%s' is not configured for '%s'", user, system.DisplayName())))
		return 1
	}
	if ready, why := ui.CheckReady(system, user, fn); !ready {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(why))
		return 1
	}

	if o.verbose {
		logger = logging.Console(os.Stderr, zerolog.DebugLevel)
		runner.Logger = logger
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	presenter := ui.NewTerminalPresenter(os.Stdin, os.Stdout)
	session := launch.NewSession(runner, creds, presenter, logger)
	res := session.Launch(ctx, launch.Request{
		Settings: cfg.Settings(),
		System:   system,
		User:     user,
		Function: fn,
	})
	if res.Err != nil {
		// Anulowanie hasła to nie błąd uruchomienia
		if typ, ok := apperrors.TypeOf(res.Err); ok && typ == apperrors.UserCancelled {
			return 2
		}
		return 1
	}
	if err := cfg.SetLastSelection(system.Name, user, fn.ID); err != nil {
		logger.Warn().Err(err).Msg("cannot save last selection")
	}
	return 0
}

func runTUI(cfg *config.Manager, creds credentials.Store, runner *process.Runner, logger zerolog.Logger) int {
	uiModel := ui.NewModel(cfg, creds, runner, logger)

	// Ustaw domyślny rozmiar terminala
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		uiModel.SetTerminalSize(w, h)
	}

	m := &programModel{
		uiModel:     uiModel,
		currentView: views.NewMainView(uiModel),
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	uiModel.SetProgram(p)

	if _, err := p.Run(); err != nil {
		// Sprawdzamy specyficzne błędy, które możemy zignorować
		if !strings.Contains(err.Error(), "program was killed") &&
			!strings.Contains(err.Error(), "context canceled") {
			fmt.Printf("Error running program: %v\n", err)
			return 1
		}
	}
	uiModel.Quit()
	return 0
}
