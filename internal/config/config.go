// internal/config/config.go

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	apperrors "acsLauncher/internal/error"
	"acsLauncher/internal/models"
	"acsLauncher/internal/utils"
)

const (
	DefaultConfigFileName = "config.json"
	DefaultConfigDir      = ".config/rm-acs-launcher"
	DefaultEnvFileName    = "launcher.env"
	DefaultLogFileName    = "launcher.log"
	DefaultFilePerms      = 0600
)

// Zmienne środowiskowe nadpisujące ustawienia narzędzi
const (
	EnvConfigPath = "ACSL_CONFIG"
	EnvACSExePath = "ACSL_ACS_EXE_PATH"
	EnvACSJarPath = "ACSL_ACS_JAR_PATH"
	EnvJavaPath   = "ACSL_JAVA_PATH"
	EnvJavaOpts   = "ACSL_JAVA_OPTS"
	EnvLogonCmd   = "ACSL_LOGON_CMD"
)

type Manager struct {
	configPath string
	config     *models.Config
	env        models.Settings // nadpisania z ACSL_*, nigdy nie zapisywane
}

// NewManager tworzy nowego menedżera konfiguracji
func NewManager(configPath string) *Manager {
	if configPath == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err == nil {
			configPath = defaultPath
		} else {
			// Fallback do bieżącego katalogu jeśli nie można uzyskać ścieżki domowej
			configPath = DefaultConfigFileName
		}
	}

	return &Manager{
		configPath: configPath,
		config:     Defaults(),
	}
}

// Path returns the config file location.
func (m *Manager) Path() string {
	return m.configPath
}

// Load wczytuje konfigurację z pliku.
//
// Every top-level key found in the file replaces the default for that key.
// A missing file is written out with the defaults. When the file cannot be
// read or parsed the defaults stay in effect and the error is returned so the
// caller can show a warning.
func (m *Manager) Load() error {
	m.config = Defaults()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.Save()
		}
		return apperrors.New(apperrors.ConfigError, "Cannot read configuration, using defaults",
			fmt.Errorf("failed to read config file: %v", err))
	}

	if err := checkSchema(data); err != nil {
		return apperrors.New(apperrors.ConfigError, "Configuration file is corrupt, using defaults",
			fmt.Errorf("config file does not match schema: %v", err))
	}

	merged, err := overlay(Defaults(), data)
	if err != nil {
		return apperrors.New(apperrors.ConfigError, "Configuration file is corrupt, using defaults",
			fmt.Errorf("failed to parse config file: %v", err))
	}
	m.config = merged

	if err := m.config.Validate(); err != nil {
		return apperrors.New(apperrors.ValidationError, "Configuration has invalid entries", err)
	}
	return nil
}

// overlay replaces each top-level key of defaults present in data. Keys are
// swapped whole: a saved "functions" list replaces the default list.
func overlay(defaults *models.Config, data []byte) (*models.Config, error) {
	var saved map[string]json.RawMessage
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}

	base, err := json.Marshal(defaults)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for key := range fields {
		if raw, ok := saved[key]; ok && string(raw) != "null" {
			fields[key] = raw
		}
	}

	combined, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	cfg := &models.Config{}
	if err := json.Unmarshal(combined, cfg); err != nil {
		return nil, err
	}
	if cfg.Systems == nil {
		cfg.Systems = []models.System{}
	}
	return cfg, nil
}

// Save zapisuje konfigurację do pliku
func (m *Manager) Save() error {
	configDir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return apperrors.New(apperrors.ConfigError, "Cannot save configuration",
			fmt.Errorf("failed to create config directory: %v", err))
	}

	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return apperrors.New(apperrors.ConfigError, "Cannot save configuration",
			fmt.Errorf("failed to marshal config: %v", err))
	}

	if err := os.WriteFile(m.configPath, data, DefaultFilePerms); err != nil {
		return apperrors.New(apperrors.ConfigError, "Cannot save configuration",
			fmt.Errorf("failed to write config file: %v", err))
	}
	return nil
}

// Config returns the document as stored on disk, without env overrides.
func (m *Manager) Config() *models.Config {
	return m.config
}

// Settings returns a copy of the global settings with env overrides applied.
func (m *Manager) Settings() models.Settings {
	s := m.config.Settings
	s.ACSExePath = utils.FirstNonEmpty(m.env.ACSExePath, s.ACSExePath)
	s.ACSJarPath = utils.FirstNonEmpty(m.env.ACSJarPath, s.ACSJarPath)
	s.JavaPath = utils.FirstNonEmpty(m.env.JavaPath, s.JavaPath)
	s.JavaOpts = utils.FirstNonEmpty(m.env.JavaOpts, s.JavaOpts)
	s.LogonCmd = utils.FirstNonEmpty(m.env.LogonCmd, s.LogonCmd)
	return s
}

// GetSystems zwraca listę wszystkich systemów
func (m *Manager) GetSystems() []models.System {
	return m.config.Systems
}

// GetFunctions zwraca listę wszystkich funkcji
func (m *Manager) GetFunctions() []models.Function {
	return m.config.Functions
}

// GetSystem szuka systemu po nazwie
func (m *Manager) GetSystem(name string) (*models.System, bool) {
	for i := range m.config.Systems {
		if m.config.Systems[i].Name == name {
			return m.config.Systems[i].Clone(), true
		}
	}
	return nil, false
}

// GetFunction szuka funkcji po identyfikatorze
func (m *Manager) GetFunction(id string) (*models.Function, bool) {
	for i := range m.config.Functions {
		if m.config.Functions[i].ID == id {
			return m.config.Functions[i].Clone(), true
		}
	}
	return nil, false
}

// Favourites returns the functions flagged as favourites, in config order.
func (m *Manager) Favourites() []models.Function {
	var favs []models.Function
	for _, fn := range m.config.Functions {
		if fn.IsFavourite {
			favs = append(favs, fn)
		}
	}
	return favs
}

// LastSelection returns the persisted system, user and function.
func (m *Manager) LastSelection() (system, user, function string) {
	return m.config.LastSystem, m.config.LastUser, m.config.LastFunction
}

// SetLastSelection remembers the selection and saves the file.
func (m *Manager) SetLastSelection(system, user, function string) error {
	m.config.LastSystem = system
	m.config.LastUser = user
	m.config.LastFunction = function
	return m.Save()
}

// ApplyEnv reads tool setting overrides from ACSL_* environment variables.
// They are visible through Settings only and are never written by Save.
func (m *Manager) ApplyEnv() {
	m.env = models.Settings{}
	s := &m.env
	for env, target := range map[string]*string{
		EnvACSExePath: &s.ACSExePath,
		EnvACSJarPath: &s.ACSJarPath,
		EnvJavaPath:   &s.JavaPath,
		EnvJavaOpts:   &s.JavaOpts,
		EnvLogonCmd:   &s.LogonCmd,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*target = v
		}
	}
}

// LoadEnvFile loads KEY=value pairs into the environment. Variables already
// set win, and a missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return apperrors.New(apperrors.ConfigError, "Cannot read "+filepath.Base(path),
			fmt.Errorf("failed to load env file: %v", err))
	}
	return nil
}

func GetDefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get home directory: %v", err)
	}

	// Utwórz katalog konfiguracyjny jeśli nie istnieje
	configDir := filepath.Join(homeDir, DefaultConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory: %v", err)
	}

	return filepath.Join(configDir, DefaultConfigFileName), nil
}

// ResolveConfigPath picks the -config flag, then ACSL_CONFIG, then the
// default location.
func ResolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	path, err := GetDefaultConfigPath()
	if err != nil {
		return DefaultConfigFileName
	}
	return path
}

// SiblingPath returns name placed in the same directory as the config file.
func SiblingPath(configPath, name string) string {
	return filepath.Join(filepath.Dir(configPath), name)
}
