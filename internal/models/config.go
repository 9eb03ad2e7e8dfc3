// internal/models/config.go

package models

import (
	"fmt"
	"time"
)

// DefaultLogonTimeout applies when logon_timeout is missing or not positive.
const DefaultLogonTimeout = 30 * time.Second

// Settings are the global values every launch can reference.
type Settings struct {
	ACSExePath   string `json:"acs_exe_path"`
	ACSJarPath   string `json:"acs_jar_path"`
	JavaPath     string `json:"java_path"`
	JavaOpts     string `json:"java_opts"`
	LogonCmd     string `json:"logon_cmd"`
	LogonTimeout int    `json:"logon_timeout"` // seconds
}

// LogonTimeoutDuration returns the configured logon timeout.
func (s Settings) LogonTimeoutDuration() time.Duration {
	if s.LogonTimeout <= 0 {
		return DefaultLogonTimeout
	}
	return time.Duration(s.LogonTimeout) * time.Second
}

// LogonTemplate picks the function's own logon template over the global one.
func (s Settings) LogonTemplate(fn *Function) string {
	if fn.LogonCmd != "" {
		return fn.LogonCmd
	}
	return s.LogonCmd
}

// Config is the whole per-user document.
type Config struct {
	Settings
	Systems      []System   `json:"systems"`
	Functions    []Function `json:"functions"`
	LastSystem   string     `json:"last_system"`
	LastUser     string     `json:"last_user"`
	LastFunction string     `json:"last_function"`
}

// Validate checks the record invariants: non-empty, unique names and ids.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Systems))
	for i := range c.Systems {
		s := &c.Systems[i]
		if err := s.Validate(); err != nil {
			return err
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate system name %q", s.Name)
		}
		seen[s.Name] = true
	}

	seen = make(map[string]bool, len(c.Functions))
	for i := range c.Functions {
		f := &c.Functions[i]
		if err := f.Validate(); err != nil {
			return err
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate function id %q", f.ID)
		}
		seen[f.ID] = true
	}
	return nil
}
