// internal/models/function.go

package models

import (
	"errors"
	"strings"
)

// PasswordToken is the placeholder that forces a password lookup even when a
// function is not flagged as requiring a logon.
const PasswordToken = "{password}"

// Function is a launchable capability: a command template plus the fields
// and authentication it needs.
type Function struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	LaunchCmd     string   `json:"launch_cmd"`
	LogonCmd      string   `json:"logon_cmd,omitempty"` // overrides the global logon template
	RequiresLogon bool     `json:"requires_logon"`
	SystemFields  []string `json:"system_fields"`
	IsFavourite   bool     `json:"is_favourite,omitempty"`
	IconPath      string   `json:"icon_path,omitempty"`
}

// ReferencesPassword reports whether the launch template uses {password}.
func (f *Function) ReferencesPassword() bool {
	return strings.Contains(f.LaunchCmd, PasswordToken)
}

// NeedsAuthentication reports whether a launch of f needs a password and a
// logon: either it is flagged, or its launch template references {password}.
func (f *Function) NeedsAuthentication() bool {
	return f.RequiresLogon || f.ReferencesPassword()
}

// DisplayName returns the label, falling back to the id.
func (f *Function) DisplayName() string {
	if f.Label != "" {
		return f.Label
	}
	return f.ID
}

// Validate sprawdza poprawność danych Function
func (f *Function) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return errors.New("function id cannot be empty")
	}
	if strings.TrimSpace(f.LaunchCmd) == "" {
		return errors.New("function " + f.ID + " has no launch command")
	}
	return nil
}

// Clone tworzy kopię funkcji
func (f *Function) Clone() *Function {
	c := *f
	c.SystemFields = append([]string(nil), f.SystemFields...)
	return &c
}
