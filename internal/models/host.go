// internal/models/host.go

package models

import (
	"errors"
	"fmt"
	"strings"
)

// System is a configured remote host. Name is the primary key.
type System struct {
	Name   string            `json:"name"`
	Label  string            `json:"label,omitempty"`
	Users  []string          `json:"users"`
	Fields map[string]string `json:"fields"`
}

// DisplayName returns the label, falling back to the name.
func (s *System) DisplayName() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}

// HasUser reports whether user is one of the system's identities.
func (s *System) HasUser(user string) bool {
	for _, u := range s.Users {
		if u == user {
			return true
		}
	}
	return false
}

// Validate sprawdza poprawność danych System
func (s *System) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("system name cannot be empty")
	}
	for key := range s.Fields {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("system %q has a field with an empty name", s.Name)
		}
	}
	return nil
}

// Clone tworzy kopię systemu
func (s *System) Clone() *System {
	c := &System{
		Name:   s.Name,
		Label:  s.Label,
		Users:  append([]string(nil), s.Users...),
		Fields: make(map[string]string, len(s.Fields)),
	}
	for k, v := range s.Fields {
		c.Fields[k] = v
	}
	return c
}

// HasRequiredFields reports whether the system supplies a non-empty value for
// every field the function declares as required.
func HasRequiredFields(system *System, fn *Function) bool {
	for _, name := range fn.SystemFields {
		if system.Fields[name] == "" {
			return false
		}
	}
	return true
}

// MissingFields returns the required field names the system does not supply,
// in the order the function declares them.
func MissingFields(system *System, fn *Function) []string {
	var missing []string
	for _, name := range fn.SystemFields {
		if system.Fields[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
