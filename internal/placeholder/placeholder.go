// Package placeholder builds the substitution table for a launch attempt and
// renders command templates against it.
//
// Templates use {name} tokens. "{{" and "}}" stand for literal braces.
package placeholder

import (
	"fmt"
	"strings"

	apperrors "acsLauncher/internal/error"
	"acsLauncher/internal/models"
	"acsLauncher/internal/utils"
)

// Fixed token names. Custom system fields are merged on top of these.
const (
	TokenSystem   = "system"
	TokenUser     = "user"
	TokenPassword = "password"
	TokenACSExe   = "acs_exe"
	TokenACSJar   = "acs_jar"
	TokenJava     = "java"
	TokenJavaOpts = "java_opts"
)

// Table maps token names to values for one launch attempt.
type Table map[string]string

// UnresolvedError reports a template token that has no value in the table.
type UnresolvedError struct {
	Name string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved placeholder {%s}", e.Name)
}

// BuildTable merges global settings, the selected system and its custom
// fields. Custom fields are applied last and win on collisions.
func BuildTable(settings models.Settings, system *models.System, user, password string) Table {
	t := Table{
		TokenSystem:   system.Name,
		TokenUser:     user,
		TokenPassword: password,
		TokenACSExe:   utils.ExpandHome(settings.ACSExePath),
		TokenACSJar:   utils.ExpandHome(settings.ACSJarPath),
		TokenJava:     utils.ExpandHome(utils.FirstNonEmpty(settings.JavaPath, "java")),
		TokenJavaOpts: settings.JavaOpts,
	}
	for k, v := range system.Fields {
		t[k] = v
	}
	return t
}

// Render substitutes every {name} in template. It fails with an
// UnresolvedPlaceholder AppError when a token is missing from the table, and
// never returns a partially substituted command.
func Render(template string, table Table) (string, error) {
	var out strings.Builder
	out.Grow(len(template))

	err := scan(template, func(literal string) {
		out.WriteString(literal)
	}, func(name string) error {
		value, ok := table[name]
		if !ok {
			return apperrors.New(apperrors.UnresolvedPlaceholder,
				"Missing placeholder: "+name, &UnresolvedError{Name: name})
		}
		out.WriteString(value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Tokens returns the token names referenced by template, in order of first
// appearance. A malformed template yields the tokens seen before the error.
func Tokens(template string) []string {
	var names []string
	seen := make(map[string]bool)
	_ = scan(template, func(string) {}, func(name string) error {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return nil
	})
	return names
}

// scan walks template, calling literal for plain text and token for each
// {name}. Brace escapes are resolved before literal is called.
func scan(template string, literal func(string), token func(string) error) error {
	for i := 0; i < len(template); {
		c := template[i]
		switch {
		case c == '{' && i+1 < len(template) && template[i+1] == '{':
			literal("{")
			i += 2
		case c == '}' && i+1 < len(template) && template[i+1] == '}':
			literal("}")
			i += 2
		case c == '{':
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return malformed(template, "unclosed '{'")
			}
			name := template[i+1 : i+1+end]
			if name == "" || strings.ContainsAny(name, "{ ") {
				return malformed(template, fmt.Sprintf("invalid placeholder name %q", name))
			}
			if err := token(name); err != nil {
				return err
			}
			i += end + 2
		case c == '}':
			return malformed(template, "single '}' encountered")
		default:
			next := strings.IndexAny(template[i:], "{}")
			if next < 0 {
				literal(template[i:])
				return nil
			}
			literal(template[i : i+next])
			i += next
		}
	}
	return nil
}

func malformed(template, reason string) error {
	return apperrors.New(apperrors.UnresolvedPlaceholder,
		"Malformed command template", fmt.Errorf("%s in %q", reason, template))
}
