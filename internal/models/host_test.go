package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		required []string
		want     bool
		missing  []string
	}{
		{"no requirements, no fields", nil, nil, true, nil},
		{"no requirements, some fields", map[string]string{"hod_file": "/x.hod"}, []string{}, true, nil},
		{"all present", map[string]string{"hod_file": "/x.hod", "ccsid": "37"}, []string{"hod_file", "ccsid"}, true, nil},
		{"one missing", map[string]string{"hod_file": "/x.hod"}, []string{"hod_file", "ccsid"}, false, []string{"ccsid"}},
		{"empty value counts as missing", map[string]string{"hod_file": ""}, []string{"hod_file"}, false, []string{"hod_file"}},
		{"nil fields map", nil, []string{"hod_file"}, false, []string{"hod_file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system := &System{Name: "sys1", Fields: tt.fields}
			fn := &Function{ID: "5250", SystemFields: tt.required}

			assert.Equal(t, tt.want, HasRequiredFields(system, fn))
			assert.Equal(t, tt.missing, MissingFields(system, fn))
		})
	}
}

func TestSystem_DisplayName(t *testing.T) {
	assert.Equal(t, "Production", (&System{Name: "prod1", Label: "Production"}).DisplayName())
	assert.Equal(t, "prod1", (&System{Name: "prod1"}).DisplayName())
}

func TestSystem_Clone(t *testing.T) {
	orig := &System{Name: "sys1", Users: []string{"QSECOFR"}, Fields: map[string]string{"hod_file": "/a.hod"}}
	c := orig.Clone()
	c.Users[0] = "OTHER"
	c.Fields["hod_file"] = "/b.hod"

	assert.Equal(t, "QSECOFR", orig.Users[0])
	assert.Equal(t, "/a.hod", orig.Fields["hod_file"])
}

func TestFunction_NeedsAuthentication(t *testing.T) {
	assert.True(t, (&Function{RequiresLogon: true, LaunchCmd: "{java} -jar {acs_jar}"}).NeedsAuthentication())
	assert.True(t, (&Function{LaunchCmd: "tool /pw={password}"}).NeedsAuthentication())
	assert.False(t, (&Function{LaunchCmd: "{acs_exe} {hod_file}"}).NeedsAuthentication())
}

func TestConfig_Validate(t *testing.T) {
	ok := Config{
		Systems:   []System{{Name: "a"}, {Name: "b"}},
		Functions: []Function{{ID: "rss", LaunchCmd: "x"}},
	}
	assert.NoError(t, ok.Validate())

	dup := Config{Systems: []System{{Name: "a"}, {Name: "a"}}}
	assert.ErrorContains(t, dup.Validate(), "duplicate system name")

	emptyName := Config{Systems: []System{{Name: " "}}}
	assert.Error(t, emptyName.Validate())

	emptyField := Config{Systems: []System{{Name: "a", Fields: map[string]string{"": "v"}}}}
	assert.Error(t, emptyField.Validate())

	dupFn := Config{Functions: []Function{{ID: "rss", LaunchCmd: "x"}, {ID: "rss", LaunchCmd: "y"}}}
	assert.ErrorContains(t, dupFn.Validate(), "duplicate function id")
}

func TestSettings_LogonTemplate(t *testing.T) {
	s := Settings{LogonCmd: "global {system}"}
	assert.Equal(t, "global {system}", s.LogonTemplate(&Function{}))
	assert.Equal(t, "own {system}", s.LogonTemplate(&Function{LogonCmd: "own {system}"}))
	assert.Equal(t, DefaultLogonTimeout, s.LogonTimeoutDuration())
	s.LogonTimeout = 5
	assert.Equal(t, "5s", s.LogonTimeoutDuration().String())
}
