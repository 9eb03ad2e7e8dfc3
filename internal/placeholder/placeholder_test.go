package placeholder

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "acsLauncher/internal/error"
	"acsLauncher/internal/models"
)

func testSettings() models.Settings {
	return models.Settings{
		ACSExePath: "/opt/ibm/iAccessClientSolutions/Start_Programs/Linux_x86-64/acslaunch_linux-64",
		ACSJarPath: "/opt/ibm/iAccessClientSolutions/acsbundle.jar",
		JavaPath:   "/usr/bin/java",
		JavaOpts:   "-Xmx1024m",
	}
}

func TestBuildTable(t *testing.T) {
	system := &models.System{
		Name:   "sys1",
		Fields: map[string]string{"hod_file": "/path/app.hod", "user": "SHADOW"},
	}

	table := BuildTable(testSettings(), system, "QSECOFR", "")

	assert.Equal(t, "sys1", table[TokenSystem])
	assert.Equal(t, "/usr/bin/java", table[TokenJava])
	assert.Equal(t, "/opt/ibm/iAccessClientSolutions/acsbundle.jar", table[TokenACSJar])
	assert.Equal(t, "/path/app.hod", table["hod_file"])

	pw, ok := table[TokenPassword]
	assert.True(t, ok, "password must be present even when empty")
	assert.Equal(t, "", pw)

	// custom fields are merged last
	assert.Equal(t, "SHADOW", table[TokenUser])
}

func TestBuildTable_JavaDefault(t *testing.T) {
	table := BuildTable(models.Settings{}, &models.System{Name: "s"}, "u", "p")
	assert.Equal(t, "java", table[TokenJava])
	assert.Equal(t, "p", table[TokenPassword])
}

func TestRender(t *testing.T) {
	table := Table{"java": "/usr/bin/java", "acs_jar": "/opt/acs.jar", "system": "sys1", "password": "s3cr et"}

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"plain", "/usr/bin/true", "/usr/bin/true"},
		{"tokens", "{java} -jar {acs_jar} /plugin=rss /system={system}", "/usr/bin/java -jar /opt/acs.jar /plugin=rss /system=sys1"},
		{"repeated token", "{system}-{system}", "sys1-sys1"},
		{"value kept verbatim", "/password={password}", "/password=s3cr et"},
		{"escaped braces", "echo {{literal}} {system}", "echo {literal} sys1"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.template, table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_Unresolved(t *testing.T) {
	got, err := Render("{acs_exe} {hod_file}", Table{"acs_exe": "/bin/acs"})

	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, apperrors.Is(err, apperrors.UnresolvedPlaceholder))

	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "hod_file", unresolved.Name)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Missing placeholder: hod_file", appErr.Message)
}

func TestRender_Malformed(t *testing.T) {
	for _, tpl := range []string{"{java", "java}", "{}", "{a b}"} {
		t.Run(tpl, func(t *testing.T) {
			_, err := Render(tpl, Table{"java": "x", "a b": "y"})
			assert.True(t, apperrors.Is(err, apperrors.UnresolvedPlaceholder))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t,
		[]string{"java", "acs_jar", "system", "password"},
		Tokens("{java} -jar {acs_jar} /system={system} /userid={system} /password={password} {{x}}"))
	assert.Nil(t, Tokens("no tokens"))
}

func TestRender_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("fully resolved templates leave no token syntax", prop.ForAll(
		func(keys []string, values []string, literals []string) bool {
			table := Table{}
			for i, k := range keys {
				if i < len(values) {
					table[k] = values[i]
				}
			}
			if len(table) == 0 {
				return true
			}

			var tpl, want strings.Builder
			i := 0
			for k, v := range table {
				if i < len(literals) {
					tpl.WriteString(literals[i])
					want.WriteString(literals[i])
				}
				tpl.WriteString("{" + k + "}")
				want.WriteString(v)
				i++
			}

			got, err := Render(tpl.String(), table)
			if err != nil {
				return false
			}
			return got == want.String() && !strings.ContainsAny(got, "{}")
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.AlphaString()),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("a token missing from the table always fails", prop.ForAll(
		func(present string, missing string, prefix string) bool {
			if present == missing {
				return true
			}
			_, err := Render(prefix+"{"+present+"} {"+missing+"}", Table{present: "x"})
			var unresolved *UnresolvedError
			return apperrors.Is(err, apperrors.UnresolvedPlaceholder) &&
				errorAs(err, &unresolved) && unresolved.Name == missing
		},
		gen.Identifier(),
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func errorAs(err error, target **UnresolvedError) bool {
	for err != nil {
		if u, ok := err.(*UnresolvedError); ok {
			*target = u
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
