// internal/config/defaults.go

package config

import "acsLauncher/internal/models"

const (
	DefaultACSExePath = "/opt/ibm/iAccessClientSolutions/Start_Programs/Linux_x86-64/acslaunch_linux-64"
	DefaultACSJarPath = "/opt/ibm/iAccessClientSolutions/acsbundle.jar"
	DefaultJavaPath   = "/usr/bin/java"
	DefaultJavaOpts   = "-Xmx1024m"
	DefaultLogonCmd   = "{java} -jar {acs_jar} /plugin=logon /system={system} /userid={user} /password={password} /auth"
)

// plugin builds a function that starts one ACS plugin through the bundle jar.
func plugin(id, label string, requiresLogon bool) models.Function {
	return models.Function{
		ID:            id,
		Label:         label,
		LaunchCmd:     "{java} -jar {acs_jar} /plugin=" + id + " /system={system}",
		RequiresLogon: requiresLogon,
		SystemFields:  []string{},
	}
}

// DefaultFunctions returns a fresh copy of the built-in function table.
func DefaultFunctions() []models.Function {
	return []models.Function{
		{
			ID:            "5250",
			Label:         "5250 Terminal Emulator",
			LaunchCmd:     "{acs_exe} {hod_file}",
			RequiresLogon: true,
			SystemFields:  []string{"hod_file"},
		},
		plugin("rss", "Run SQL Scripts", true),
		plugin("db2", "Database Management", true),
		plugin("ifs", "IFS Browser", true),
		plugin("splf", "Printer Output (Spool Files)", true),
		plugin("rmtcmd", "Remote Command", true),
		plugin("ssh", "SSH Terminal", false),
		plugin("cfg", "System Configuration", false),
		plugin("keyman", "Certificate Management", false),
		plugin("l1c", "Navigator for i", true),
	}
}

// Defaults returns the configuration used for every key missing from disk.
func Defaults() *models.Config {
	return &models.Config{
		Settings: models.Settings{
			ACSExePath:   DefaultACSExePath,
			ACSJarPath:   DefaultACSJarPath,
			JavaPath:     DefaultJavaPath,
			JavaOpts:     DefaultJavaOpts,
			LogonCmd:     DefaultLogonCmd,
			LogonTimeout: int(models.DefaultLogonTimeout.Seconds()),
		},
		Systems:   []models.System{},
		Functions: DefaultFunctions(),
	}
}
