package launch

import (
	"strings"

	"al.essio.dev/pkg/shellescape"

	"acsLauncher/internal/models"
	"acsLauncher/internal/utils"
)

// MsgNoACS is reported when the bare ACS window is requested without an
// acs_exe_path.
const MsgNoACS = "ACS executable not configured - check config.json"

// ACSCommand returns the command that opens the ACS main window with no
// system selected. ok is false when acs_exe_path is empty.
func ACSCommand(s models.Settings) (command string, ok bool) {
	exe := strings.TrimSpace(s.ACSExePath)
	if exe == "" {
		return "", false
	}
	return shellescape.Quote(utils.ExpandHome(exe)), true
}
