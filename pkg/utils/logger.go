package utils

import (
	"io"

	"github.com/pterm/pterm"
)

var (
	// Logger instances
	Info    = pterm.Info
	Success = pterm.Success
	Warning = pterm.Warning
	Error   = pterm.Error
	Debug   = pterm.Debug
)

// InitLogger routes pterm output to w and sets the debug level.
// Reports go to stdout; everything pterm prints goes here instead.
func InitLogger(w io.Writer, debugMode bool) {
	pterm.SetDefaultOutput(w)
	if debugMode {
		pterm.EnableDebugMessages()
	} else {
		pterm.DisableDebugMessages()
	}
}
