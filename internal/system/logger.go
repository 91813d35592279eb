package system

import (
	"os"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger. It prints to stderr with
// timestamps enabled; SetDebug switches it to debug level.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
})

// SetDebug toggles debug-level output.
func SetDebug(on bool) {
	if on {
		Logger.SetLevel(clog.DebugLevel)
	} else {
		Logger.SetLevel(clog.InfoLevel)
	}
}
