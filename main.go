// termbar draws single-line terminal progress bars with optional
// percentage, step counter and spinner decorations
package main

import (
	"os"

	"github.com/andpalmier/termbar/cmd"
)

// Version information (set at build time via -ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Pass version info to command package and run
	os.Exit(cmd.Execute(version, commit, date))
}
