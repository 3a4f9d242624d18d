// FILE: logpane/src/cmd/logpane-demo/help.go
package main

import (
	"fmt"
	"os"
)

const helpText = `logpane-demo: capture in-process logs and browse them in the terminal.

Usage:
  logpane-demo [options] [--key=value ...]

Application Control:
  -c, --config <path>        Path to configuration file (default: ~/.config/logpane.toml)
      --save-config <path>   Write the effective configuration as TOML and exit
  -h, --help                 Display this help message and exit
  -v, --version              Display version information and exit

Configuration Overrides:
  --max_records=N            Records kept before the oldest is evicted (0 = unbounded)
  --level_threshold=LEVEL    Least severe level captured: error, warn, info, debug, trace
  --demo.writers=N           Concurrent writer goroutines
  --demo.rate_per_writer=R   Records per second per writer
  --demo.headless=true       Print captured rows instead of opening the viewer

Viewer Keys:
  1-5      toggle ERROR WARN INFO DEBUG TRACE
  /        edit the search query (enter or esc to leave)
  r        toggle regex search
  c        toggle case sensitivity
  x        clear the captured records
  up/down  scroll, G to follow new rows
  q        quit

Configuration Sources (Precedence: CLI > Env > File > Defaults):
  Environment variables use the LOGPANE_ prefix, e.g. LOGPANE_MAX_RECORDS=500
`

// CheckAndDisplayHelp scans arguments for help flags and prints help text if found.
func CheckAndDisplayHelp(args []string) {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			fmt.Fprint(os.Stdout, helpText)
			os.Exit(0)
		}
	}
}
