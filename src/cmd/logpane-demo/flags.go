// FILE: logpane/src/cmd/logpane-demo/flags.go
package main

import (
	"fmt"
	"strings"
)

// Flags handled by the demo itself; everything else is passed to the
// config loader as --key=value overrides
type Flags struct {
	ConfigFile  string
	SaveConfig  string
	ShowVersion bool
}

func parseFlags(args []string) (*Flags, []string, error) {
	flags := &Flags{}
	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")

		switch name {
		case "v", "version":
			flags.ShowVersion = true
			continue
		case "c", "config", "save-config":
		default:
			rest = append(rest, arg)
			continue
		}

		if !hasValue {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("flag %s requires a value", arg)
			}
			i++
			value = args[i]
		}
		if name == "save-config" {
			flags.SaveConfig = value
		} else {
			flags.ConfigFile = value
		}
	}

	return flags, rest, nil
}
