package commands

import (
	"fmt"
	"strings"

	"hk/pkg/command"
)

var helpDefinitions = []command.Definition{
	{Name: "help", Summary: "list commands and display help", Usage: "help [COMMAND]"},
}

// NewHelp returns a factory for the help command listing the commands in reg.
func NewHelp(reg *command.Registry) command.Factory {
	return func(inv *command.Invocation) command.Handler {
		return methods{"index": func() error { return help(reg, inv) }}
	}
}

func help(reg *command.Registry, inv *command.Invocation) error {
	defs := reg.Definitions()

	if len(inv.Args) > 0 {
		topic := inv.Args[0]
		var matched []command.Definition
		for _, def := range defs {
			if def.Name == topic || def.Group == topic {
				matched = append(matched, def)
			}
		}
		if len(matched) == 0 {
			return inv.Error((&command.CommandNotFoundError{Name: topic}).Error())
		}
		defs = matched
	} else {
		inv.Puts("Usage: hk COMMAND [--app APP] [command-specific-options]")
		inv.Puts("")
	}

	width := 0
	for _, def := range defs {
		if len(def.Usage) > width {
			width = len(def.Usage)
		}
	}
	for _, def := range defs {
		inv.Puts(fmt.Sprintf("  %s%s  # %s", def.Usage, strings.Repeat(" ", width-len(def.Usage)), def.Summary))
	}
	return nil
}
