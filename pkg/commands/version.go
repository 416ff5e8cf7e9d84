package commands

import (
	"fmt"
	"runtime"

	"hk/pkg/command"
)

// Version is set at build time with -ldflags "-X hk/pkg/commands.Version=...".
var Version = "0.1.0-dev"

var versionDefinitions = []command.Definition{
	{Name: "version", Summary: "display version", Usage: "version"},
}

func NewVersion(inv *command.Invocation) command.Handler {
	return methods{"index": func() error {
		inv.Puts(fmt.Sprintf("hk/%s (%s-%s) %s", Version, runtime.GOOS, runtime.GOARCH, runtime.Version()))
		return nil
	}}
}
