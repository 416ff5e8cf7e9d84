package commands

import "hk/pkg/command"

var authDefinitions = []command.Definition{
	{Name: "auth:whoami", Summary: "display your account email address", Usage: "auth:whoami"},
}

type Auth struct {
	*command.Invocation
}

func NewAuth(inv *command.Invocation) command.Handler {
	a := &Auth{Invocation: inv}
	return methods{"whoami": a.Whoami}
}

func (a *Auth) Whoami() error {
	creds := a.Invocation.Auth()
	if creds == nil || creds.User() == "" {
		return a.Error("Not logged in.")
	}
	a.Puts(creds.User())
	return nil
}
