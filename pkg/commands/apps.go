package commands

import (
	"errors"
	"fmt"
	"sort"

	"hk/pkg/api"
	"hk/pkg/command"
)

var appsDefinitions = []command.Definition{
	{Name: "apps", Summary: "list your apps", Usage: "apps"},
	{Name: "apps:info", Summary: "show detailed app information", Usage: "apps:info [--app APP]"},
	{Name: "apps:create", Summary: "create a new app", Usage: "apps:create [NAME]"},
	{Name: "apps:destroy", Summary: "permanently destroy an app", Usage: "apps:destroy [--app APP] [--confirm APP]"},
}

// Apps manages applications.
type Apps struct {
	*command.Invocation
}

func NewApps(inv *command.Invocation) command.Handler {
	a := &Apps{Invocation: inv}
	return methods{
		"index":   a.Index,
		"info":    a.Info,
		"create":  a.Create,
		"destroy": a.Destroy,
	}
}

func (a *Apps) Index() error {
	apps, err := a.Heroku().ListApps()
	if err != nil {
		return apiFailure(a, err)
	}
	if len(apps) == 0 {
		a.Puts("You have no apps.")
		return nil
	}

	names := make([]string, 0, len(apps))
	for _, app := range apps {
		names = append(names, app.Name)
	}
	sort.Strings(names)
	for _, name := range names {
		a.Puts(name)
	}
	return nil
}

func (a *Apps) Info() error {
	name, err := a.App()
	if err != nil {
		return err
	}

	app, err := a.Heroku().GetApp(name)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return a.Error(fmt.Sprintf("App %s not found.", name))
		}
		return apiFailure(a, err)
	}

	a.Puts("=== " + app.Name)
	for _, line := range columns(map[string]string{
		"Owner":   app.Owner,
		"Stack":   app.Stack,
		"Web URL": app.WebURL,
	}) {
		a.Puts(line)
	}
	return nil
}

func (a *Apps) Create() error {
	var name string
	if len(a.Args) > 0 {
		name = a.Args[0]
	}

	a.Display("Creating app... ", false)
	app, err := a.Heroku().CreateApp(name)
	if err != nil {
		return apiFailure(a, err)
	}
	a.Display("done", true)

	a.Puts(fmt.Sprintf("Created %s | %s", app.Name, app.WebURL))
	return nil
}

func (a *Apps) Destroy() error {
	name, err := a.App()
	if err != nil {
		return err
	}

	answer := a.Options.Confirm
	if answer == "" {
		a.Display("", true)
		a.Display(" !    WARNING: Potentially Destructive Action", true)
		a.Display(" !    This command will destroy "+name+" (including all add-ons).", true)
		a.Display(" !    To proceed, type \""+name+"\" or re-run this command with --confirm "+name, true)
		a.Display("", true)
		a.Display("> ", false)
		answer = a.Ask()
	}
	if answer != name {
		return a.Error(fmt.Sprintf("Confirmation did not match %s. Aborted.", name))
	}

	a.Display("Destroying "+name+" (including all add-ons)... ", false)
	if err := a.Heroku().DestroyApp(name); err != nil {
		return apiFailure(a, err)
	}
	a.Display("done", true)
	a.Puts("Destroyed " + name)
	return nil
}
