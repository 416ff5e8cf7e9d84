package commands

import (
	"fmt"
	"strings"

	"hk/pkg/command"
)

var configDefinitions = []command.Definition{
	{Name: "config", Summary: "display the config vars for an app", Usage: "config [--app APP]"},
	{Name: "config:add", Summary: "add one or more config vars", Usage: "config:add KEY1=VALUE1 ..."},
	{Name: "config:remove", Summary: "remove a config var", Usage: "config:remove KEY1 [KEY2 ...]"},
}

// Config manages an app's config vars.
type Config struct {
	*command.Invocation
}

func NewConfig(inv *command.Invocation) command.Handler {
	c := &Config{Invocation: inv}
	return methods{
		"index":  c.Index,
		"add":    c.Add,
		"remove": c.Remove,
	}
}

func (c *Config) Index() error {
	app, err := c.App()
	if err != nil {
		return err
	}

	vars, err := c.Heroku().ConfigVars(app)
	if err != nil {
		return apiFailure(c, err)
	}
	if len(vars) == 0 {
		c.Puts(app + " has no config vars.")
		return nil
	}

	c.Puts("=== " + app + " Config Vars")
	for _, line := range columns(vars) {
		c.Puts(line)
	}
	return nil
}

func (c *Config) Add() error {
	if len(c.Args) == 0 {
		return c.Error("Usage: hk config:add KEY1=VALUE1 ...")
	}

	vars := make(map[string]string, len(c.Args))
	for _, arg := range c.Args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return c.Error(fmt.Sprintf("%s is invalid. Must be in the format FOO=bar.", arg))
		}
		vars[key] = value
	}

	app, err := c.App()
	if err != nil {
		return err
	}

	c.Display("Setting config vars and restarting "+app+"... ", false)
	if err := c.Heroku().AddConfigVars(app, vars); err != nil {
		return apiFailure(c, err)
	}
	c.Display("done", true)

	for _, line := range columns(vars) {
		c.Puts(line)
	}
	return nil
}

func (c *Config) Remove() error {
	if len(c.Args) == 0 {
		return c.Error("Usage: hk config:remove KEY1 [KEY2 ...]")
	}

	app, err := c.App()
	if err != nil {
		return err
	}

	for _, key := range c.Args {
		if err := c.Heroku().RemoveConfigVar(app, key); err != nil {
			return apiFailure(c, err)
		}
		c.Puts(fmt.Sprintf("Unsetting %s and restarting %s... done", key, app))
	}
	return nil
}
