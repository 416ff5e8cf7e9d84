package commands

import "hk/pkg/command"

var pluginsDefinitions = []command.Definition{
	{Name: "plugins", Summary: "list installed plugins", Usage: "plugins"},
}

type Plugins struct {
	*command.Invocation
}

func NewPlugins(inv *command.Invocation) command.Handler {
	p := &Plugins{Invocation: inv}
	return methods{"index": p.Index}
}

func (p *Plugins) Index() error {
	names, err := p.Invocation.Plugins().List()
	if err != nil {
		return p.Error(err.Error())
	}
	if len(names) == 0 {
		p.Puts("You have no installed plugins.")
		return nil
	}

	p.Puts("=== Installed Plugins")
	for _, name := range names {
		p.Puts(name)
	}
	return nil
}
