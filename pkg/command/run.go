package command

import (
	"hk/pkg/log"
)

// Run resolves name against reg and invokes it with caps.
func Run(reg *Registry, name string, args []string, caps Capabilities, logger log.Logger) error {
	resolved, err := reg.Prepare(name, args, caps)
	if err != nil {
		logger.Debug("Command resolution failed", "command", name, "error", err)
		return err
	}

	logger.Debug("Running command", "command", name, "group", resolved.Definition.Group, "method", resolved.Definition.Method)
	if err := resolved.Invoke(); err != nil {
		logger.Debug("Command failed", "command", name, "error", err)
		return err
	}
	return nil
}

// RunLine tokenizes line and runs it.
func RunLine(reg *Registry, line string, caps Capabilities, logger log.Logger) error {
	name, args, err := Tokenize(line)
	if err != nil {
		return err
	}
	return Run(reg, name, args, caps, logger)
}
