package cmd

import (
	"errors"
	"os"

	"hk/pkg/api"
	"hk/pkg/auth"
	"hk/pkg/command"
	"hk/pkg/config"
	"hk/pkg/log"
	"hk/pkg/plugin"
	"hk/pkg/system"

	"github.com/spf13/cobra"
)

// newDefinitionCommand exposes one registry definition as a cobra command.
// Flags are left unparsed here; the handler parses its own.
func newDefinitionCommand(def command.Definition) *cobra.Command {
	return &cobra.Command{
		Use:                def.Name,
		Short:              def.Summary,
		Long:               "Usage: hk " + def.Usage,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, def.Name, args)
		},
	}
}

// dispatch runs name from the registry against the live capability set.
func dispatch(cmd *cobra.Command, name string, args []string) error {
	if name == "-h" || name == "--help" {
		name = "help"
	}

	logger, _ := cmd.Context().Value(loggerKey).(log.Logger)
	if logger == nil {
		logger = log.Nop
	}
	cfg, _ := cmd.Context().Value(configKey).(*config.Config)
	if cfg == nil {
		defaults := config.Defaults()
		cfg = &defaults
	}

	creds, err := auth.Load(system.AppFs, cfg.CredentialsFile, getenv)
	if err != nil && !errors.Is(err, auth.ErrNoCredentials) {
		return err
	}

	client := api.NewClient(cfg.Host, creds.User(), creds.Password(),
		api.WithBaseURL(cfg.APIBaseURL()),
		api.WithLogger(logger),
	)

	base := command.NewBase(client, cmdRunner, plugin.NewManager(system.AppFs, cfg.PluginDir), creds)
	base.Stdout = cmd.OutOrStdout()
	base.Stdin = cmd.InOrStdin()
	if dir, err := os.Getwd(); err == nil {
		base.Dir = dir
	}

	return command.Run(registry, name, args, base, logger)
}
