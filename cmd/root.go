package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"hk/pkg/command"
	"hk/pkg/commands"
	"hk/pkg/config"
	"hk/pkg/log"
	"hk/pkg/system"

	"github.com/spf13/cobra"
)

type contextKey string

const (
	loggerKey contextKey = "logger"
	configKey contextKey = "config"
)

var (
	configPath                      = config.DefaultPath()
	getenv                          = os.Getenv
	cmdRunner  system.CommandRunner = &system.LiveCommandRunner{}
	registry   *command.Registry
	rootCmd                         = &cobra.Command{
		Use:   "hk",
		Short: "hk is a command-line client for the Heroku platform",
		Long: `A command-line client for managing Heroku apps, their config vars and
plugins. Run "hk help" for the list of commands.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(system.AppFs, configPath, getenv, log.Nop)
			if err != nil {
				return err
			}
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			logger := log.NewSlogLogger(level, cmd.ErrOrStderr())
			logger.Debug("Loaded config", "path", configPath, "host", cfg.Host)

			ctx := context.WithValue(cmd.Context(), loggerKey, log.Logger(logger))
			ctx = context.WithValue(ctx, configKey, cfg)
			cmd.SetContext(ctx)
			return nil
		},
		// Names cobra does not know still go through the registry, so the
		// user gets the same "not a hk command" message as everywhere else.
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return dispatch(cmd, "help", nil)
			}
			return dispatch(cmd, args[0], args[1:])
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError reports command failures the way the platform client always
// has and anything else as a plain error.
func printError(w io.Writer, err error) {
	var failed *command.CommandFailedError
	if errors.As(err, &failed) || errors.Is(err, command.ErrCommandNotFound) {
		fmt.Fprintf(w, " !    %s\n", err)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	reg, err := commands.Load()
	if err != nil {
		panic(fmt.Sprintf("cannot register commands: %v", err))
	}
	registry = reg

	for _, def := range reg.Definitions() {
		sub := newDefinitionCommand(def)
		if def.Name == "help" {
			rootCmd.SetHelpCommand(sub)
			continue
		}
		rootCmd.AddCommand(sub)
	}
}
