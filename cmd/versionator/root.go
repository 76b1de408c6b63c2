package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	dirFlagName       = "dir"
	noColourFlagName  = "no-colour"
	verbosityFlagName = "verbosity"
	logFileFlagName   = "log-file"
	dryRunFlagName    = "dry-run"
	interactiveFlag   = "interactive"
)

const rootLongDescription = `versionator changes versions across a multi-module Maven project.

Poms that inherit their version from a parent move together, every reference
to a changed coordinate follows it, and released modules touched by a change
go back to their next snapshot. Edits preserve the formatting of each file.
Maven coordinates pinned in MODULE.bazel are rewritten too.`

// app holds per-invocation state shared by subcommands.
type app struct {
	dir       string
	noColour  bool
	verbosity int
	logFile   string

	cfg    *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.DiscardHandler)}

	cmd := &cobra.Command{
		Use:           "versionator",
		Short:         "Set and release versions across a multi-module Maven project",
		Long:          rootLongDescription,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unknown command %q. Perhaps try --help?", args[0])
			}
			return errors.New("no command provided. Perhaps try --help?")
		},
		Args: cobra.ArbitraryArgs,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.dir, dirFlagName, "d", ".", "the project root directory")
	flags.BoolVar(&a.noColour, noColourFlagName, false, "suppress colours in output")
	flags.CountVarP(&a.verbosity, verbosityFlagName, "v", "log more (repeat for debug)")
	flags.StringVar(&a.logFile, logFileFlagName, "", "write logs to a rotating file instead of stderr")

	cmd.AddCommand(
		newSetVersionCmd(a),
		newReleaseCmd(a),
		newListCmd(a),
		newGraphCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// configure loads the project config and sets up logging and colours.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.dir)
	if err != nil {
		return err
	}
	if err := bindFlagToConfig(cfg, cmd.Flags().Lookup(logFileFlagName), logFileKey); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cfg, a.verbosity, cmd.ErrOrStderr())

	if a.noColour || !cfg.GetBool(colourKey) {
		color.NoColor = true
	}
	a.logger.Debug("configured", "dir", a.dir, "config", cfg.ConfigFileUsed())
	return nil
}

// bindFlagToConfig wires a flag to a config key so config and env values
// apply when the flag is not set.
func bindFlagToConfig(cfg *viper.Viper, flag *pflag.Flag, key string) error {
	if flag == nil {
		return fmt.Errorf("flag for config key %q not found", key)
	}
	return cfg.BindPFlag(key, flag)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the versionator version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "versionator "+versionString())
			return err
		},
	}
}
