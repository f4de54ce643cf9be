package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wageconv.org/explorer/internal/appconf"
	"wageconv.org/explorer/internal/logging"
)

// runtime carries the resolved configuration from the root command to its subcommands.
type runtime struct {
	v          *viper.Viper
	configPath string
	config     appconf.Config
	logger     *slog.Logger
}

func newRuntime() *runtime {
	rt := &runtime{v: viper.New()}
	appconf.SetDefaults(rt.v)
	return rt
}

func newRootCommand() *cobra.Command {
	return newRuntime().rootCommand()
}

func (rt *runtime) rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "explorer",
		Short:         "Wage convergence results explorer",
		Long:          "Browse precomputed wage convergence projections: per-country convergence years, the 2080 gap and projection charts.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.initialize(cmd)
		},
	}

	if err := setupFlags(rootCmd, rt); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		serveCommand(rt),
		lookupCommand(rt),
		countriesCommand(rt),
		validateCommand(rt),
	)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, cmd.UsageString())
	})

	return rootCmd
}

// setupFlags defines the flags shared by every subcommand and binds them to config keys.
func setupFlags(rootCmd *cobra.Command, rt *runtime) error {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rt.configPath, "config", "", "Path to a YAML config file (default ./explorer.yaml if present)")
	flags.String("result-dir", "", "Directory holding the result tables and charts")
	flags.String("image-scheme", "", "Chart file layout: suffix or subdirectory")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-format", "", "Log format: json or text")

	bindings := map[string]string{
		"data.result_dir":   "result-dir",
		"data.image_scheme": "image-scheme",
		"log.level":         "log-level",
		"log.format":        "log-format",
	}
	for key, flag := range bindings {
		if err := rt.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// initialize resolves defaults, config file, environment and flags, then builds the logger.
func (rt *runtime) initialize(cmd *cobra.Command) error {
	if err := appconf.BindEnv(rt.v); err != nil {
		return err
	}
	if err := appconf.ReadConfigFile(rt.v, rt.configPath); err != nil {
		return err
	}

	config, err := appconf.FromViper(rt.v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	rt.config = config

	level, err := logging.ParseLevel(config.Log.Level)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cmd.ErrOrStderr(), level, config.Log.Format)
	if err != nil {
		return err
	}
	rt.logger = logger.With(slog.String("env", config.Env.String()))
	slog.SetDefault(rt.logger)

	return nil
}
