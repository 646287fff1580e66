package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"focusflow/internal/config"
	"focusflow/internal/logging"
	"focusflow/internal/quotes"
)

type rootFlags struct {
	logLevel string
	dev      bool
}

// environment is built once per invocation before any command runs.
type environment struct {
	config    *config.Config
	logConfig logging.Config
	logger    *logging.Logger
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	env := &environment{}

	root := &cobra.Command{
		Use:           "focusflow",
		Short:         "Pomodoro focus timer",
		Long:          "FocusFlow alternates focus sessions with short and long breaks.\nWithout a subcommand it opens the desktop window.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			logConfig := loggingConfig(cfg.Logging, flags, cmd)
			logger, err := logging.New(logConfig)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			env.config = cfg
			env.logConfig = logConfig
			env.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if env.logger != nil {
				_ = env.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(env)
		},
	}

	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&flags.dev, "dev", false, "human readable debug logging")

	root.AddCommand(newTUICommand(env), newQuoteCommand(env))
	return root
}

// loggingConfig merges FOCUSFLOW_LOG_* with the flags. --dev selects the
// development preset and an explicit --log-level always wins.
func loggingConfig(cfg config.LogConfig, flags *rootFlags, cmd *cobra.Command) logging.Config {
	result := logging.DefaultConfig()
	result.Level = cfg.Level
	if cfg.Development || flags.dev {
		result = logging.DevelopmentConfig()
	}
	if cmd.Flags().Changed("log-level") {
		result.Level = flags.logLevel
	}
	return result
}

func quotesConfig(cfg config.QuotesConfig) quotes.Config {
	return quotes.Config{
		URL:      cfg.URL,
		Category: cfg.Category,
		APIKey:   cfg.APIKey,
		Timeout:  cfg.Timeout,
	}
}
