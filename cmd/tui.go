package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"focusflow/internal/audio"
	"focusflow/internal/core/engine"
	"focusflow/internal/logging"
	"focusflow/internal/notify"
	"focusflow/internal/quotes"
	"focusflow/internal/storage"
	"focusflow/internal/ui/terminal"
)

func newTUICommand(env *environment) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the timer in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := terminalLogger(env, logFile)
			if err != nil {
				return err
			}

			settings, err := storage.LoadSettings(appName)
			if err != nil {
				logger.Warn("using default settings", zap.Error(err))
			}

			bell := &notify.Bell{}
			player := audio.NewPlayer(audio.Options{
				Enabled:  settings.SoundEnabled,
				Volume:   settings.Volume,
				SoundDir: env.config.Audio.SoundDir,
			}, logger)
			timer := engine.New(settings.PomodoroConfig(env.config.Timer.TickInterval), engine.Options{
				Sound:    player,
				Notifier: bell,
				Logger:   logger,
			})
			defer timer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			go timer.Run(ctx)

			provider := quotes.NewProvider(quotesConfig(env.config.Quotes), logger)
			return terminal.Run(ctx, timer, provider, bell)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file instead of discarding them")
	return cmd
}

// terminalLogger keeps logs off the alternate screen. Without --log-file they
// are discarded.
func terminalLogger(env *environment, logFile string) (*zap.Logger, error) {
	if logFile == "" {
		return zap.NewNop(), nil
	}
	cfg := env.logConfig
	cfg.OutputPaths = []string{logFile}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	return logger.Logger, nil
}
