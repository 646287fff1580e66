package main

import (
	"context"
	"errors"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"focusflow/internal/audio"
	"focusflow/internal/core/engine"
	"focusflow/internal/notify"
	"focusflow/internal/platform"
	"focusflow/internal/quotes"
	"focusflow/internal/storage"
	"focusflow/internal/ui/face"
	"focusflow/internal/ui/preferences"
	"focusflow/internal/ui/tray"
)

func runDesktop(env *environment) error {
	logger := env.logger.Logger

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if !errors.Is(err, platform.ErrAlreadyRunning) {
			return err
		}
		if signalErr := platform.SignalRunningInstance(appName); signalErr != nil {
			logger.Warn("could not reach running instance", zap.Error(signalErr))
		}
		logger.Info("already running")
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn("using default settings", zap.Error(err))
	}
	tickInterval := env.config.Timer.TickInterval

	fyneApp := app.NewWithID(appID)

	player := audio.NewPlayer(audio.Options{
		Enabled:  settings.SoundEnabled,
		Volume:   settings.Volume,
		SoundDir: env.config.Audio.SoundDir,
	}, logger)

	var notificationsEnabled atomic.Bool
	notificationsEnabled.Store(settings.NotificationsEnabled)
	notifier := notify.NewDesktop(fyneApp, notificationsEnabled.Load, logger)

	timer := engine.New(settings.PomodoroConfig(tickInterval), engine.Options{
		Sound:    player,
		Notifier: notifier,
		Logger:   logger,
	})
	defer timer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go timer.Run(ctx)

	launcher := platform.NewLoginLauncher(platform.NewService(), appName)
	if settings.LaunchAtLogin {
		if err := launcher.Apply(true); err != nil {
			logger.Warn("refresh autostart entry", zap.Error(err))
		}
	}

	provider := quotes.NewProvider(quotesConfig(env.config.Quotes), logger)

	var prefsWindow *preferences.Window
	save := func(updated preferences.Settings) {
		if err := storage.SaveSettings(appName, updated); err != nil {
			logger.Error("save settings", zap.Error(err))
		}
	}

	mainWindow := face.New(fyneApp, timer, face.Options{
		Quotes:   provider,
		Logger:   logger,
		DarkMode: settings.DarkMode,
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnThemeChange: func(dark bool) {
			settings.DarkMode = dark
			save(settings)
			prefsWindow.UpdateSettings(settings)
		},
	})

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		previous := settings
		settings = updated
		save(settings)

		timer.UpdateConfig(settings.PomodoroConfig(tickInterval))
		player.SetEnabled(settings.SoundEnabled)
		player.SetVolume(settings.Volume)
		notificationsEnabled.Store(settings.NotificationsEnabled)
		mainWindow.SetDarkMode(settings.DarkMode)

		if previous.LaunchAtLogin != settings.LaunchAtLogin {
			if err := launcher.Apply(settings.LaunchAtLogin); err != nil {
				logger.Error("update autostart", zap.Error(err))
			}
		}
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnToggle:      timer.Toggle,
			OnReset:       timer.Reset,
			OnSwitch:      timer.SwitchPhase,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.Update(timer.Snapshot())
		go followEngine(ctx, timer, trayManager)
		mainWindow.Window().SetCloseIntercept(mainWindow.Window().Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.Window().SetMaster()
	}

	go mainWindow.Listen(ctx)
	go guard.Serve(func() {
		fyne.Do(mainWindow.Show)
	})

	logger.Info("desktop started",
		zap.Stringer("phase", timer.Phase()),
		zap.Duration("tick", tickInterval))
	mainWindow.Show()
	fyneApp.Run()
	return nil
}

// followEngine mirrors engine events into the tray menu.
func followEngine(ctx context.Context, timer *engine.Engine, trayManager *tray.Manager) {
	events := timer.Subscribe(16)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			snapshot := event.Snapshot
			fyne.Do(func() {
				trayManager.Update(snapshot)
			})
		}
	}
}
