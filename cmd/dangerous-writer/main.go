package main

import (
	"errors"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"

	"dangerouswriter/internal/core/clock"
	"dangerouswriter/internal/core/idlemonitor"
	"dangerouswriter/internal/core/model"
	"dangerouswriter/internal/core/session"
	"dangerouswriter/internal/logging"
	"dangerouswriter/internal/platform"
	"dangerouswriter/internal/storage"
	"dangerouswriter/internal/ui/editor"
	"dangerouswriter/internal/ui/tray"
)

const appName = "DangerousWriter"

func main() {
	settings, settingsErr := storage.LoadSettings(appName)
	log, err := logging.New(logging.Config{Level: settings.LogLevel, FilePath: settings.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		log, _ = logging.New(logging.Config{})
	}
	defer func() {
		_ = log.Sync()
	}()
	if settingsErr != nil {
		log.Warn("using default settings", zap.Error(settingsErr))
	}

	guard, err := platform.AcquireSingleInstance(log, appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Info("already running, asked the open window to come forward")
			return
		}
		log.Error("single instance", zap.Error(err))
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.dangerouswriter.app")
	fyneApp.SetIcon(theme.DocumentCreateIcon())

	config := model.DefaultSessionConfig()
	window := editor.New(fyneApp, editor.Config{
		Title:        "dangerous writer",
		Width:        settings.WindowWidth,
		Height:       settings.WindowHeight,
		IntroText:    model.IntroText,
		GraceEnabled: config.GraceEnabled,
	})
	controller := session.New(log, session.Options{
		Config:    config,
		Clock:     clock.System,
		Scheduler: clock.Dispatching(fyne.Do),
	}, window, window, window)
	window.Attach(controller)

	go guard.Serve(func() {
		fyne.Do(window.Show)
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		desktopApp.SetSystemTrayIcon(theme.DocumentCreateIcon())
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:       window.Show,
			OnNewSession: controller.NewSession,
			OnExport:     controller.Export,
			OnQuit: func() {
				controller.Stop()
				fyneApp.Quit()
			},
		})
		controller.Subscribe(func(event idlemonitor.Event) {
			if event.Type == idlemonitor.EventProgress {
				trayManager.SetRemaining(event.Remaining)
			}
		})
	} else {
		log.Debug("system tray unsupported on this platform")
	}

	fyneApp.Lifecycle().SetOnStarted(controller.Start)
	fyneApp.Lifecycle().SetOnStopped(controller.Stop)

	window.ShowAndRun()
}
