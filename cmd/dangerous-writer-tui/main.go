package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"dangerouswriter/internal/core/clock"
	"dangerouswriter/internal/core/model"
	"dangerouswriter/internal/logging"
	"dangerouswriter/internal/storage"
	"dangerouswriter/internal/tui"
)

const appName = "DangerousWriter"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dangerous-writer-tui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, settingsErr := storage.LoadSettings(appName)

	// The terminal owns stderr while the editor runs, so logs only go to a file.
	log := zap.NewNop()
	if settings.LogFile != "" {
		fileLog, err := logging.New(logging.Config{Level: settings.LogLevel, FilePath: settings.LogFile})
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		log = fileLog
	}
	defer func() {
		_ = log.Sync()
	}()
	if settingsErr != nil {
		log.Warn("using default settings", zap.Error(settingsErr))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx := logging.WithLogger(context.Background(), log)
	editor := tui.New(ctx, screen, tui.Options{
		Config:    model.DefaultSessionConfig(),
		IntroText: model.IntroText,
		Clock:     clock.System,
	})
	editor.Run()
	return nil
}
