package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mamadbah2/farmsim/internal/config"
	"github.com/mamadbah2/farmsim/internal/domain/farm"
	commandsvc "github.com/mamadbah2/farmsim/internal/service/commands"
	reportingsvc "github.com/mamadbah2/farmsim/internal/service/reporting"
	"github.com/mamadbah2/farmsim/internal/tui"
	"github.com/mamadbah2/farmsim/pkg/logger"
)

// The terminal belongs to the UI, so logs go to a file unless LOG_OUTPUT
// names one explicitly.
const defaultLogFile = "farmsim-console.log"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	output := cfg.Log.Output
	if output == "stdout" || output == "stderr" {
		output = defaultLogFile
	}
	baseLogger := logger.Must(logger.New(logger.Options{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
		OutputPath:  output,
	}))
	defer func() { _ = baseLogger.Sync() }()

	game, err := farm.NewGame(cfg.Game.Settings())
	if err != nil {
		baseLogger.Fatal("failed to start game", zap.Error(err))
	}
	printer := message.NewPrinter(language.MustParse(cfg.Game.Locale))

	reportingSvc := reportingsvc.NewService(printer, baseLogger.Named("svc.reporting"))
	dispatcher := commandsvc.NewService(game, reportingSvc, printer, baseLogger.Named("svc.commands"))

	if err := tui.Run(dispatcher); err != nil {
		baseLogger.Error("console exited with error", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
