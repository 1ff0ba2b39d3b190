package main

import (
	"embed"
	"fmt"
	"os"

	"autocorrect/internal/database"
	"autocorrect/internal/llm/client"
	"autocorrect/internal/logging"
	appoptions "autocorrect/internal/options"
	"autocorrect/internal/repositories"
	"autocorrect/internal/server"
	"autocorrect/internal/services"
	"autocorrect/internal/utils"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	if err := utils.LoadEnv(); err != nil {
		fmt.Println("Error loading .env:", err)
	}

	opts, err := appoptions.Load()
	if err != nil {
		fmt.Println("Error loading options:", err)
		os.Exit(1)
	}
	logger := logging.Setup(opts.LogLevel)

	catalog, err := services.NewModelCatalog()
	if err != nil {
		logger.Error("load model catalog", "error", err)
		os.Exit(1)
	}

	configRepo := repositories.NewConfigRepository(opts.ConfigFile(), logger)

	var historyRepo repositories.GenerationRecordRepository
	var dbClose func() error
	if opts.HistoryEnabled {
		db, err := database.Init(database.Config{Path: opts.HistoryFile()})
		if err != nil {
			logger.Warn("generation history disabled", "path", opts.HistoryFile(), "error", err)
		} else {
			historyRepo = repositories.NewGenerationRecordRepository(db)
			dbClose = func() error { return database.Close(db) }
		}
	}

	svc := services.NewServices(catalog, configRepo, historyRepo, client.NewRegistry(opts.Endpoints()), logger)
	app := NewApp(svc, logger)
	app.dbClose = dbClose

	router := server.NewRouter(svc, server.Options{
		Logger:            logger,
		OnShortcutChanged: app.shortcutChanged,
	})

	logger.Info("starting", "config", configRepo.Path(), "history", opts.HistoryEnabled, "dev", database.IsDevelopment())

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "AutoCorrect Pro",
		Width:  520,
		Height: 760,
		AssetServer: &assetserver.Options{
			Assets:  assets,
			Handler: router,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "AutoCorrect Pro",
		},
		Logger:           logging.NewWailsLogger(logger),
		LogLevel:         logging.WailsLevel(opts.LogLevel),
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
			svc.Modes,
		},
	})

	if err != nil {
		logger.Error("wails run", "error", err)
	}
}
