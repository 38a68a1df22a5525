// Package main is the entry point for NeuroScan.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"neuroscan-go/application"
	"neuroscan-go/core/event"
	"neuroscan-go/core/eventbus"
	"neuroscan-go/domain/prediction"
	"neuroscan-go/infrastructure/config"
	"neuroscan-go/infrastructure/imaging"
	"neuroscan-go/infrastructure/inference"
	"neuroscan-go/infrastructure/logging"
	"neuroscan-go/infrastructure/repository"
	"neuroscan-go/presentation"
	"neuroscan-go/resources"

	"fyne.io/fyne/v2/app"
)

const appID = "io.neuroscan.desktop"

func main() {
	cfg, cfgErr := config.Load(config.DefaultPath())
	if cfgErr != nil {
		cfg = config.Default()
	}

	// Initialize logging (dev: console only, prod: rotating file)
	logger, closeLog, err := logging.Setup(loggingConfig(cfg))
	if err != nil {
		// Fallback to stderr if logging setup fails
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting NeuroScan")
	if cfgErr != nil {
		logger.Warn("Invalid config, using defaults", "path", config.DefaultPath(), "error", cfgErr)
	}

	ctx := context.Background()

	// Load model; the app is useless without it
	session, err := inference.NewSession(inference.Config{
		ModelPath:      cfg.Model.Path,
		LibraryPath:    cfg.Model.LibraryPath,
		IntraOpThreads: cfg.Model.IntraOpThreads,
		InterOpThreads: cfg.Model.InterOpThreads,
		Logger:         logger,
	})
	if err != nil {
		logger.Error("Failed to load model", "path", cfg.Model.Path, "error", err)
		closeLog()
		os.Exit(1)
	}
	defer session.Close()

	layout, err := imaging.ResolveLayout(cfg.Model.Layout, session.InputShape())
	if err != nil {
		logger.Error("Invalid model layout", "error", err)
		closeLog()
		os.Exit(1)
	}
	inputSize := cfg.Model.InputSize
	if n := imaging.SizeFromShape(session.InputShape()); n > 0 && n != inputSize {
		logger.Warn("Model input size overrides config", "config", inputSize, "model", n)
		inputSize = n
	}
	loader := imaging.NewLoader(imaging.Config{
		InputSize:   inputSize,
		DisplaySize: cfg.Display.Size,
		Layout:      layout,
	})

	// Initialize history store
	history, closeHistory, err := openHistory(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize history, falling back to memory", "error", err)
		history = prediction.NewService(repository.NewMemoryPredictionRepository(cfg.History.Limit))
	}
	defer closeHistory()

	// Initialize event bus
	eventBus := eventbus.New(100, eventbus.WithLogger(logger))
	defer eventBus.Close()

	eventBus.Publish(event.NewModelLoaded(session.ModelPath(), session.InputShape(), session.OutputShape()))

	// Initialize coordinator
	coordinator := application.NewCoordinator(&application.CoordinatorConfig{
		Analyzer:     application.NewAnalyzer(loader, session),
		History:      history,
		HistoryLimit: cfg.History.Limit,
		EventBus:     eventBus,
		Logger:       logger,
	})
	coordinator.Start()
	defer coordinator.Stop()

	recorder := application.NewHistoryRecorder(history, eventBus, logger)
	defer recorder.Close()

	// Initialize UI event bridge
	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Coordinator: coordinator,
		EventBus:    eventBus,
		Logger:      logger,
	})
	defer bridge.Close()

	// Initialize Fyne app
	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.GetAppIcon())

	// Initialize main window
	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:         fyneApp,
		Bridge:      bridge,
		Logger:      logger,
		DisplaySize: cfg.Display.Size,
	})
	defer mainWindow.Cleanup()

	// Show and run
	mainWindow.Show()
	fyneApp.Run()

	// Start shutdown timeout - force exit after 10 seconds if cleanup hangs
	go func() {
		time.Sleep(10 * time.Second)
		logger.Warn("Shutdown timeout, forcing exit")
		os.Exit(0)
	}()

	logger.Info("Application shutdown complete")
}

func loggingConfig(cfg *config.Config) *logging.Config {
	lc := logging.DefaultConfig()
	if level, err := logging.ParseLevel(cfg.Logging.Level); err == nil {
		lc.Level = level
	}
	lc.Dir = cfg.Logging.Dir
	if cfg.Logging.MaxSizeMB > 0 {
		lc.MaxSizeMB = cfg.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxBackups > 0 {
		lc.MaxBackups = cfg.Logging.MaxBackups
	}
	if cfg.Logging.MaxAgeDays > 0 {
		lc.MaxAgeDays = cfg.Logging.MaxAgeDays
	}
	lc.Compress = cfg.Logging.Compress
	lc.AddSource = cfg.Logging.AddSource
	return lc
}

func openHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*prediction.Service, func(), error) {
	noop := func() {}

	if cfg.History.Backend != config.BackendMongoDB {
		repo := repository.NewMemoryPredictionRepository(cfg.History.Limit)
		return prediction.NewService(repo), noop, nil
	}

	mc := cfg.History.MongoDB
	mongoDB, err := repository.NewMongoDB(ctx, &repository.MongoDBConfig{
		URI:            mc.URI,
		Database:       mc.Database,
		Collection:     mc.Collection,
		ConnectTimeout: mc.ConnectTimeout,
		PingTimeout:    mc.PingTimeout,
	}, logger)
	if err != nil {
		return nil, noop, err
	}

	repo := repository.NewMongoPredictionRepository(mongoDB, mc.Collection, logger)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to create history indexes", "error", err)
	}

	return prediction.NewService(repo), func() {
		if err := mongoDB.Close(context.Background()); err != nil {
			logger.Warn("Failed to close MongoDB", "error", err)
		}
	}, nil
}
