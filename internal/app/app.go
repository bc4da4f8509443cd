package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/seedplan/seedplan/internal/common"
	"github.com/seedplan/seedplan/internal/handlers"
	"github.com/seedplan/seedplan/internal/interfaces"
	"github.com/seedplan/seedplan/internal/services/analysis"
	"github.com/seedplan/seedplan/internal/services/chat"
	"github.com/seedplan/seedplan/internal/services/docgen"
	"github.com/seedplan/seedplan/internal/services/drive"
	"github.com/seedplan/seedplan/internal/services/ingestion"
	"github.com/seedplan/seedplan/internal/services/llm"
	"github.com/seedplan/seedplan/internal/services/projects"
	"github.com/seedplan/seedplan/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	LLMFactory      *llm.ProviderFactory
	DriveService    *drive.Service
	Pipeline        *ingestion.Pipeline
	ProjectService  *projects.Service
	ChatService     *chat.Service
	AnalysisService *analysis.Service
	DocgenService   *docgen.Service

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	AuthHandler      *handlers.AuthHandler
	ProjectHandler   *handlers.ProjectHandler
	WorkspaceHandler *handlers.WorkspaceHandler
	DriveHandler     *handlers.DriveHandler
	ChatHandler      *handlers.ChatHandler
	AnalysisHandler  *handlers.AnalysisHandler
	DocumentHandler  *handlers.DocumentHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	logger.Info().
		Str("environment", cfg.Environment).
		Str("default_provider", string(cfg.LLM.DefaultProvider)).
		Msg("Application initialization complete")

	return app, nil
}

// initDatabase initializes the storage layer (Badger)
func (a *App) initDatabase() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices initializes all business services in dependency order
func (a *App) initServices() error {
	a.LLMFactory = llm.NewProviderFactory(
		&a.Config.Gemini,
		&a.Config.Claude,
		&a.Config.LLM,
		a.StorageManager.KeyValueStorage(),
		a.Logger,
	)
	a.Logger.Debug().Msg("LLM provider factory initialized")

	a.DriveService = drive.NewService(
		a.StorageManager.AuthStorage(),
		&a.Config.Drive,
		a.Logger,
	)
	a.Logger.Debug().Msg("Drive service initialized")

	structurer := ingestion.NewStructurer(a.LLMFactory, &a.Config.Gemini, a.Logger)
	a.Pipeline = ingestion.NewPipeline(a.DriveService, structurer, &a.Config.Ingestion, a.Logger)
	a.Logger.Debug().
		Int("max_files", a.Config.Ingestion.MaxFiles).
		Msg("Ingestion pipeline initialized")

	a.ProjectService = projects.NewService(a.StorageManager, a.Logger)
	a.ChatService = chat.NewService(a.LLMFactory, a.ProjectService, a.Logger)
	a.AnalysisService = analysis.NewService(a.LLMFactory, a.ProjectService, a.Logger)
	a.DocgenService = docgen.NewService(a.LLMFactory, a.ProjectService, a.Logger)
	a.Logger.Debug().Msg("Project services initialized")

	return nil
}

// initHandlers initializes all HTTP handlers
func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.Logger)
	a.AuthHandler = handlers.NewAuthHandler(a.StorageManager.AuthStorage(), a.Logger)
	a.ProjectHandler = handlers.NewProjectHandler(a.ProjectService, a.Logger)
	a.WorkspaceHandler = handlers.NewWorkspaceHandler(a.ProjectService, a.Logger)
	a.DriveHandler = handlers.NewDriveHandler(
		a.DriveService,
		a.Pipeline,
		a.ProjectService,
		&a.Config.Ingestion,
		a.Logger,
	)
	a.ChatHandler = handlers.NewChatHandler(a.ChatService, a.Logger)
	a.AnalysisHandler = handlers.NewAnalysisHandler(a.AnalysisService, a.Logger)
	a.DocumentHandler = handlers.NewDocumentHandler(a.DocgenService, a.Logger)
}

// Close closes all application resources
func (a *App) Close() error {
	if a.LLMFactory != nil {
		if err := a.LLMFactory.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM provider factory")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
