package bootstrap

import (
	"log"
	"time"

	"kj-canvas-be/internal/config"
	"kj-canvas-be/internal/controller"
	"kj-canvas-be/internal/history"
	"kj-canvas-be/internal/pkg/logger"
	"kj-canvas-be/internal/repository/implementation"
	"kj-canvas-be/internal/service"
	"kj-canvas-be/internal/storage"
	"kj-canvas-be/internal/websocket"
	"kj-canvas-be/pkg/docai"
	"kj-canvas-be/pkg/gemini"
)

type Container struct {
	// Controllers
	BoardController        controller.IBoardController
	CardController         controller.ICardController
	GroupController        controller.IGroupController
	SegmentationController controller.ISegmentationController
	DocumentController     controller.IDocumentController
	ReportController       controller.IReportController
	UserController         controller.IUserController

	// Background Services (Exposed for main.go to run)
	ConsumerService  service.IConsumerService
	PublisherService service.IPublisherService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Storage
	var store storage.Store
	if cfg.Store.Driver == "memory" {
		store = storage.NewMemoryStore()
		log.Printf("[INFO] Using Store: MEMORY")
	} else {
		fileStore, err := storage.NewFileStore(cfg.Store.DataDir, sysLogger)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize file store: %v", err)
		}
		store = fileStore
		log.Printf("[INFO] Using Store: FILE (%s)", cfg.Store.DataDir)
	}

	cardRepo := implementation.NewCardRepository(store, sysLogger)
	groupRepo := implementation.NewGroupRepository(store, sysLogger)
	identityRepo := implementation.NewIdentityRepository(store)

	// 3. AI Clients
	timeout := time.Duration(cfg.Ai.RequestTimeout) * time.Second
	geminiClient := gemini.NewClient(cfg.Keys.GoogleGemini, cfg.Ai.GeminiModel, cfg.Ai.GeminiBaseURL, timeout)
	docaiClient := docai.NewClient(cfg.Ai.DocumentAiURL, timeout)
	log.Printf("[INFO] Using LLM: GEMINI (%s)", cfg.Ai.GeminiModel)

	// 4. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/canvas.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.BoardEventTopic, sysLogger)
	consumerService := service.NewConsumerService(publisherService, wsHub)

	historyManager := history.NewManager()
	boardService := service.NewBoardService(cardRepo, groupRepo, identityRepo, historyManager, publisherService, sysLogger)

	segmentationService := service.NewSegmentationService(boardService, geminiClient, sysLogger)
	organizeService := service.NewOrganizeService(boardService, geminiClient, sysLogger)
	ingestionService := service.NewIngestionService(boardService, docaiClient, sysLogger)
	reportService := service.NewReportService(boardService, sysLogger)
	userService := service.NewUserService(identityRepo, sysLogger)

	// 6. Controllers
	return &Container{
		BoardController:        controller.NewBoardController(boardService),
		CardController:         controller.NewCardController(boardService),
		GroupController:        controller.NewGroupController(boardService),
		SegmentationController: controller.NewSegmentationController(segmentationService, organizeService),
		DocumentController:     controller.NewDocumentController(ingestionService),
		ReportController:       controller.NewReportController(reportService),
		UserController:         controller.NewUserController(userService),

		ConsumerService:  consumerService,
		PublisherService: publisherService,
		WebSocketHub:     wsHub,
	}
}
