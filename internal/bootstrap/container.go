package bootstrap

import (
	"context"
	"log"

	"ai-classroom-be/internal/config"
	"ai-classroom-be/internal/controller"
	"ai-classroom-be/internal/handler"
	"ai-classroom-be/internal/pkg/logger"
	"ai-classroom-be/internal/repository/memory"
	"ai-classroom-be/internal/repository/unitofwork"
	"ai-classroom-be/internal/service"
	"ai-classroom-be/internal/websocket"
	"ai-classroom-be/pkg/generation"

	pktNats "ai-classroom-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SpaceController       controller.ISpaceController
	ChatController        controller.IChatController
	AnalystController     controller.IAnalystController
	SynthesisController   controller.ISynthesisController
	DocumentController    controller.IDocumentController
	InteractionController controller.IInteractionController

	// Background services (exposed for main.go to run)
	TaggingConsumerService service.ITaggingConsumerService
	StreamService          service.IStreamService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Tagging queue (in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Generation provider. A missing key leaves the provider nil and
	// every AI path serves its fallback.
	var provider generation.Provider
	if cfg.Keys.GoogleGemini == "" {
		log.Printf("[WARN] GOOGLE_GEMINI_API_KEY not set, generation disabled (fallback responses only)")
	} else {
		p, err := generation.NewGeminiProvider(context.Background(), cfg.Keys.GoogleGemini, cfg.Ai.GenerationModels)
		if err != nil {
			log.Printf("[WARN] Failed to initialize generation provider: %v (fallback responses only)", err)
		} else {
			provider = p
			log.Printf("[INFO] Generation provider ready, model ladder: %v", cfg.Ai.GenerationModels)
		}
	}

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Space read cache for the chat path
	spaceCache := memory.NewSpaceCache()

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.TaggingTopic)
	analystService := service.NewAnalystService(provider, sysLogger)

	taggingConsumerService := service.NewTaggingConsumerService(
		pubSub,
		cfg.Keys.TaggingTopic,
		uowFactory,
		analystService,
		natsPub,
		sysLogger,
	)

	spaceService := service.NewSpaceService(uowFactory, spaceCache)
	documentService := service.NewDocumentService()
	interactionService := service.NewInteractionService(uowFactory, natsPub, sysLogger)

	chatService := service.NewChatService(
		uowFactory,
		provider,
		publisherService,
		natsPub,
		spaceCache,
		sysLogger,
	)

	synthesisService := service.NewSynthesisService(uowFactory, provider, sysLogger)

	streamService := service.NewStreamService(uowFactory, natsSub, wsHub, wsLogger)

	// Handler
	streamHandler := handler.NewStreamHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,

		SpaceController:       controller.NewSpaceController(spaceService, documentService),
		ChatController:        controller.NewChatController(chatService),
		AnalystController:     controller.NewAnalystController(analystService),
		SynthesisController:   controller.NewSynthesisController(synthesisService),
		DocumentController:    controller.NewDocumentController(documentService),
		InteractionController: controller.NewInteractionController(interactionService),

		TaggingConsumerService: taggingConsumerService,
		StreamService:          streamService,
	}
}
