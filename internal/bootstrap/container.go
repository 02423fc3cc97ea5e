package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-commerce-chat-be/internal/config"
	"ai-commerce-chat-be/internal/controller"
	"ai-commerce-chat-be/internal/entity"
	"ai-commerce-chat-be/internal/handler"
	"ai-commerce-chat-be/internal/pkg/logger"
	"ai-commerce-chat-be/internal/pkg/mailer"
	"ai-commerce-chat-be/internal/repository/memory"
	"ai-commerce-chat-be/internal/repository/specification"
	"ai-commerce-chat-be/internal/repository/unitofwork"
	"ai-commerce-chat-be/internal/service"
	"ai-commerce-chat-be/internal/websocket"
	"ai-commerce-chat-be/pkg/embedding"
	"ai-commerce-chat-be/pkg/llm/factory"
	"ai-commerce-chat-be/pkg/msglog"

	pktNats "ai-commerce-chat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	CampaignController controller.ICampaignController
	ProductController  controller.IProductController
	StoreController    controller.IStoreController
	PaymentController  controller.IPaymentController

	// Background Services (exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets
	AgentDeskHandler *handler.AgentDeskHandler
	WebSocketHub     *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// In-memory turn context (last query and shown products per session)
	sessionCache := memory.NewSessionRepository()

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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

	transcript := msglog.NewLog(rdb, 7*24*time.Hour)

	wsLogger := logger.NewIsolatedLogger("logs/agent_desk.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedQueueTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedQueueTopic,
		uowFactory,
		embeddingProvider,
	)

	chatService := service.BuildChatService(
		cfg,
		uowFactory,
		sessionCache,
		embeddingProvider,
		llmProvider,
		transcript,
		wsHub,
		natsPub,
		emailService,
		sysLogger,
	)

	campaignService := service.NewCampaignService(uowFactory)
	productService := service.NewProductService(uowFactory, publisherService, sysLogger)
	storeService := service.NewStoreService(uowFactory, wsHub, sysLogger)
	paymentService := service.NewPaymentService(cfg, uowFactory, natsPub, sysLogger)

	// Widget auth: resolve the public key from the X-Store-Key header.
	storeLookup := func(ctx context.Context, publicKey string) (*entity.Store, error) {
		uow := uowFactory.NewUnitOfWork(ctx)
		return uow.StoreRepository().FindOne(ctx, specification.ByPublicKey{PublicKey: publicKey})
	}

	agentDeskHandler := handler.NewAgentDeskHandler(wsHub, wsLogger)

	notificationService := service.NewNotificationService(natsSub, wsHub, wsLogger)

	return &Container{
		ChatController:     controller.NewChatController(chatService, storeLookup),
		CampaignController: controller.NewCampaignController(campaignService),
		ProductController:  controller.NewProductController(productService),
		StoreController:    controller.NewStoreController(storeService),
		PaymentController:  controller.NewPaymentController(paymentService),

		ConsumerService:     consumerService,
		NotificationService: notificationService,

		AgentDeskHandler: agentDeskHandler,
		WebSocketHub:     wsHub,
	}
}
