package bootstrap

import (
	"context"
	"log"

	"doc-assistant-be/internal/config"
	"doc-assistant-be/internal/controller"
	"doc-assistant-be/internal/lifecycle"
	"doc-assistant-be/internal/pkg/logger"
	"doc-assistant-be/internal/rag"
	"doc-assistant-be/internal/repository/memory"
	"doc-assistant-be/internal/repository/unitofwork"
	"doc-assistant-be/internal/service"
	"doc-assistant-be/pkg/embedding"
	"doc-assistant-be/pkg/embedding/jina"
	"doc-assistant-be/pkg/llm/factory"
	pkgNats "doc-assistant-be/pkg/nats"
	"doc-assistant-be/pkg/pdfutil"
	"doc-assistant-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	ChatController     controller.IChatController
	SessionController  controller.ISessionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	natsPublisher *pkgNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. External Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	embeddingProvider = embedding.NewRetryingProvider(
		embeddingProvider,
		cfg.Ai.MaxAttempts,
		cfg.Ai.RetryBaseDelay,
		cfg.Ai.RetryMaxDelay,
	)

	llmProvider, err := factory.NewLLMProvider(factory.Params{
		Provider:   cfg.Answerer.Provider,
		ApiKey:     cfg.Answerer.GroqAPIKey,
		Model:      cfg.Answerer.Model,
		BaseURL:    cfg.Ai.OllamaBaseURL,
		MaxTokens:  cfg.Answerer.MaxTokens,
		Timeout:    cfg.Answerer.RequestTimeout,
		MaxRetries: cfg.Answerer.MaxRetries,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Answerer.Provider, cfg.Answerer.Model)

	blobGateway := storage.NewGateway(cfg.Storage.SupabaseURL, cfg.Storage.ServiceKey, cfg.Storage.Bucket)

	// NATS event bus is auxiliary: a missing broker degrades to warnings.
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 4. Core RAG Components
	vectorIndex := rag.NewVectorIndex(uowFactory, embeddingProvider, cfg.Rag.BaseCollection, sysLogger)

	pipelineCache, err := rag.NewPipelineCache(cfg.Rag.CacheCapacity)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize pipeline cache: %v", err)
	}

	guestRegistry := memory.NewGuestRegistry(cfg.App.GuestTTL)

	lifecycleManager := lifecycle.NewManager(blobGateway, vectorIndex, pipelineCache, sysLogger)

	// 5. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.IndexTopic)

	indexerService := service.NewIndexerService(
		blobGateway,
		pdfutil.PageTexts,
		vectorIndex,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
		sysLogger,
	)

	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IndexTopic,
		indexerService,
		sysLogger,
	)

	documentService := service.NewDocumentService(
		uowFactory,
		blobGateway,
		publisherService,
		guestRegistry,
		natsPub,
		sysLogger,
	)

	chatService := service.NewChatService(
		uowFactory,
		pipelineCache,
		vectorIndex,
		llmProvider,
		cfg.Rag.RetrieverK,
		guestRegistry,
		sysLogger,
	)

	sessionService := service.NewSessionService(
		uowFactory,
		lifecycleManager,
		guestRegistry,
		natsPub,
		sysLogger,
	)

	// Expired guests get the same cleanup as an explicit request.
	guestRegistry.OnExpired(func(token string) {
		if _, err := sessionService.CleanupGuest(context.Background(), token); err != nil {
			sysLogger.Error("bootstrap", "guest expiry cleanup failed", map[string]interface{}{
				"guest_token": token,
				"error":       err.Error(),
			})
		}
	})

	// 6. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService),
		ChatController:     controller.NewChatController(chatService),
		SessionController:  controller.NewSessionController(sessionService),

		ConsumerService: consumerService,

		Logger: sysLogger,

		natsPublisher: natsPub,
	}
}

// Shutdown releases external connections.
func (c *Container) Shutdown() {
	if c.natsPublisher != nil {
		c.natsPublisher.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
