package bootstrap

import (
	"log"
	"os"

	"weavai-be/internal/config"
	"weavai-be/internal/controller"
	"weavai-be/internal/pkg/logger"
	"weavai-be/internal/repository/unitofwork"
	"weavai-be/internal/service"
	"weavai-be/pkg/embedding"
	"weavai-be/pkg/extract"
	"weavai-be/pkg/llm/factory"
	pktNats "weavai-be/pkg/nats"
	"weavai-be/pkg/ocr"
	"weavai-be/pkg/retrieval"
	"weavai-be/pkg/storage"
	"weavai-be/pkg/vision"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	MemoryController   controller.IMemoryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	DocumentService service.IDocumentService

	// Logger shared with main for shutdown logging
	Logger logger.ILogger
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

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	} else {
		log.Printf("[WARN] No embedding provider configured, search degrades to keyword-only")
	}
	if embeddingProvider != nil {
		// Query embeddings repeat heavily during a session.
		embeddingProvider = embedding.NewCachedProvider(embeddingProvider, 0)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider != nil {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 4. Infrastructure
	blobStore, err := storage.NewMinioStore(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.UseSSL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to MinIO: %v", err)
	}

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	var ocrEngine ocr.Engine
	if cfg.Ai.OCREnabled {
		engine, err := ocr.NewTesseractEngine(cfg.Ai.OCRLanguages)
		if err != nil {
			log.Printf("[WARN] OCR engine unavailable: %v", err)
		} else {
			ocrEngine = engine
			log.Printf("[INFO] OCR enabled (%s)", cfg.Ai.OCRLanguages)
		}
	}

	var visionProvider vision.Provider
	if cfg.Keys.Fal != "" {
		visionProvider = vision.NewFalProvider(cfg.Keys.Fal)
		log.Printf("[INFO] Vision OCR enabled (fal.ai)")
	}

	pipeline := &extract.Pipeline{
		OCR:     ocrEngine,
		Blob:    blobStore,
		Vision:  visionProvider,
		Chunker: extract.DefaultChunkerConfig(),
	}

	// 5. Retrieval Engine
	engine := retrieval.NewEngine(embeddingProvider, llmProvider)
	engine.Logger = log.New(os.Stdout, "[retrieval] ", log.LstdFlags)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.IngestTopic)
	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		blobStore,
		pipeline,
		embeddingProvider,
		cfg.Ai.EmbeddingDim,
		natsPub,
		sysLogger,
	)
	memoryService := service.NewMemoryService(
		uowFactory,
		embeddingProvider,
		engine,
		cfg.Ai.EmbeddingDim,
		cfg.Ai.RerankEnabled,
		cfg.Ai.RerankAll,
	)
	consumerService := service.NewConsumerService(pubSub, cfg.App.IngestTopic, documentService)

	// 7. Controllers
	documentController := controller.NewDocumentController(documentService)
	memoryController := controller.NewMemoryController(memoryService)

	return &Container{
		DocumentController: documentController,
		MemoryController:   memoryController,
		ConsumerService:    consumerService,
		DocumentService:    documentService,
		Logger:             sysLogger,
	}
}
