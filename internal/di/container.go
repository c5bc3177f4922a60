package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/agent"
	"github.com/mikey/scam-honeypot/internal/callback"
	"github.com/mikey/scam-honeypot/internal/config"
	"github.com/mikey/scam-honeypot/internal/core"
	"github.com/mikey/scam-honeypot/internal/factory"
	"github.com/mikey/scam-honeypot/internal/intel"
	"github.com/mikey/scam-honeypot/internal/logging"
	"github.com/mikey/scam-honeypot/internal/ml"
	"github.com/mikey/scam-honeypot/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewArtifactFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewFilterFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register classifier: load once, retrain on version mismatch. A store
	// or training failure leaves the detector in heuristic-only mode.
	if err := container.Provide(func(f *factory.ArtifactFactory, logger *zap.Logger) core.ScamClassifier {
		store, err := f.CreateArtifactStore()
		if err != nil {
			logger.Error("Failed to create artifact store, training without persistence", zap.Error(err))
			store = nil
		}
		classifier, err := ml.NewClassifier(store, logger)
		if err != nil {
			logger.Error("Failed to initialize classifier, degrading to heuristics", zap.Error(err))
			return nil
		}
		return classifier
	}); err != nil {
		return nil, err
	}

	// Register detector
	if err := container.Provide(core.NewDetector); err != nil {
		return nil, err
	}

	// Register reply generator
	if err := container.Provide(func(f *factory.LLMFactory) (core.ReplyGenerator, error) {
		return f.CreateReplyGenerator()
	}); err != nil {
		return nil, err
	}

	// Register response agent
	if err := container.Provide(func(
		generator core.ReplyGenerator,
		textProcessor *utils.TextProcessor,
		cfg *config.Config,
		logger *zap.Logger,
	) (core.Responder, error) {
		replyTimeout, err := cfg.GetDuration("agent.reply_timeout")
		if err != nil {
			return nil, err
		}
		return agent.NewResponseAgent(
			generator,
			textProcessor,
			logger,
			replyTimeout,
			cfg.GetInt("agent.max_reply_words"),
		), nil
	}); err != nil {
		return nil, err
	}

	// Register intelligence extractor
	if err := container.Provide(func() core.IntelExtractor {
		return intel.Extract
	}); err != nil {
		return nil, err
	}

	// Register cache repository
	if err := container.Provide(func(f *factory.CacheFactory) (core.CacheRepository, error) {
		return f.CreateCacheRepository()
	}); err != nil {
		return nil, err
	}

	// Register cache TTL and enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) (time.Duration, error) {
		return f.GetCacheTTL()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register intelligence callback notifier
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.IntelNotifier, error) {
		timeout, err := cfg.GetDuration("callback.timeout")
		if err != nil {
			return nil, err
		}
		return callback.NewNotifier(
			cfg.GetString("callback.url"),
			timeout,
			callback.NewMemorySentStore(),
			logger,
		), nil
	}); err != nil {
		return nil, err
	}

	// Register intelligence threshold
	if err := container.Provide(func(cfg *config.Config) int {
		return cfg.GetInt("honeypot.intel_threshold")
	}); err != nil {
		return nil, err
	}

	// Register honeypot service
	if err := container.Provide(core.NewHoneypotService); err != nil {
		return nil, err
	}

	// Register message filter
	if err := container.Provide(func(f *factory.FilterFactory) (core.MessageFilter, error) {
		return f.CreateMessageFilter()
	}); err != nil {
		return nil, err
	}

	return container, nil
}
