package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/inbox-cleanup-agent/internal/adapters/graph"
	"github.com/mikey/inbox-cleanup-agent/internal/bot"
	"github.com/mikey/inbox-cleanup-agent/internal/config"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"github.com/mikey/inbox-cleanup-agent/internal/factory"
	"github.com/mikey/inbox-cleanup-agent/internal/logging"
	"github.com/mikey/inbox-cleanup-agent/internal/utils"
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

	// Register text processor
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewBackupFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewNotifierFactory); err != nil {
		return nil, err
	}

	// Register LLM client
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register analysis cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.AnalysisCache, error) {
		return f.CreateAnalysisCache()
	}); err != nil {
		return nil, err
	}

	// Register backup store
	if err := container.Provide(func(f *factory.BackupFactory) (core.BackupStore, error) {
		return f.CreateBackupStore()
	}); err != nil {
		return nil, err
	}

	// Register mail store
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) (core.MailStore, error) {
		return graph.NewFactory(cfg, logger).CreateMailStore()
	}); err != nil {
		return nil, err
	}

	// Register scoring agents
	if err := container.Provide(factory.NewAgentFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.AgentFactory) core.DocumentAgent {
		return f.CreateDocumentAgent()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.AgentFactory) core.ClassifierAgent {
		return f.CreateClassifierAgent()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.AgentFactory) (core.SpamAgent, error) {
		return f.CreateSpamAgent()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.AgentFactory) core.UnwantedAgent {
		return f.CreateUnwantedAgent()
	}); err != nil {
		return nil, err
	}

	// Register orchestrator and deleter
	if err := container.Provide(core.NewOrchestrator); err != nil {
		return nil, err
	}
	if err := container.Provide(core.NewDeleter); err != nil {
		return nil, err
	}

	// Register bot transport and service
	if err := container.Provide(func(f *factory.NotifierFactory) (bot.Transport, error) {
		return f.CreateTransport()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(
		cfg *config.Config,
		orch *core.Orchestrator,
		deleter *core.Deleter,
		mail core.MailStore,
		backups core.BackupStore,
		transport bot.Transport,
		logger *zap.Logger,
	) *bot.Service {
		botCfg := cfg.GetBot()
		return bot.NewService(orch, deleter, mail, backups, transport,
			botCfg.AnalyzeLimit, botCfg.InboxTag, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
