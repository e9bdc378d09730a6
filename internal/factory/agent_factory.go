package factory

import (
	"github.com/mikey/inbox-cleanup-agent/internal/agents"
	"github.com/mikey/inbox-cleanup-agent/internal/config"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"github.com/mikey/inbox-cleanup-agent/internal/utils"
	"go.uber.org/zap"
)

// AgentFactory creates the four scoring agents with their default rule sets,
// extended by config-supplied VIP addresses.
type AgentFactory struct {
	cfg    *config.Config
	llm    core.LLMClient
	text   *utils.TextProcessor
	logger *zap.Logger
}

// NewAgentFactory creates a new agent factory
func NewAgentFactory(cfg *config.Config, llm core.LLMClient, text *utils.TextProcessor, logger *zap.Logger) *AgentFactory {
	return &AgentFactory{
		cfg:    cfg,
		llm:    llm,
		text:   text,
		logger: logger,
	}
}

// CreateDocumentAgent creates the document preservation agent
func (f *AgentFactory) CreateDocumentAgent() core.DocumentAgent {
	rules := agents.DefaultDocumentRules()
	rules.VIPAddresses = append(rules.VIPAddresses, f.cfg.GetAgents().VIPAddresses...)
	return agents.NewDocumentPreservation(rules, f.llm, f.text, f.logger)
}

// CreateClassifierAgent creates the classifier agent
func (f *AgentFactory) CreateClassifierAgent() core.ClassifierAgent {
	return agents.NewClassifier(agents.DefaultClassifierRules(), f.llm, f.text, f.logger)
}

// CreateSpamAgent creates the spam detection agent
func (f *AgentFactory) CreateSpamAgent() (core.SpamAgent, error) {
	return agents.NewSpamDetector(agents.DefaultSpamRules(), f.llm, f.text, f.logger)
}

// CreateUnwantedAgent creates the unwanted email agent
func (f *AgentFactory) CreateUnwantedAgent() core.UnwantedAgent {
	return agents.NewUnwantedDetector(agents.DefaultUnwantedRules(), f.llm, f.text, f.logger)
}
