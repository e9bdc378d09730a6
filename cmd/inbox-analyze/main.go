package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mikey/inbox-cleanup-agent/internal/adapters/graph"
	"github.com/mikey/inbox-cleanup-agent/internal/config"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"github.com/mikey/inbox-cleanup-agent/internal/factory"
	"github.com/mikey/inbox-cleanup-agent/internal/logging"
	"go.uber.org/zap"
)

var (
	// LLM provider flags
	provider  = flag.String("provider", "openai", "LLM provider (openai, bedrock, gemini)")
	openaiKey = flag.String("openai-api-key", "", "API key for OpenAI")
	geminiKey = flag.String("gemini-api-key", "", "API key for Google Gemini")

	// Mailbox flags
	graphToken = flag.String("graph-token", "", "Microsoft Graph access token")
	inboxTag   = flag.String("tag", "other", "Inbox classification tag to analyze (other, focused, or empty for all)")
	limit      = flag.Int("limit", 50, "Number of emails to fetch")

	// Output flags
	dryRun     = flag.Bool("dry-run", true, "Analyze only, never delete")
	showChains = flag.Bool("chains", false, "Print per-email reasoning chains")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		cfg = createConfigFromFlags()
	}

	ctx := context.Background()

	llmClient, err := factory.NewLLMFactory(cfg, logger).CreateLLMClient()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	mail, err := graph.NewFactory(cfg, logger).CreateMailStore()
	if err != nil {
		logger.Fatal("Failed to create mail store", zap.Error(err))
	}

	textProcessor := factory.NewTextProcessorFactory(cfg, logger).CreateTextProcessor()
	agentFactory := factory.NewAgentFactory(cfg, llmClient, textProcessor, logger)

	spamAgent, err := agentFactory.CreateSpamAgent()
	if err != nil {
		logger.Fatal("Failed to create spam agent", zap.Error(err))
	}

	orch := core.NewOrchestrator(
		agentFactory.CreateDocumentAgent(),
		agentFactory.CreateClassifierAgent(),
		spamAgent,
		agentFactory.CreateUnwantedAgent(),
		nil,
		logger,
	)

	emails, err := mail.ListMessages(ctx, *inboxTag, *limit)
	if err != nil {
		logger.Fatal("Failed to fetch emails", zap.Error(err))
	}
	if len(emails) == 0 {
		fmt.Println("No emails fetched.")
		return
	}

	fmt.Printf("Analyzing %d emails...\n\n", len(emails))

	result := orch.AnalyzeBatch(ctx, emails)

	printBucket("PRESERVE", result.Preserve, *showChains)
	printBucket("REVIEW", result.Review, *showChains)
	printBucket("DELETE", result.Delete, *showChains)

	fmt.Printf("\nSummary: %d preserve, %d review, %d delete\n",
		len(result.Preserve), len(result.Review), len(result.Delete))

	if *dryRun {
		fmt.Println("Dry run: nothing was deleted.")
		return
	}

	if len(result.Delete) == 0 {
		fmt.Println("Nothing to delete.")
		return
	}

	backups, err := factory.NewBackupFactory(cfg, logger).CreateBackupStore()
	if err != nil {
		logger.Fatal("Failed to create backup store", zap.Error(err))
	}

	toDelete := make([]*core.Email, 0, len(result.Delete))
	for _, a := range result.Delete {
		toDelete = append(toDelete, a.Email)
	}

	deleter := core.NewDeleter(mail, backups, logger)
	res, err := deleter.Delete(ctx, toDelete, "", true)
	if err != nil {
		logger.Fatal("Deletion failed", zap.Error(err))
	}

	fmt.Printf("\nDeleted %d of %d (backup: %s)\n", res.Success, res.Total, res.BackupLocation)
	for _, e := range res.Errors {
		fmt.Printf("  failed: %s (%s)\n", e.Subject, e.Error)
	}
}

func printBucket(name string, analyses []*core.EmailAnalysis, chains bool) {
	if len(analyses) == 0 {
		return
	}
	fmt.Printf("=== %s (%d) ===\n", name, len(analyses))
	for _, a := range analyses {
		from := a.Email.FromAddress
		if a.Email.FromName != "" {
			from = fmt.Sprintf("%s <%s>", a.Email.FromName, a.Email.FromAddress)
		}
		fmt.Printf("- %s\n  From: %s\n  Reason: %s\n", a.Email.Subject, from, a.Decision.Reason)
		if chains {
			fmt.Printf("  %s\n", strings.Join(a.ReasoningChain, "\n  "))
		}
	}
	fmt.Println()
}

// createConfigFromFlags builds a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("llm.provider", *provider)
	if *openaiKey != "" {
		v.Set("openai.api_key", *openaiKey)
	}
	if *geminiKey != "" {
		v.Set("gemini.api_key", *geminiKey)
	}
	if *graphToken != "" {
		v.Set("graph.access_token", *graphToken)
	}

	return config.NewFromViper(v)
}
