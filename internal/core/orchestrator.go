package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// categoryIcons decorate reasoning-chain and bot-facing lines.
var categoryIcons = map[Category]string{
	CategoryUrgent:        "🚨",
	CategoryPersonal:      "📧",
	CategoryNewsletter:    "📰",
	CategoryPromotional:   "🛍️",
	CategoryInformational: "📋",
	CategorySpam:          "⚠️",
}

var decisionIcons = map[Action]string{
	ActionPreserve: "🛡️",
	ActionDelete:   "🗑️",
	ActionReview:   "👁️",
}

// CategoryIcon returns the display icon for a classifier category.
func CategoryIcon(c Category) string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "📧"
}

// DecisionIcon returns the display icon for a final decision.
func DecisionIcon(a Action) string {
	if icon, ok := decisionIcons[a]; ok {
		return icon
	}
	return "❓"
}

// Orchestrator runs the four scoring agents plus arbitration over emails.
// Agents are invoked in the fixed document → classifier → spam → unwanted
// order; their prompts are independent of each other, the ordering exists
// for the reasoning chain.
type Orchestrator struct {
	document   DocumentAgent
	classifier ClassifierAgent
	spam       SpamAgent
	unwanted   UnwantedAgent
	cache      AnalysisCache
	logger     *zap.Logger
}

// NewOrchestrator creates an orchestrator over the four agents. cache may be
// nil to disable analysis caching.
func NewOrchestrator(
	document DocumentAgent,
	classifier ClassifierAgent,
	spam SpamAgent,
	unwanted UnwantedAgent,
	cache AnalysisCache,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		document:   document,
		classifier: classifier,
		spam:       spam,
		unwanted:   unwanted,
		cache:      cache,
		logger:     logger,
	}
}

// AnalyzeEmail runs one email through all four agents and arbitration.
func (o *Orchestrator) AnalyzeEmail(ctx context.Context, email *Email) *EmailAnalysis {
	if o.cache != nil {
		if cached, ok := o.cache.Get(email.ID); ok {
			o.logger.Debug("Analysis cache hit", zap.String("email_id", email.ID))
			return cached
		}
	}

	analysis := &EmailAnalysis{Email: email}

	analysis.Document = o.document.Evaluate(ctx, email)
	docLine := "📄 Document Agent: DON'T PRESERVE"
	if analysis.Document.Preserve {
		docLine = "📄 Document Agent: PRESERVE"
	}
	if analysis.Document.Reasoning != "" {
		docLine += " - " + analysis.Document.Reasoning
	}
	analysis.ReasoningChain = append(analysis.ReasoningChain, docLine)

	analysis.Classification = o.classifier.Evaluate(ctx, email)
	analysis.ReasoningChain = append(analysis.ReasoningChain, fmt.Sprintf("%s Classifier: %s (%s)",
		CategoryIcon(analysis.Classification.Category),
		strings.ToUpper(string(analysis.Classification.Category)),
		analysis.Classification.Confidence))

	analysis.Spam = o.spam.Evaluate(ctx, email)
	if analysis.Spam.IsSpam {
		analysis.ReasoningChain = append(analysis.ReasoningChain,
			fmt.Sprintf("⚠️ Spam Detector: SPAM (%d/100)", analysis.Spam.Score))
	} else {
		analysis.ReasoningChain = append(analysis.ReasoningChain,
			fmt.Sprintf("✅ Spam Detector: LEGITIMATE (%d/100)", analysis.Spam.Score))
	}

	analysis.Unwanted = o.unwanted.Evaluate(ctx, email)
	if analysis.Unwanted.IsUnwanted {
		analysis.ReasoningChain = append(analysis.ReasoningChain,
			fmt.Sprintf("🗑️ Unwanted Agent: UNWANTED (score: %d/100, age: %d days)",
				analysis.Unwanted.Score, analysis.Unwanted.AgeDays))
	} else {
		analysis.ReasoningChain = append(analysis.ReasoningChain,
			fmt.Sprintf("✅ Unwanted Agent: WANTED (score: %d/100)", analysis.Unwanted.Score))
	}

	analysis.Decision = Decide(analysis.Document, analysis.Classification, analysis.Spam, analysis.Unwanted)
	analysis.ReasoningChain = append(analysis.ReasoningChain,
		fmt.Sprintf("%s FINAL DECISION: %s (%s confidence) - %s",
			DecisionIcon(analysis.Decision.Action),
			strings.ToUpper(string(analysis.Decision.Action)),
			analysis.Decision.Confidence,
			analysis.Decision.Reason))

	o.logger.Debug("Email analyzed",
		zap.String("email_id", email.ID),
		zap.String("subject", email.Subject),
		zap.String("decision", string(analysis.Decision.Action)),
		zap.String("confidence", string(analysis.Decision.Confidence)))

	if o.cache != nil {
		o.cache.Set(email.ID, analysis)
	}

	return analysis
}

// AnalyzeBatch runs a collection of emails through the pipeline and buckets
// them by final decision.
func (o *Orchestrator) AnalyzeBatch(ctx context.Context, emails []*Email) *BatchResult {
	result := &BatchResult{}

	o.logger.Info("Running multi-agent analysis", zap.Int("emails", len(emails)))

	for _, email := range emails {
		analysis := o.AnalyzeEmail(ctx, email)
		switch analysis.Decision.Action {
		case ActionPreserve:
			result.Preserve = append(result.Preserve, analysis)
		case ActionDelete:
			result.Delete = append(result.Delete, analysis)
		default:
			result.Review = append(result.Review, analysis)
		}
	}

	o.logger.Info("Analysis complete",
		zap.Int("preserve", len(result.Preserve)),
		zap.Int("delete", len(result.Delete)),
		zap.Int("review", len(result.Review)))

	return result
}
