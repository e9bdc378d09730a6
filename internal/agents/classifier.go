package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"github.com/mikey/inbox-cleanup-agent/internal/utils"
	"go.uber.org/zap"
)

const classifierSystemPrompt = `You are an email classification expert. Categorize emails into one of these categories:

**Categories:**
- urgent: Requires immediate attention (deadlines, action required, time-sensitive)
- personal: From a real human writing specifically to the recipient (not automated)
- newsletter: Subscriptions, newsletters, regular updates from organizations
- promotional: Marketing, sales, offers, advertisements
- informational: Notifications, confirmations, receipts, automated updates
- spam: Suspicious, unwanted, or potentially harmful

CRITICAL: You must respond with ONLY valid JSON. Do not include any text before or after the JSON.

Respond ONLY with this exact JSON format:
{
    "category": "urgent/personal/newsletter/promotional/informational/spam",
    "confidence": "high/medium/low",
    "reasoning": "1-2 sentence explanation of why this email fits this category. Be specific about what made you choose this category."
}

Example good reasoning: "This is a personal email from a colleague discussing a specific project meeting. The conversational tone and specific details indicate it was written by a real person."
Example bad reasoning: "Looks like spam."`

// Classifier categorizes emails for targeted cleanup. Obvious cases are
// resolved by keyword and sender-pattern checks; only nuanced emails reach
// the LLM.
type Classifier struct {
	rules  ClassifierRules
	llm    core.LLMClient
	text   *utils.TextProcessor
	logger *zap.Logger
}

// NewClassifier creates the category classifier agent.
func NewClassifier(rules ClassifierRules, llm core.LLMClient, text *utils.TextProcessor, logger *zap.Logger) *Classifier {
	return &Classifier{rules: rules, llm: llm, text: text, logger: logger}
}

// Evaluate classifies one email into a category.
func (a *Classifier) Evaluate(ctx context.Context, email *core.Email) core.Classification {
	subjectLower := strings.ToLower(email.Subject)
	for _, keyword := range a.rules.UrgentKeywords {
		if strings.Contains(subjectLower, keyword) {
			return core.Classification{
				VerdictInfo: core.VerdictInfo{
					Confidence: core.ConfidenceHigh,
					Reasoning:  fmt.Sprintf("Subject contains urgent indicator: '%s'", email.Subject),
					Method:     core.MethodKeywordMatch,
				},
				Category: core.CategoryUrgent,
			}
		}
	}

	senderLower := strings.ToLower(email.FromAddress)
	for _, pattern := range a.rules.AutomatedSenderPatterns {
		if strings.Contains(senderLower, pattern) {
			return a.classifyAutomated(email)
		}
	}

	return a.aiClassify(ctx, email)
}

// classifyAutomated resolves obviously automated senders without an LLM call.
func (a *Classifier) classifyAutomated(email *core.Email) core.Classification {
	text := strings.ToLower(email.Subject + " " + email.BodyPreview)

	for _, keyword := range a.rules.NewsletterKeywords {
		if strings.Contains(text, keyword) {
			return core.Classification{
				VerdictInfo: core.VerdictInfo{
					Confidence: core.ConfidenceHigh,
					Reasoning:  "Automated newsletter or subscription email",
					Method:     core.MethodPatternMatch,
				},
				Category: core.CategoryNewsletter,
			}
		}
	}

	for _, keyword := range a.rules.PromoKeywords {
		if strings.Contains(text, keyword) {
			return core.Classification{
				VerdictInfo: core.VerdictInfo{
					Confidence: core.ConfidenceHigh,
					Reasoning:  "Automated promotional or marketing email",
					Method:     core.MethodPatternMatch,
				},
				Category: core.CategoryPromotional,
			}
		}
	}

	return core.Classification{
		VerdictInfo: core.VerdictInfo{
			Confidence: core.ConfidenceMedium,
			Reasoning:  "Automated notification or system message",
			Method:     core.MethodPatternMatch,
		},
		Category: core.CategoryInformational,
	}
}

type classifierResponse struct {
	Category   string `json:"category"`
	Confidence string `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

func (a *Classifier) aiClassify(ctx context.Context, email *core.Email) core.Classification {
	userPrompt := fmt.Sprintf(`Classify this email:

Subject: %s
From: %s <%s>
Has Attachments: %t
Preview: %s

Which category does this email belong to?`,
		email.Subject, email.FromName, email.FromAddress,
		email.HasAttachments, a.text.PreparePreview(email.BodyPreview))

	reply, err := a.llm.Complete(ctx, classifierSystemPrompt, userPrompt)
	if err == nil {
		var resp classifierResponse
		if perr := utils.ExtractJSON(reply, &resp); perr == nil {
			if category, ok := parseCategory(resp.Category); ok {
				return core.Classification{
					VerdictInfo: core.VerdictInfo{
						Confidence: parseConfidence(resp.Confidence),
						Reasoning:  resp.Reasoning,
						Method:     core.MethodAIClassification,
					},
					Category: category,
				}
			}
			err = fmt.Errorf("unknown category %q in LLM response", resp.Category)
		} else {
			err = perr
		}
	}

	a.logger.Warn("Classifier LLM fallback failed", zap.Error(err))

	// Fail safe: informational is the least consequential bucket.
	return core.Classification{
		VerdictInfo: core.VerdictInfo{
			Confidence: core.ConfidenceLow,
			Reasoning:  "Error in classification - defaulted to informational",
			Method:     core.MethodErrorDefault,
			Err:        err,
		},
		Category: core.CategoryInformational,
	}
}

func parseCategory(s string) (core.Category, bool) {
	switch c := core.Category(strings.ToLower(strings.TrimSpace(s))); c {
	case core.CategoryUrgent, core.CategoryPersonal, core.CategoryNewsletter,
		core.CategoryPromotional, core.CategoryInformational, core.CategorySpam:
		return c, true
	}
	return "", false
}
