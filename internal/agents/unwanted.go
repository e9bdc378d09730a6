package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"github.com/mikey/inbox-cleanup-agent/internal/utils"
	"go.uber.org/zap"
)

const unwantedSystemPrompt = `You are an email cleanup expert using the ReAct pattern (Reasoning + Acting).

Your job is to REASON about whether an email is unwanted, then ACT on that reasoning.

UNWANTED emails are:
- Newsletters you never read
- Marketing emails you ignore
- Old social media notifications
- Automated receipts/confirmations (old)
- Event invites that have passed
- Job alerts (if old and unread)

NOT UNWANTED (keep these):
- Personal emails from real people
- Important notifications
- Recent receipts/confirmations
- Active subscriptions you engage with
- Work-related emails

CRITICAL: You must respond with ONLY valid JSON.

Use ReAct pattern:
1. REASON: Think about what this email is and whether it's useful
2. ACT: Decide to mark as unwanted or keep

Respond ONLY with this JSON format:
{
    "is_unwanted": true/false,
    "confidence": "high/medium/low",
    "reasoning": "REASON: [Your reasoning about the email] ACT: [Your decision and why]"
}

Example reasoning: "REASON: This is a 2-year-old job alert that was never opened, suggesting the user found employment or is no longer interested in these positions. ACT: Mark as unwanted - old job alerts are cleanup candidates."`

// Unwanted-email indicator weights.
const (
	newsletterWeight = 30
	socialWeight     = 25
	marketingWeight  = 35
	eventWeight      = 20
	ancientAgeWeight = 40 // older than two years
	oldAgeWeight     = 25 // older than one year
	agingWeight      = 15 // older than six months
	unreadWeight     = 10
)

// UnwantedDetector identifies legitimate but unwanted emails: stale
// newsletters, ignored marketing, expired invites. Age and read status
// weigh alongside content patterns.
type UnwantedDetector struct {
	rules  UnwantedRules
	llm    core.LLMClient
	text   *utils.TextProcessor
	logger *zap.Logger
	// now is swappable for tests.
	now func() time.Time
}

// NewUnwantedDetector creates the unwanted email agent.
func NewUnwantedDetector(rules UnwantedRules, llm core.LLMClient, text *utils.TextProcessor, logger *zap.Logger) *UnwantedDetector {
	return &UnwantedDetector{
		rules:  rules,
		llm:    llm,
		text:   text,
		logger: logger,
		now:    time.Now,
	}
}

// Evaluate analyzes one email for unwantedness.
func (a *UnwantedDetector) Evaluate(ctx context.Context, email *core.Email) core.UnwantedVerdict {
	patterns := a.matchPatterns(email)
	ageDays := a.emailAgeDays(email.ReceivedDateTime)
	unread := !email.IsRead

	score, reasons := a.scoreIndicators(patterns, ageDays, unread)

	if score >= a.rules.HighThreshold {
		return core.UnwantedVerdict{
			VerdictInfo: core.VerdictInfo{
				Confidence: core.ConfidenceHigh,
				Reasoning:  strings.Join(reasons, " | "),
				Method:     core.MethodPatternMatch,
			},
			IsUnwanted: true,
			Score:      score,
			AgeDays:    ageDays,
			Patterns:   patterns,
		}
	}

	if score >= a.rules.LowThreshold {
		return a.aiReason(ctx, email, patterns, ageDays, unread, score, reasons)
	}

	return core.UnwantedVerdict{
		VerdictInfo: core.VerdictInfo{
			Confidence: core.ConfidenceHigh,
			Reasoning:  "Email appears relevant and recent",
			Method:     core.MethodPatternMatch,
		},
		IsUnwanted: false,
		Score:      score,
		AgeDays:    ageDays,
		Patterns:   patterns,
	}
}

func (a *UnwantedDetector) matchPatterns(email *core.Email) core.UnwantedPatterns {
	text := strings.ToLower(email.Subject + " " + email.BodyPreview)
	return core.UnwantedPatterns{
		Newsletter: containsAny(text, a.rules.NewsletterKeywords),
		Social:     containsAny(text, a.rules.SocialKeywords),
		Marketing:  containsAny(text, a.rules.MarketingKeywords),
		Event:      containsAny(text, a.rules.EventKeywords),
	}
}

// emailAgeDays parses the date-only prefix of the received timestamp.
// Unparsable dates degrade to age 0 — brand new, least likely to be flagged.
func (a *UnwantedDetector) emailAgeDays(receivedDateTime string) int {
	if len(receivedDateTime) < 10 {
		return 0
	}
	received, err := time.Parse("2006-01-02", receivedDateTime[:10])
	if err != nil {
		return 0
	}
	days := int(a.now().Sub(received).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func (a *UnwantedDetector) scoreIndicators(patterns core.UnwantedPatterns, ageDays int, unread bool) (int, []string) {
	score := 0
	var reasons []string

	if patterns.Newsletter {
		score += newsletterWeight
		reasons = append(reasons, "Newsletter pattern detected")
	}
	if patterns.Social {
		score += socialWeight
		reasons = append(reasons, "Social media notification")
	}
	if patterns.Marketing {
		score += marketingWeight
		reasons = append(reasons, "Marketing/promotional content")
	}
	if patterns.Event {
		score += eventWeight
		reasons = append(reasons, "Event-related email")
	}

	switch {
	case ageDays > 730:
		score += ancientAgeWeight
		reasons = append(reasons, fmt.Sprintf("Very old email (%d days / %d years)", ageDays, ageDays/365))
	case ageDays > 365:
		score += oldAgeWeight
		reasons = append(reasons, fmt.Sprintf("Old email (%d days / %d years)", ageDays, ageDays/365))
	case ageDays > 180:
		score += agingWeight
		reasons = append(reasons, fmt.Sprintf("Aging email (%d days)", ageDays))
	}

	if unread {
		score += unreadWeight
		reasons = append(reasons, "Never opened")
	}

	return score, reasons
}

type unwantedResponse struct {
	IsUnwanted bool   `json:"is_unwanted"`
	Confidence string `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

func (a *UnwantedDetector) aiReason(ctx context.Context, email *core.Email, patterns core.UnwantedPatterns, ageDays int, unread bool, score int, reasons []string) core.UnwantedVerdict {
	userPrompt := fmt.Sprintf(`Analyze this email using ReAct (Reasoning + Acting):

Subject: %s
From: %s <%s>
Age: %d days (%d years, %d days)
Unread: %t
Preview: %s

Pattern Analysis Results:
Unwanted Score: %d/100 (threshold: %d)
Indicators: %s

REASON about this email, then ACT on your reasoning.
Is this unwanted?`,
		email.Subject, email.FromName, email.FromAddress,
		ageDays, ageDays/365, ageDays%365, unread,
		a.text.PreparePreview(email.BodyPreview),
		score, a.rules.HighThreshold, strings.Join(reasons, " | "))

	reply, err := a.llm.Complete(ctx, unwantedSystemPrompt, userPrompt)
	if err == nil {
		var resp unwantedResponse
		if perr := utils.ExtractJSON(reply, &resp); perr == nil {
			reasoning := resp.Reasoning
			if len(reasons) > 0 {
				reasoning = fmt.Sprintf("%s [Pattern score: %d]", reasoning, score)
			}
			return core.UnwantedVerdict{
				VerdictInfo: core.VerdictInfo{
					Confidence: parseConfidence(resp.Confidence),
					Reasoning:  reasoning,
					Method:     core.MethodAIClassification,
				},
				IsUnwanted: resp.IsUnwanted,
				Score:      score,
				AgeDays:    ageDays,
				Patterns:   patterns,
			}
		} else {
			err = perr
		}
	}

	a.logger.Warn("Unwanted agent LLM fallback failed", zap.Error(err), zap.Int("score", score))

	return core.UnwantedVerdict{
		VerdictInfo: core.VerdictInfo{
			Confidence: core.ConfidenceLow,
			Reasoning:  fmt.Sprintf("Error in AI reasoning - defaulted based on score (%d)", score),
			Method:     core.MethodErrorDefault,
			Err:        err,
		},
		IsUnwanted: score >= a.rules.FailSafeThreshold,
		Score:      score,
		AgeDays:    ageDays,
		Patterns:   patterns,
	}
}
