package agents

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"github.com/mikey/inbox-cleanup-agent/internal/utils"
	"github.com/mikey/inbox-cleanup-agent/internal/whitelist"
	"go.uber.org/zap"
)

const spamSystemPrompt = `You are a spam detection expert. Analyze emails to determine if they are spam, phishing attempts, or legitimate.

CRITICAL: You must respond with ONLY valid JSON. Do not include any text before or after the JSON.

Consider these factors:
- Is the sender trustworthy?
- Does the content match common spam/phishing patterns?
- Is the message urgent or pressuring action?
- Are there suspicious links or requests?
- Does it seem like a legitimate business communication?

Respond ONLY with this exact JSON format:
{
    "is_spam": true/false,
    "confidence": "high/medium/low",
    "reasoning": "1-2 sentence explanation of why this is or isn't spam. Be specific about what indicators you found or didn't find."
}

Example good reasoning: "This email uses urgent language and requests account verification, which are common phishing tactics. The sender domain doesn't match the claimed company."
Example bad reasoning: "Looks like spam."`

// Spam indicator weights. Present indicators contribute fixed points to a
// 0-100 score.
const (
	spamPhraseWeight       = 40
	suspiciousSenderWeight = 35
	phishingWeight         = 25
	unknownSenderWeight    = 10
)

// SpamDetector detects spam and phishing through pattern recognition, a
// weighted indicator score, and an LLM only for scores in the uncertain band.
type SpamDetector struct {
	rules          SpamRules
	senderPatterns []*regexp.Regexp
	legitimate     *whitelist.DomainList
	llm            core.LLMClient
	text           *utils.TextProcessor
	logger         *zap.Logger
}

// NewSpamDetector creates the spam detector agent. Invalid sender regexes in
// the rule set are rejected.
func NewSpamDetector(rules SpamRules, llm core.LLMClient, text *utils.TextProcessor, logger *zap.Logger) (*SpamDetector, error) {
	patterns := make([]*regexp.Regexp, 0, len(rules.SuspiciousSenderPatterns))
	for _, pattern := range rules.SuspiciousSenderPatterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid suspicious sender pattern %q: %w", pattern, err)
		}
		patterns = append(patterns, re)
	}

	return &SpamDetector{
		rules:          rules,
		senderPatterns: patterns,
		legitimate:     whitelist.NewDomainList(rules.LegitimateDomains),
		llm:            llm,
		text:           text,
		logger:         logger,
	}, nil
}

// Evaluate analyzes one email for spam.
func (a *SpamDetector) Evaluate(ctx context.Context, email *core.Email) core.SpamVerdict {
	indicators := a.collectIndicators(email)
	score, _, reasons := a.scoreIndicators(indicators)

	// High score: spam, no LLM call needed.
	if score >= a.rules.HighThreshold {
		return core.SpamVerdict{
			VerdictInfo: core.VerdictInfo{
				Confidence: core.ConfidenceHigh,
				Reasoning:  strings.Join(reasons, " | "),
				Method:     core.MethodPatternMatch,
			},
			IsSpam:     true,
			Score:      score,
			Indicators: indicators,
		}
	}

	// Uncertain band: let the LLM make the final call.
	if score >= a.rules.LowThreshold {
		return a.aiDetect(ctx, email, indicators, score, reasons)
	}

	return core.SpamVerdict{
		VerdictInfo: core.VerdictInfo{
			Confidence: core.ConfidenceHigh,
			Reasoning:  "No significant spam indicators detected",
			Method:     core.MethodPatternMatch,
		},
		IsSpam:     false,
		Score:      score,
		Indicators: indicators,
	}
}

func (a *SpamDetector) collectIndicators(email *core.Email) core.SpamIndicators {
	var ind core.SpamIndicators

	_, ind.LegitimateSender = a.legitimate.Match(email.FromAddress)

	text := strings.ToLower(email.Subject + " " + email.BodyPreview)
	for _, phrase := range a.rules.SpamPhrases {
		if strings.Contains(text, phrase) {
			ind.SpamPhrases = append(ind.SpamPhrases, phrase)
		}
	}

	for _, re := range a.senderPatterns {
		if email.FromAddress != "" && re.MatchString(email.FromAddress) {
			ind.SuspiciousSender = true
			ind.SuspiciousPattern = re.String()
			break
		}
	}

	for _, keyword := range a.rules.PhishingKeywords {
		if strings.Contains(text, keyword) {
			ind.PhishingCount++
		}
	}
	// Urgency plus a requested action is the classic phishing combination.
	hasUrgency := containsAny(text, a.rules.UrgencyWords)
	hasAction := containsAny(text, a.rules.ActionWords)
	ind.PhishingDetected = ind.PhishingCount >= 2 || (hasUrgency && hasAction)

	return ind
}

func (a *SpamDetector) scoreIndicators(ind core.SpamIndicators) (int, core.Confidence, []string) {
	score := 0
	var reasons []string

	if len(ind.SpamPhrases) > 0 {
		score += spamPhraseWeight
		reasons = append(reasons, fmt.Sprintf("Contains spam phrases: %s", strings.Join(firstN(ind.SpamPhrases, 3), ", ")))
	}
	if ind.SuspiciousSender {
		score += suspiciousSenderWeight
		reasons = append(reasons, fmt.Sprintf("Suspicious sender pattern: %s", ind.SuspiciousPattern))
	}
	if ind.PhishingDetected {
		score += phishingWeight
		reasons = append(reasons, fmt.Sprintf("Phishing indicators detected (%d keywords)", ind.PhishingCount))
	}
	if !ind.LegitimateSender {
		score += unknownSenderWeight
		reasons = append(reasons, "Sender not from known legitimate domain")
	}

	confidence := core.ConfidenceLow
	switch {
	case score >= a.rules.HighThreshold:
		confidence = core.ConfidenceHigh
	case score >= a.rules.LowThreshold:
		confidence = core.ConfidenceMedium
	}

	return score, confidence, reasons
}

type spamResponse struct {
	IsSpam     bool   `json:"is_spam"`
	Confidence string `json:"confidence"`
	Reasoning  string `json:"reasoning"`
}

func (a *SpamDetector) aiDetect(ctx context.Context, email *core.Email, indicators core.SpamIndicators, score int, reasons []string) core.SpamVerdict {
	context_ := "Mixed signals"
	if len(reasons) > 0 {
		context_ = strings.Join(reasons, " | ")
	}

	userPrompt := fmt.Sprintf(`Analyze this email for spam/phishing:

Subject: %s
From: %s <%s>
Preview: %s

Pattern Analysis Results:
Spam Score: %d/100 (threshold: %d)
Indicators: %s

This email scored in the uncertain range (%d-%d).
Is this spam/phishing or legitimate?`,
		email.Subject, email.FromName, email.FromAddress,
		a.text.PreparePreview(email.BodyPreview),
		score, a.rules.HighThreshold, context_,
		a.rules.LowThreshold, a.rules.HighThreshold-1)

	reply, err := a.llm.Complete(ctx, spamSystemPrompt, userPrompt)
	if err == nil {
		var resp spamResponse
		if perr := utils.ExtractJSON(reply, &resp); perr == nil {
			reasoning := resp.Reasoning
			if len(reasons) > 0 {
				reasoning = fmt.Sprintf("%s [Pattern score: %d]", reasoning, score)
			}
			return core.SpamVerdict{
				VerdictInfo: core.VerdictInfo{
					Confidence: parseConfidence(resp.Confidence),
					Reasoning:  reasoning,
					Method:     core.MethodAIClassification,
				},
				IsSpam:     resp.IsSpam,
				Score:      score,
				Indicators: indicators,
			}
		} else {
			err = perr
		}
	}

	a.logger.Warn("Spam detector LLM fallback failed", zap.Error(err), zap.Int("score", score))

	// Fail safe: decide by score against the midpoint.
	return core.SpamVerdict{
		VerdictInfo: core.VerdictInfo{
			Confidence: core.ConfidenceLow,
			Reasoning:  fmt.Sprintf("Error in AI classification - defaulted based on score (%d)", score),
			Method:     core.MethodErrorDefault,
			Err:        err,
		},
		IsSpam:     score >= a.rules.FailSafeThreshold,
		Score:      score,
		Indicators: indicators,
	}
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
