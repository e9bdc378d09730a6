package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"github.com/mikey/inbox-cleanup-agent/internal/utils"
	"github.com/mikey/inbox-cleanup-agent/internal/whitelist"
	"go.uber.org/zap"
)

const documentSystemPrompt = `You are a document preservation expert. Decide whether an email contains an important document that must be kept: payslips, invoices, tax letters, contracts, insurance policies, legal or medical correspondence, official certificates.

CRITICAL: You must respond with ONLY valid JSON. Do not include any text before or after the JSON.

Respond ONLY with this exact JSON format:
{
    "should_preserve": true/false,
    "confidence": "high/medium/low",
    "reasoning": "1-2 sentence explanation of why this email should or should not be preserved. Be specific about what made you decide."
}

Example good reasoning: "This email carries a mortgage statement from a bank, which is a financial record the recipient may need for years. Preserve it."
Example bad reasoning: "Looks important."`

// DocumentPreservation identifies important documents that must never be
// deleted. The VIP allow-list check runs before everything else and is the
// single highest-priority rule in the whole pipeline.
type DocumentPreservation struct {
	rules   DocumentRules
	vip     *whitelist.AddressList
	domains *whitelist.DomainList
	llm     core.LLMClient
	text    *utils.TextProcessor
	logger  *zap.Logger
}

// NewDocumentPreservation creates the document preservation agent.
func NewDocumentPreservation(rules DocumentRules, llm core.LLMClient, text *utils.TextProcessor, logger *zap.Logger) *DocumentPreservation {
	return &DocumentPreservation{
		rules:   rules,
		vip:     whitelist.NewAddressList(rules.VIPAddresses, logger),
		domains: whitelist.NewDomainList(rules.ImportantDomains),
		llm:     llm,
		text:    text,
		logger:  logger,
	}
}

// Evaluate decides whether an email must be preserved.
func (a *DocumentPreservation) Evaluate(ctx context.Context, email *core.Email) core.DocumentVerdict {
	// VIP senders bypass every other check, including the LLM.
	if a.vip.Contains(email.FromAddress) {
		return core.DocumentVerdict{
			VerdictInfo: core.VerdictInfo{
				Confidence: core.ConfidenceHigh,
				Reasoning:  fmt.Sprintf("VIP contact: %s", email.FromAddress),
				Method:     core.MethodVIPMatch,
			},
			Preserve: true,
		}
	}

	text := strings.ToLower(email.Subject + " " + email.BodyPreview)
	var matched []string
	for _, keyword := range a.rules.ImportantKeywords {
		if strings.Contains(text, keyword) {
			matched = append(matched, keyword)
		}
	}
	if len(matched) > 0 {
		return core.DocumentVerdict{
			VerdictInfo: core.VerdictInfo{
				Confidence: core.ConfidenceHigh,
				Reasoning:  fmt.Sprintf("Contains important document keywords: %s", strings.Join(matched, ", ")),
				Method:     core.MethodKeywordMatch,
			},
			Preserve:        true,
			MatchedKeywords: matched,
		}
	}

	if domain, ok := a.domains.Match(email.FromAddress); ok {
		return core.DocumentVerdict{
			VerdictInfo: core.VerdictInfo{
				Confidence: core.ConfidenceHigh,
				Reasoning:  fmt.Sprintf("Sender matches important domain: %s", domain),
				Method:     core.MethodPatternMatch,
			},
			Preserve: true,
		}
	}

	return a.aiEvaluate(ctx, email)
}

type documentResponse struct {
	ShouldPreserve bool   `json:"should_preserve"`
	Confidence     string `json:"confidence"`
	Reasoning      string `json:"reasoning"`
}

func (a *DocumentPreservation) aiEvaluate(ctx context.Context, email *core.Email) core.DocumentVerdict {
	userPrompt := fmt.Sprintf(`Should this email be preserved as an important document?

Subject: %s
From: %s <%s>
Has Attachments: %t
Preview: %s`,
		email.Subject, email.FromName, email.FromAddress,
		email.HasAttachments, a.text.PreparePreview(email.BodyPreview))

	reply, err := a.llm.Complete(ctx, documentSystemPrompt, userPrompt)
	if err == nil {
		var resp documentResponse
		if perr := utils.ExtractJSON(reply, &resp); perr == nil {
			return core.DocumentVerdict{
				VerdictInfo: core.VerdictInfo{
					Confidence: parseConfidence(resp.Confidence),
					Reasoning:  resp.Reasoning,
					Method:     core.MethodAIClassification,
				},
				Preserve: resp.ShouldPreserve,
			}
		} else {
			err = perr
		}
	}

	a.logger.Warn("Document agent LLM fallback failed, preserving by default", zap.Error(err))

	// Fail safe: never risk an important document over a failed call.
	return core.DocumentVerdict{
		VerdictInfo: core.VerdictInfo{
			Confidence: core.ConfidenceLow,
			Reasoning:  "Error in preservation check - defaulted to preserve",
			Method:     core.MethodErrorDefault,
			Err:        err,
		},
		Preserve: true,
	}
}

// parseConfidence maps an LLM confidence string onto the known levels,
// degrading unknown values to low.
func parseConfidence(s string) core.Confidence {
	switch core.Confidence(strings.ToLower(strings.TrimSpace(s))) {
	case core.ConfidenceHigh:
		return core.ConfidenceHigh
	case core.ConfidenceMedium:
		return core.ConfidenceMedium
	default:
		return core.ConfidenceLow
	}
}
