package agents

import (
	"context"
	"errors"
	"testing"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

func newDocumentAgent(rules DocumentRules, llm *fakeLLM) *DocumentPreservation {
	return NewDocumentPreservation(rules, llm, newTestText(), zap.NewNop())
}

func TestDocumentVIPBypassesEverything(t *testing.T) {
	llm := &fakeLLM{err: errors.New("LLM must not be called")}
	rules := DefaultDocumentRules()
	rules.VIPAddresses = []string{"boss@company.com"}
	agent := newDocumentAgent(rules, llm)

	verdict := agent.Evaluate(context.Background(), &core.Email{
		FromAddress: "boss@company.com",
		Subject:     "Dinner plans tonight?",
	})

	if !verdict.Preserve {
		t.Error("VIP sender must be preserved")
	}
	if verdict.Method != core.MethodVIPMatch {
		t.Errorf("method = %q, want %q", verdict.Method, core.MethodVIPMatch)
	}
	if verdict.Confidence != core.ConfidenceHigh {
		t.Errorf("confidence = %q, want high", verdict.Confidence)
	}
	if verdict.Reasoning != "VIP contact: boss@company.com" {
		t.Errorf("reasoning = %q", verdict.Reasoning)
	}
	if llm.calls != 0 {
		t.Errorf("LLM called %d times for a VIP match", llm.calls)
	}
}

func TestDocumentVIPMatchIsCaseInsensitive(t *testing.T) {
	rules := DefaultDocumentRules()
	rules.VIPAddresses = []string{"Boss@Company.COM"}
	agent := newDocumentAgent(rules, &fakeLLM{err: errors.New("down")})

	verdict := agent.Evaluate(context.Background(), &core.Email{FromAddress: "boss@company.com"})
	if !verdict.Preserve || verdict.Method != core.MethodVIPMatch {
		t.Errorf("expected VIP match, got %+v", verdict.VerdictInfo)
	}
}

func TestDocumentKeywordMatch(t *testing.T) {
	llm := &fakeLLM{err: errors.New("LLM must not be called")}
	agent := newDocumentAgent(DefaultDocumentRules(), llm)

	verdict := agent.Evaluate(context.Background(), &core.Email{
		FromAddress: "accounts@somevendor.example",
		Subject:     "Your invoice for March",
	})

	if !verdict.Preserve {
		t.Error("invoice email must be preserved")
	}
	if verdict.Method != core.MethodKeywordMatch {
		t.Errorf("method = %q, want %q", verdict.Method, core.MethodKeywordMatch)
	}
	if len(verdict.MatchedKeywords) != 1 || verdict.MatchedKeywords[0] != "invoice" {
		t.Errorf("matched keywords = %v, want [invoice]", verdict.MatchedKeywords)
	}
	if verdict.Reasoning != "Contains important document keywords: invoice" {
		t.Errorf("reasoning = %q", verdict.Reasoning)
	}
	if llm.calls != 0 {
		t.Errorf("LLM called %d times for a keyword match", llm.calls)
	}
}

func TestDocumentDomainMatch(t *testing.T) {
	llm := &fakeLLM{err: errors.New("LLM must not be called")}
	agent := newDocumentAgent(DefaultDocumentRules(), llm)

	verdict := agent.Evaluate(context.Background(), &core.Email{
		FromAddress: "updates@secure.bank.example",
		Subject:     "A note from us",
	})

	if !verdict.Preserve {
		t.Error("bank sender must be preserved")
	}
	if verdict.Method != core.MethodPatternMatch {
		t.Errorf("method = %q, want %q", verdict.Method, core.MethodPatternMatch)
	}
	if verdict.Reasoning != "Sender matches important domain: bank" {
		t.Errorf("reasoning = %q", verdict.Reasoning)
	}
	if llm.calls != 0 {
		t.Errorf("LLM called %d times for a domain match", llm.calls)
	}
}

func TestDocumentAIFallback(t *testing.T) {
	llm := &fakeLLM{reply: `{"should_preserve": false, "confidence": "high", "reasoning": "Casual personal note, not a document"}`}
	agent := newDocumentAgent(DefaultDocumentRules(), llm)

	verdict := agent.Evaluate(context.Background(), &core.Email{
		FromAddress: "friend@example.com",
		Subject:     "Quick note",
		BodyPreview: "See you at lunch",
	})

	if verdict.Preserve {
		t.Error("LLM said not to preserve")
	}
	if verdict.Method != core.MethodAIClassification {
		t.Errorf("method = %q, want %q", verdict.Method, core.MethodAIClassification)
	}
	if verdict.Reasoning != "Casual personal note, not a document" {
		t.Errorf("reasoning = %q", verdict.Reasoning)
	}
	if llm.calls != 1 {
		t.Errorf("LLM calls = %d, want 1", llm.calls)
	}
}

func TestDocumentAIFallbackProseWrappedJSON(t *testing.T) {
	llm := &fakeLLM{reply: `Here is my answer: {"should_preserve": true, "confidence": "medium", "reasoning": "Mentions a renewal"} Hope that helps!`}
	agent := newDocumentAgent(DefaultDocumentRules(), llm)

	verdict := agent.Evaluate(context.Background(), &core.Email{
		FromAddress: "friend@example.com",
		Subject:     "About next month",
	})

	if !verdict.Preserve || verdict.Confidence != core.ConfidenceMedium {
		t.Errorf("unexpected verdict: %+v", verdict.VerdictInfo)
	}
}

func TestDocumentFailSafePreserves(t *testing.T) {
	llm := &fakeLLM{err: errors.New("provider timeout")}
	agent := newDocumentAgent(DefaultDocumentRules(), llm)

	verdict := agent.Evaluate(context.Background(), &core.Email{
		FromAddress: "friend@example.com",
		Subject:     "Quick note",
	})

	if !verdict.Preserve {
		t.Error("fail-safe must preserve")
	}
	if verdict.Method != core.MethodErrorDefault {
		t.Errorf("method = %q, want %q", verdict.Method, core.MethodErrorDefault)
	}
	if verdict.Confidence != core.ConfidenceLow {
		t.Errorf("confidence = %q, want low", verdict.Confidence)
	}
	if verdict.Reasoning != "Error in preservation check - defaulted to preserve" {
		t.Errorf("reasoning = %q", verdict.Reasoning)
	}
	if verdict.Err == nil {
		t.Error("fail-safe verdict must carry the underlying error")
	}
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		in   string
		want core.Confidence
	}{
		{"high", core.ConfidenceHigh},
		{" HIGH ", core.ConfidenceHigh},
		{"medium", core.ConfidenceMedium},
		{"low", core.ConfidenceLow},
		{"certain", core.ConfidenceLow},
		{"", core.ConfidenceLow},
	}
	for _, tt := range tests {
		if got := parseConfidence(tt.in); got != tt.want {
			t.Errorf("parseConfidence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
