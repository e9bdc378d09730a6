package agents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

func newSpamAgent(t *testing.T, llm *fakeLLM) *SpamDetector {
	t.Helper()
	agent, err := NewSpamDetector(DefaultSpamRules(), llm, newTestText(), zap.NewNop())
	if err != nil {
		t.Fatalf("NewSpamDetector: %v", err)
	}
	return agent
}

func TestSpamDetectorRejectsInvalidPattern(t *testing.T) {
	rules := DefaultSpamRules()
	rules.SuspiciousSenderPatterns = []string{"[unclosed"}
	if _, err := NewSpamDetector(rules, &fakeLLM{}, newTestText(), zap.NewNop()); err == nil {
		t.Fatal("expected an error for an invalid sender pattern")
	}
}

func TestSpamObviousPhishingSkipsLLM(t *testing.T) {
	llm := &fakeLLM{err: errors.New("LLM must not be called")}
	agent := newSpamAgent(t, llm)

	got := agent.Evaluate(context.Background(), &core.Email{
		FromAddress: "alert@secure-update.ru",
		Subject:     "URGENT: Verify your account NOW",
		BodyPreview: "Click here to confirm your identity",
	})

	if !got.IsSpam {
		t.Error("obvious phishing must be flagged")
	}
	if got.Score < 60 {
		t.Errorf("score = %d, want >= 60", got.Score)
	}
	if got.Confidence != core.ConfidenceHigh || got.Method != core.MethodPatternMatch {
		t.Errorf("unexpected verdict info: %+v", got.VerdictInfo)
	}
	if !got.Indicators.SuspiciousSender {
		t.Error("ru sender should match the suspicious pattern list")
	}
	if got.Indicators.PhishingCount < 2 || !got.Indicators.PhishingDetected {
		t.Errorf("phishing indicators = %+v", got.Indicators)
	}
	if !strings.Contains(got.Reasoning, "Contains spam phrases") {
		t.Errorf("reasoning = %q, want spam phrase mention", got.Reasoning)
	}
	if llm.calls != 0 {
		t.Errorf("LLM calls = %d, want 0", llm.calls)
	}
}

func TestSpamCleanEmailSkipsLLM(t *testing.T) {
	llm := &fakeLLM{err: errors.New("LLM must not be called")}
	agent := newSpamAgent(t, llm)

	got := agent.Evaluate(context.Background(), &core.Email{
		FromAddress: "friend@gmail.com",
		Subject:     "Lunch tomorrow?",
		BodyPreview: "See you at noon",
	})

	if got.IsSpam {
		t.Error("clean email flagged as spam")
	}
	if got.Score >= 35 {
		t.Errorf("score = %d, want < 35", got.Score)
	}
	if got.Reasoning != "No significant spam indicators detected" {
		t.Errorf("reasoning = %q", got.Reasoning)
	}
	if llm.calls != 0 {
		t.Errorf("LLM calls = %d, want 0", llm.calls)
	}
}

// admin@*.info matches a suspicious pattern (+35) and the sender is not on
// the legitimate domain list (+10), landing the score at 45 in the uncertain
// band where the LLM decides.
func uncertainSpamEmail() *core.Email {
	return &core.Email{
		FromAddress: "admin@something.info",
		Subject:     "Account notice",
	}
}

func TestSpamUncertainBandUsesLLM(t *testing.T) {
	llm := &fakeLLM{reply: `{"is_spam": true, "confidence": "medium", "reasoning": "Impersonal admin notice"}`}
	agent := newSpamAgent(t, llm)

	got := agent.Evaluate(context.Background(), uncertainSpamEmail())

	if got.Score != 45 {
		t.Fatalf("score = %d, want 45", got.Score)
	}
	if !got.IsSpam {
		t.Error("LLM verdict not honored")
	}
	if got.Method != core.MethodAIClassification || got.Confidence != core.ConfidenceMedium {
		t.Errorf("unexpected verdict info: %+v", got.VerdictInfo)
	}
	if got.Reasoning != "Impersonal admin notice [Pattern score: 45]" {
		t.Errorf("reasoning = %q", got.Reasoning)
	}
	if llm.calls != 1 {
		t.Errorf("LLM calls = %d, want 1", llm.calls)
	}
}

func TestSpamFailSafeBelowMidpoint(t *testing.T) {
	llm := &fakeLLM{err: errors.New("provider down")}
	agent := newSpamAgent(t, llm)

	got := agent.Evaluate(context.Background(), uncertainSpamEmail())

	if got.IsSpam {
		t.Error("score 45 is below the fail-safe midpoint, must not be spam")
	}
	if got.Confidence != core.ConfidenceLow || got.Method != core.MethodErrorDefault {
		t.Errorf("unexpected verdict info: %+v", got.VerdictInfo)
	}
	if got.Reasoning != "Error in AI classification - defaulted based on score (45)" {
		t.Errorf("reasoning = %q", got.Reasoning)
	}
	if got.Err == nil {
		t.Error("fail-safe verdict must carry the underlying error")
	}
}

func TestSpamFailSafeAtMidpoint(t *testing.T) {
	llm := &fakeLLM{err: errors.New("provider down")}
	agent := newSpamAgent(t, llm)

	// Spam phrase (+40) plus unknown sender (+10) = 50, exactly the
	// fail-safe midpoint.
	got := agent.Evaluate(context.Background(), &core.Email{
		FromAddress: "deals@randomshop.com",
		Subject:     "Limited time offer inside",
	})

	if got.Score != 50 {
		t.Fatalf("score = %d, want 50", got.Score)
	}
	if !got.IsSpam {
		t.Error("score at the midpoint must default to spam")
	}
	if got.Method != core.MethodErrorDefault {
		t.Errorf("method = %q", got.Method)
	}
}

func TestSpamKeywordTierIsDeterministic(t *testing.T) {
	llm := &fakeLLM{err: errors.New("provider down")}
	agent := newSpamAgent(t, llm)
	email := &core.Email{
		FromAddress: "alert@secure-update.ru",
		Subject:     "URGENT: Verify your account NOW",
		BodyPreview: "Click here to confirm your identity",
	}

	first := agent.Evaluate(context.Background(), email)
	for i := 0; i < 5; i++ {
		got := agent.Evaluate(context.Background(), email)
		if got.IsSpam != first.IsSpam || got.Score != first.Score || got.Reasoning != first.Reasoning {
			t.Fatalf("verdict drift on identical input: %+v != %+v", got, first)
		}
	}
	if llm.calls != 0 {
		t.Errorf("LLM calls = %d, want 0", llm.calls)
	}
}
