package agents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

func newUnwantedAgent(llm *fakeLLM, now time.Time) *UnwantedDetector {
	agent := NewUnwantedDetector(DefaultUnwantedRules(), llm, newTestText(), zap.NewNop())
	if !now.IsZero() {
		agent.now = func() time.Time { return now }
	}
	return agent
}

func TestUnwantedOldUnreadNewsletter(t *testing.T) {
	llm := &fakeLLM{err: errors.New("LLM must not be called")}
	received := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	agent := newUnwantedAgent(llm, received.Add(800*24*time.Hour))

	got := agent.Evaluate(context.Background(), &core.Email{
		Subject:          "Weekly Newsletter",
		BodyPreview:      "Click unsubscribe to stop",
		ReceivedDateTime: "2023-01-15T10:00:00Z",
		IsRead:           false,
	})

	// Newsletter pattern (30) + over two years old (40) + unread (10) = 80.
	if got.Score != 80 {
		t.Fatalf("score = %d, want 80", got.Score)
	}
	if !got.IsUnwanted {
		t.Error("old unread newsletter must be unwanted")
	}
	if got.AgeDays != 800 {
		t.Errorf("age = %d days, want 800", got.AgeDays)
	}
	if got.Confidence != core.ConfidenceHigh || got.Method != core.MethodPatternMatch {
		t.Errorf("unexpected verdict info: %+v", got.VerdictInfo)
	}
	if !strings.Contains(got.Reasoning, "Very old email (800 days / 2 years)") {
		t.Errorf("reasoning = %q", got.Reasoning)
	}
	if !strings.Contains(got.Reasoning, "Never opened") {
		t.Errorf("reasoning = %q, want unread mention", got.Reasoning)
	}
	if !got.Patterns.Newsletter {
		t.Error("newsletter pattern not recorded")
	}
	if llm.calls != 0 {
		t.Errorf("LLM calls = %d, want 0", llm.calls)
	}
}

func TestUnwantedRecentReadEmail(t *testing.T) {
	llm := &fakeLLM{err: errors.New("LLM must not be called")}
	received := time.Date(2026, 8, 19, 0, 0, 0, 0, time.UTC)
	agent := newUnwantedAgent(llm, received.Add(10*24*time.Hour))

	got := agent.Evaluate(context.Background(), &core.Email{
		Subject:          "Re: project question",
		ReceivedDateTime: "2026-08-19T09:00:00Z",
		IsRead:           true,
	})

	if got.IsUnwanted {
		t.Error("recent read email flagged as unwanted")
	}
	if got.Score != 0 {
		t.Errorf("score = %d, want 0", got.Score)
	}
	if got.Reasoning != "Email appears relevant and recent" {
		t.Errorf("reasoning = %q", got.Reasoning)
	}
	if llm.calls != 0 {
		t.Errorf("LLM calls = %d, want 0", llm.calls)
	}
}

// An unread recent newsletter scores 30 + 10 = 40, the bottom of the
// uncertain band.
func uncertainUnwantedEmail() *core.Email {
	return &core.Email{
		Subject:          "Monthly update",
		ReceivedDateTime: "2026-08-28T09:00:00Z",
		IsRead:           false,
	}
}

func TestUnwantedUncertainBandUsesLLM(t *testing.T) {
	llm := &fakeLLM{reply: `{"is_unwanted": false, "confidence": "medium", "reasoning": "REASON: recent newsletter the user may still read. ACT: keep."}`}
	received := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	agent := newUnwantedAgent(llm, received.Add(24*time.Hour))

	got := agent.Evaluate(context.Background(), uncertainUnwantedEmail())

	if got.Score != 40 {
		t.Fatalf("score = %d, want 40", got.Score)
	}
	if got.IsUnwanted {
		t.Error("LLM keep verdict not honored")
	}
	if got.Method != core.MethodAIClassification || got.Confidence != core.ConfidenceMedium {
		t.Errorf("unexpected verdict info: %+v", got.VerdictInfo)
	}
	if !strings.HasSuffix(got.Reasoning, "[Pattern score: 40]") {
		t.Errorf("reasoning = %q, want pattern score suffix", got.Reasoning)
	}
	if llm.calls != 1 {
		t.Errorf("LLM calls = %d, want 1", llm.calls)
	}
}

func TestUnwantedFailSafeBelowThreshold(t *testing.T) {
	llm := &fakeLLM{err: errors.New("provider down")}
	received := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	agent := newUnwantedAgent(llm, received.Add(24*time.Hour))

	got := agent.Evaluate(context.Background(), uncertainUnwantedEmail())

	if got.IsUnwanted {
		t.Error("score 40 is below the fail-safe threshold, must not be unwanted")
	}
	if got.Confidence != core.ConfidenceLow || got.Method != core.MethodErrorDefault {
		t.Errorf("unexpected verdict info: %+v", got.VerdictInfo)
	}
	if got.Reasoning != "Error in AI reasoning - defaulted based on score (40)" {
		t.Errorf("reasoning = %q", got.Reasoning)
	}
	if got.Err == nil {
		t.Error("fail-safe verdict must carry the underlying error")
	}
}

func TestUnwantedFailSafeAboveThreshold(t *testing.T) {
	llm := &fakeLLM{err: errors.New("provider down")}
	received := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	agent := newUnwantedAgent(llm, received.Add(200*24*time.Hour))

	// Marketing (35) + aging (15) + unread (10) = 60, above the fail-safe
	// threshold but still inside the uncertain band.
	got := agent.Evaluate(context.Background(), &core.Email{
		Subject:          "Flash sale today only",
		ReceivedDateTime: "2026-01-01T09:00:00Z",
		IsRead:           false,
	})

	if got.Score != 60 {
		t.Fatalf("score = %d, want 60", got.Score)
	}
	if !got.IsUnwanted {
		t.Error("score 60 must default to unwanted when the LLM fails")
	}
	if got.Method != core.MethodErrorDefault {
		t.Errorf("method = %q", got.Method)
	}
}

func TestEmailAgeDays(t *testing.T) {
	now := time.Date(2026, 6, 25, 12, 0, 0, 0, time.UTC)
	agent := newUnwantedAgent(&fakeLLM{}, now)

	tests := []struct {
		in   string
		want int
	}{
		{"2026-06-15T08:30:00Z", 10},
		{"2026-06-25T00:00:00Z", 0},
		{"2027-01-01T00:00:00Z", 0}, // future dates never go negative
		{"", 0},
		{"garbage", 0},
		{"not-a-date-at-all", 0},
	}
	for _, tt := range tests {
		if got := agent.emailAgeDays(tt.in); got != tt.want {
			t.Errorf("emailAgeDays(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
