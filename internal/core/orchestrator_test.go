package core

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubAgents struct {
	doc      DocumentVerdict
	cls      Classification
	spam     SpamVerdict
	unwanted UnwantedVerdict
	calls    int
}

func (s *stubAgents) document() DocumentAgent {
	return docFn(func() DocumentVerdict { s.calls++; return s.doc })
}
func (s *stubAgents) classifier() ClassifierAgent {
	return clsFn(func() Classification { s.calls++; return s.cls })
}
func (s *stubAgents) spamAgent() SpamAgent {
	return spamFn(func() SpamVerdict { s.calls++; return s.spam })
}
func (s *stubAgents) unwantedAgent() UnwantedAgent {
	return unwFn(func() UnwantedVerdict { s.calls++; return s.unwanted })
}

type docFn func() DocumentVerdict

func (f docFn) Evaluate(ctx context.Context, email *Email) DocumentVerdict { return f() }

type clsFn func() Classification

func (f clsFn) Evaluate(ctx context.Context, email *Email) Classification { return f() }

type spamFn func() SpamVerdict

func (f spamFn) Evaluate(ctx context.Context, email *Email) SpamVerdict { return f() }

type unwFn func() UnwantedVerdict

func (f unwFn) Evaluate(ctx context.Context, email *Email) UnwantedVerdict { return f() }

func newStubOrchestrator(s *stubAgents, cache AnalysisCache) *Orchestrator {
	return NewOrchestrator(s.document(), s.classifier(), s.spamAgent(), s.unwantedAgent(), cache, zap.NewNop())
}

func TestAnalyzeEmailReasoningChain(t *testing.T) {
	stub := &stubAgents{
		doc:      DocumentVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh, Reasoning: "VIP contact: boss@company.com"}, Preserve: true},
		cls:      Classification{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, Category: CategoryPersonal},
		spam:     SpamVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, IsSpam: false, Score: 10},
		unwanted: UnwantedVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, IsUnwanted: false, Score: 15},
	}
	orch := newStubOrchestrator(stub, nil)

	analysis := orch.AnalyzeEmail(context.Background(), &Email{ID: "e1", Subject: "Hello"})

	if len(analysis.ReasoningChain) != 5 {
		t.Fatalf("chain length = %d, want 5: %v", len(analysis.ReasoningChain), analysis.ReasoningChain)
	}
	want := []string{
		"📄 Document Agent: PRESERVE - VIP contact: boss@company.com",
		"📧 Classifier: PERSONAL (high)",
		"✅ Spam Detector: LEGITIMATE (10/100)",
		"✅ Unwanted Agent: WANTED (score: 15/100)",
		"🛡️ FINAL DECISION: PRESERVE (high confidence) - Document Agent: Important document detected",
	}
	for i, line := range want {
		if analysis.ReasoningChain[i] != line {
			t.Errorf("chain[%d] = %q, want %q", i, analysis.ReasoningChain[i], line)
		}
	}
}

func TestAnalyzeEmailUnwantedChain(t *testing.T) {
	stub := &stubAgents{
		doc:      DocumentVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}},
		cls:      Classification{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, Category: CategoryNewsletter},
		spam:     SpamVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, Score: 5},
		unwanted: UnwantedVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, IsUnwanted: true, Score: 80, AgeDays: 800},
	}
	orch := newStubOrchestrator(stub, nil)

	analysis := orch.AnalyzeEmail(context.Background(), &Email{ID: "e2", Subject: "Weekly digest"})

	if analysis.Decision.Action != ActionDelete {
		t.Errorf("action = %q, want delete", analysis.Decision.Action)
	}
	if got := analysis.ReasoningChain[3]; got != "🗑️ Unwanted Agent: UNWANTED (score: 80/100, age: 800 days)" {
		t.Errorf("unwanted line = %q", got)
	}
	if got := analysis.ReasoningChain[1]; got != "📰 Classifier: NEWSLETTER (high)" {
		t.Errorf("classifier line = %q", got)
	}
	if !strings.Contains(analysis.ReasoningChain[4], "DELETE") {
		t.Errorf("final line = %q, want DELETE", analysis.ReasoningChain[4])
	}
}

type recordingCache struct {
	store map[string]*EmailAnalysis
	gets  int
	sets  int
}

func (c *recordingCache) Get(emailID string) (*EmailAnalysis, bool) {
	c.gets++
	a, ok := c.store[emailID]
	return a, ok
}

func (c *recordingCache) Set(emailID string, analysis *EmailAnalysis) {
	c.sets++
	c.store[emailID] = analysis
}

func (c *recordingCache) Stop() {}

func TestAnalyzeEmailCacheHitSkipsAgents(t *testing.T) {
	cached := &EmailAnalysis{Decision: Decision{Action: ActionPreserve}}
	cache := &recordingCache{store: map[string]*EmailAnalysis{"e1": cached}}
	stub := &stubAgents{}
	orch := newStubOrchestrator(stub, cache)

	got := orch.AnalyzeEmail(context.Background(), &Email{ID: "e1"})

	if got != cached {
		t.Error("expected the cached analysis to be returned")
	}
	if stub.calls != 0 {
		t.Errorf("agents were invoked %d times on a cache hit", stub.calls)
	}
}

func TestAnalyzeEmailCacheMissStoresResult(t *testing.T) {
	cache := &recordingCache{store: map[string]*EmailAnalysis{}}
	stub := &stubAgents{
		doc:      DocumentVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}},
		cls:      Classification{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, Category: CategoryInformational},
		spam:     SpamVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}},
		unwanted: UnwantedVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}},
	}
	orch := newStubOrchestrator(stub, cache)

	orch.AnalyzeEmail(context.Background(), &Email{ID: "e9"})

	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}
	if _, ok := cache.store["e9"]; !ok {
		t.Error("analysis not stored under the email ID")
	}
}

func TestAnalyzeBatchBuckets(t *testing.T) {
	// Verdicts are keyed off each email's ID to spread the batch across
	// all three buckets.
	docAgent := docFn(func() DocumentVerdict {
		return DocumentVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}}
	})

	type perEmail struct {
		cls      Classification
		spam     SpamVerdict
		unwanted UnwantedVerdict
	}
	emailVerdicts := map[string]perEmail{
		"keep": {
			cls:      Classification{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, Category: CategoryPersonal},
			spam:     SpamVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}},
			unwanted: UnwantedVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}},
		},
		"drop": {
			cls:      Classification{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, Category: CategoryNewsletter},
			spam:     SpamVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}},
			unwanted: UnwantedVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, IsUnwanted: true, Score: 85},
		},
		"check": {
			cls:      Classification{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, Category: CategoryNewsletter},
			spam:     SpamVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}, IsSpam: true, Score: 70},
			unwanted: UnwantedVerdict{VerdictInfo: VerdictInfo{Confidence: ConfidenceHigh}},
		},
	}
	orch := NewOrchestrator(
		docAgent,
		clsEmailFn(func(e *Email) Classification { return emailVerdicts[e.ID].cls }),
		spamEmailFn(func(e *Email) SpamVerdict { return emailVerdicts[e.ID].spam }),
		unwEmailFn(func(e *Email) UnwantedVerdict { return emailVerdicts[e.ID].unwanted }),
		nil,
		zap.NewNop(),
	)

	result := orch.AnalyzeBatch(context.Background(), []*Email{
		{ID: "keep"}, {ID: "drop"}, {ID: "check"},
	})

	if len(result.Preserve) != 1 || result.Preserve[0].Email.ID != "keep" {
		t.Errorf("preserve bucket = %v", bucketIDs(result.Preserve))
	}
	if len(result.Delete) != 1 || result.Delete[0].Email.ID != "drop" {
		t.Errorf("delete bucket = %v", bucketIDs(result.Delete))
	}
	if len(result.Review) != 1 || result.Review[0].Email.ID != "check" {
		t.Errorf("review bucket = %v", bucketIDs(result.Review))
	}
}

type clsEmailFn func(*Email) Classification

func (f clsEmailFn) Evaluate(ctx context.Context, email *Email) Classification { return f(email) }

type spamEmailFn func(*Email) SpamVerdict

func (f spamEmailFn) Evaluate(ctx context.Context, email *Email) SpamVerdict { return f(email) }

type unwEmailFn func(*Email) UnwantedVerdict

func (f unwEmailFn) Evaluate(ctx context.Context, email *Email) UnwantedVerdict { return f(email) }

func bucketIDs(bucket []*EmailAnalysis) []string {
	ids := make([]string, 0, len(bucket))
	for _, a := range bucket {
		ids = append(ids, a.Email.ID)
	}
	return ids
}
