package core

import "testing"

func doc(preserve bool, conf Confidence) DocumentVerdict {
	return DocumentVerdict{VerdictInfo: VerdictInfo{Confidence: conf}, Preserve: preserve}
}

func cls(category Category, conf Confidence) Classification {
	return Classification{VerdictInfo: VerdictInfo{Confidence: conf}, Category: category}
}

func spam(isSpam bool, score int, conf Confidence) SpamVerdict {
	return SpamVerdict{VerdictInfo: VerdictInfo{Confidence: conf}, IsSpam: isSpam, Score: score}
}

func unwanted(isUnwanted bool, score int, conf Confidence) UnwantedVerdict {
	return UnwantedVerdict{VerdictInfo: VerdictInfo{Confidence: conf}, IsUnwanted: isUnwanted, Score: score}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		doc      DocumentVerdict
		cls      Classification
		spam     SpamVerdict
		unwanted UnwantedVerdict
		action   Action
		conf     Confidence
	}{
		{
			name:     "document preserve overrides everything",
			doc:      doc(true, ConfidenceHigh),
			cls:      cls(CategoryNewsletter, ConfidenceHigh),
			spam:     spam(true, 95, ConfidenceHigh),
			unwanted: unwanted(true, 90, ConfidenceHigh),
			action:   ActionPreserve,
			conf:     ConfidenceHigh,
		},
		{
			name:     "spam is reviewed, never deleted",
			doc:      doc(false, ConfidenceHigh),
			cls:      cls(CategoryNewsletter, ConfidenceHigh),
			spam:     spam(true, 75, ConfidenceHigh),
			unwanted: unwanted(true, 85, ConfidenceHigh),
			action:   ActionReview,
			conf:     ConfidenceHigh,
		},
		{
			name:     "urgent email preserved",
			doc:      doc(false, ConfidenceHigh),
			cls:      cls(CategoryUrgent, ConfidenceHigh),
			spam:     spam(false, 10, ConfidenceHigh),
			unwanted: unwanted(true, 75, ConfidenceHigh),
			action:   ActionPreserve,
			conf:     ConfidenceHigh,
		},
		{
			name:     "personal email preserved",
			doc:      doc(false, ConfidenceHigh),
			cls:      cls(CategoryPersonal, ConfidenceMedium),
			spam:     spam(false, 10, ConfidenceHigh),
			unwanted: unwanted(false, 20, ConfidenceHigh),
			action:   ActionPreserve,
			conf:     ConfidenceMedium,
		},
		{
			name:     "high confidence unwanted newsletter deleted",
			doc:      doc(false, ConfidenceHigh),
			cls:      cls(CategoryNewsletter, ConfidenceHigh),
			spam:     spam(false, 10, ConfidenceHigh),
			unwanted: unwanted(true, 80, ConfidenceHigh),
			action:   ActionDelete,
			conf:     ConfidenceHigh,
		},
		{
			name:     "unwanted high confidence wins over another agent's low confidence",
			doc:      doc(false, ConfidenceHigh),
			cls:      cls(CategoryPromotional, ConfidenceHigh),
			spam:     spam(false, 10, ConfidenceLow),
			unwanted: unwanted(true, 75, ConfidenceHigh),
			action:   ActionDelete,
			conf:     ConfidenceHigh,
		},
		{
			name:     "unwanted medium confidence goes to review",
			doc:      doc(false, ConfidenceHigh),
			cls:      cls(CategoryNewsletter, ConfidenceHigh),
			spam:     spam(false, 10, ConfidenceHigh),
			unwanted: unwanted(true, 55, ConfidenceMedium),
			action:   ActionReview,
			conf:     ConfidenceMedium,
		},
		{
			name:     "unwanted high confidence but undeletable category goes to review",
			doc:      doc(false, ConfidenceHigh),
			cls:      cls(CategorySpam, ConfidenceHigh),
			spam:     spam(false, 10, ConfidenceHigh),
			unwanted: unwanted(true, 80, ConfidenceHigh),
			action:   ActionReview,
			conf:     ConfidenceMedium,
		},
		{
			name:     "low confidence anywhere sends to review",
			doc:      doc(false, ConfidenceLow),
			cls:      cls(CategoryInformational, ConfidenceHigh),
			spam:     spam(false, 10, ConfidenceHigh),
			unwanted: unwanted(false, 20, ConfidenceHigh),
			action:   ActionReview,
			conf:     ConfidenceLow,
		},
		{
			name:     "no strong signal preserves by default",
			doc:      doc(false, ConfidenceHigh),
			cls:      cls(CategoryInformational, ConfidenceHigh),
			spam:     spam(false, 10, ConfidenceHigh),
			unwanted: unwanted(false, 20, ConfidenceHigh),
			action:   ActionPreserve,
			conf:     ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.doc, tt.cls, tt.spam, tt.unwanted)
			if got.Action != tt.action {
				t.Errorf("action = %q, want %q (reason: %s)", got.Action, tt.action, got.Reason)
			}
			if got.Confidence != tt.conf {
				t.Errorf("confidence = %q, want %q", got.Confidence, tt.conf)
			}
		})
	}
}

func TestDecideIsPure(t *testing.T) {
	d := doc(false, ConfidenceHigh)
	c := cls(CategoryNewsletter, ConfidenceHigh)
	s := spam(false, 45, ConfidenceMedium)
	u := unwanted(true, 80, ConfidenceHigh)

	first := Decide(d, c, s, u)
	for i := 0; i < 10; i++ {
		if got := Decide(d, c, s, u); got != first {
			t.Fatalf("Decide not deterministic: %+v != %+v", got, first)
		}
	}
}
