package core

import (
	"fmt"
)

// Decide combines the four agent verdicts for one email into a final
// decision. It is a pure function: identical verdicts always produce an
// identical decision.
//
// The rule order is load-bearing. Document preservation is the one
// irrevocable "never delete" signal and is checked first; spam is checked
// before the unwanted/classifier rules so phishing is never auto-processed
// as a stale newsletter; the low-confidence catch-all runs after the
// specific rules so it only fires when nothing above resolved the case.
func Decide(doc DocumentVerdict, cls Classification, spam SpamVerdict, unwanted UnwantedVerdict) Decision {
	switch {
	// Rule 1: important document or VIP sender. Absolute override.
	case doc.Preserve:
		return Decision{
			Action:     ActionPreserve,
			Confidence: doc.Confidence,
			Reason:     "Document Agent: Important document detected",
		}

	// Rule 2: suspected spam/phishing is never auto-deleted, a human
	// must confirm.
	case spam.IsSpam:
		return Decision{
			Action:     ActionReview,
			Confidence: spam.Confidence,
			Reason:     fmt.Sprintf("Spam Detector: Spam/phishing detected (%d/100)", spam.Score),
		}

	// Rule 3: urgent or personal mail is kept.
	case cls.Category == CategoryUrgent || cls.Category == CategoryPersonal:
		return Decision{
			Action:     ActionPreserve,
			Confidence: cls.Confidence,
			Reason:     fmt.Sprintf("Classifier: %s email", cls.Category),
		}

	// Rule 4: unwanted and not important. Auto-delete only on high
	// confidence and a deletable category; everything else goes to a human.
	case unwanted.IsUnwanted && !doc.Preserve:
		if unwanted.Confidence == ConfidenceHigh && deletableCategory(cls.Category) {
			return Decision{
				Action:     ActionDelete,
				Confidence: ConfidenceHigh,
				Reason:     fmt.Sprintf("Unwanted Agent: Old unwanted email (%d/100)", unwanted.Score),
			}
		}
		return Decision{
			Action:     ActionReview,
			Confidence: ConfidenceMedium,
			Reason:     "Unwanted but needs human review",
		}

	// Rule 5: any agent unsure, send to review.
	case doc.Confidence == ConfidenceLow ||
		cls.Confidence == ConfidenceLow ||
		spam.Confidence == ConfidenceLow ||
		unwanted.Confidence == ConfidenceLow:
		return Decision{
			Action:     ActionReview,
			Confidence: ConfidenceLow,
			Reason:     "Low confidence from one or more agents",
		}

	// Rule 6: absence of a strong deletion signal never auto-deletes.
	default:
		return Decision{
			Action:     ActionPreserve,
			Confidence: ConfidenceMedium,
			Reason:     "No strong indicators for deletion",
		}
	}
}

func deletableCategory(c Category) bool {
	switch c {
	case CategoryNewsletter, CategoryPromotional, CategoryInformational:
		return true
	}
	return false
}
