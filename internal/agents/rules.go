// Package agents implements the four email scoring agents: document
// preservation, category classification, spam detection, and unwanted-email
// detection. Each agent runs a cascade of cheap local rules and falls back
// to an LLM only for ambiguous cases.
package agents

// Rule sets are immutable configuration passed to agents at construction.
// Defaults carry the tuned keyword tables; callers may substitute their own
// for testing or per-mailbox tuning.

// DocumentRules configures the document preservation agent.
type DocumentRules struct {
	// VIPAddresses are always preserved, bypassing all other checks.
	VIPAddresses []string
	// ImportantKeywords in subject or preview mark a document worth keeping.
	ImportantKeywords []string
	// ImportantDomains are sender domain fragments of institutions that
	// send documents worth keeping.
	ImportantDomains []string
}

// DefaultDocumentRules returns the stock document preservation rule set.
func DefaultDocumentRules() DocumentRules {
	return DocumentRules{
		ImportantKeywords: []string{
			"payslip", "salary", "wage", "payment advice",
			"invoice", "receipt", "bill", "statement",
			"tax", "hmrc", "p60", "p45", "tax return",
			"contract", "agreement", "offer letter",
			"insurance", "policy", "claim",
			"mortgage", "loan", "credit",
			"pension", "retirement",
			"legal", "court", "solicitor",
			"medical", "prescription", "appointment",
			"passport", "visa", "immigration",
			"degree", "certificate", "transcript",
		},
		ImportantDomains: []string{
			"gov.uk", "hmrc.gov.uk",
			"payroll", "hr",
			"bank", "banking",
			"insurance",
			"legal", "solicitor",
		},
	}
}

// ClassifierRules configures the category classifier agent.
type ClassifierRules struct {
	UrgentKeywords          []string
	AutomatedSenderPatterns []string
	NewsletterKeywords      []string
	PromoKeywords           []string
}

// DefaultClassifierRules returns the stock classifier rule set.
func DefaultClassifierRules() ClassifierRules {
	return ClassifierRules{
		UrgentKeywords: []string{
			"urgent", "immediate", "action required", "deadline",
			"expires", "final notice", "overdue", "asap",
		},
		AutomatedSenderPatterns: []string{
			"noreply", "no-reply", "donotreply", "notifications",
			"automated", "auto@", "bounce", "mailer-daemon",
		},
		NewsletterKeywords: []string{"unsubscribe", "newsletter", "weekly digest", "update"},
		PromoKeywords:      []string{"sale", "offer", "discount", "deal", "save", "shop"},
	}
}

// SpamRules configures the spam detector agent, including its weighted
// scoring thresholds.
type SpamRules struct {
	SpamPhrases              []string
	SuspiciousSenderPatterns []string
	PhishingKeywords         []string
	UrgencyWords             []string
	ActionWords              []string
	LegitimateDomains        []string

	// Score >= HighThreshold is spam with no LLM call; score below
	// LowThreshold is clean; the band in between goes to the LLM.
	HighThreshold int
	LowThreshold  int
	// FailSafeThreshold decides is_spam when the LLM call fails.
	FailSafeThreshold int
}

// DefaultSpamRules returns the stock spam detection rule set.
func DefaultSpamRules() SpamRules {
	return SpamRules{
		SpamPhrases: []string{
			"congratulations you won", "claim your prize", "click here now",
			"limited time offer", "act now", "urgent response required",
			"verify your account", "confirm your identity", "suspended account",
			"unusual activity", "security alert", "your account will be closed",
			"nigerian prince", "inheritance", "lottery winner",
			"make money fast", "work from home", "get rich quick",
			"free money", "risk free", "no credit check",
			"weight loss", "male enhancement", "buy medication",
			"unsubscribe impossible", "this is not spam",
		},
		SuspiciousSenderPatterns: []string{
			`@.*\.ru$`,
			`@.*\.cn$`,
			`\d{5,}`,
			`[a-z]{20,}`,
			`admin@.*\.info$`,
			`support@.*\.xyz$`,
		},
		PhishingKeywords: []string{
			"verify", "confirm", "update", "suspended", "locked",
			"security alert", "unusual activity", "click here",
			"immediate action", "account will be closed",
		},
		UrgencyWords: []string{"urgent", "immediate", "now", "today", "asap"},
		ActionWords:  []string{"click", "verify", "confirm", "update", "login"},
		LegitimateDomains: []string{
			"amazon.com", "amazon.co.uk", "paypal.com", "ebay.com",
			"microsoft.com", "google.com", "apple.com", "facebook.com",
			"linkedin.com", "twitter.com", "gov.uk", "hmrc.gov.uk",
			"o2.co.uk", "talktalk.co.uk", "bt.com", "sky.com",
		},
		HighThreshold:     60,
		LowThreshold:      35,
		FailSafeThreshold: 50,
	}
}

// UnwantedRules configures the unwanted email agent.
type UnwantedRules struct {
	NewsletterKeywords []string
	SocialKeywords     []string
	MarketingKeywords  []string
	EventKeywords      []string

	HighThreshold     int
	LowThreshold      int
	FailSafeThreshold int
}

// DefaultUnwantedRules returns the stock unwanted-email rule set.
func DefaultUnwantedRules() UnwantedRules {
	return UnwantedRules{
		NewsletterKeywords: []string{
			"newsletter", "weekly digest", "monthly update", "unsubscribe",
			"this weeks", "latest news", "whats new",
		},
		SocialKeywords: []string{
			"mentioned you", "liked your", "commented on", "tagged you",
			"friend request", "connection request", "viewed your profile",
		},
		MarketingKeywords: []string{
			"exclusive offer", "limited time", "dont miss", "last chance",
			"flash sale", "special deal", "save now", "shop now",
		},
		EventKeywords: []string{
			"event reminder", "rsvp", "invitation", "join us",
			"save the date", "register now",
		},
		HighThreshold:     70,
		LowThreshold:      40,
		FailSafeThreshold: 55,
	}
}
