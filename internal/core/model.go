package core

import (
	"time"
)

// Confidence expresses how sure an agent is about its verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Method tags which tier of an agent's cascade produced a verdict.
type Method string

const (
	MethodVIPMatch         Method = "vip_match"
	MethodKeywordMatch     Method = "keyword_match"
	MethodPatternMatch     Method = "pattern_match"
	MethodAIClassification Method = "ai_classification"
	// MethodErrorDefault marks a fail-safe verdict returned because the
	// LLM fallback call itself failed.
	MethodErrorDefault Method = "error_default"
)

// Category is the classifier agent's email category.
type Category string

const (
	CategoryUrgent        Category = "urgent"
	CategoryPersonal      Category = "personal"
	CategoryNewsletter    Category = "newsletter"
	CategoryPromotional   Category = "promotional"
	CategoryInformational Category = "informational"
	CategorySpam          Category = "spam"
)

// Action is the final arbitration outcome for one email.
type Action string

const (
	ActionPreserve Action = "preserve"
	ActionDelete   Action = "delete"
	ActionReview   Action = "review"
)

// Email is one mailbox message as returned by the mail provider.
// Emails are read-only inputs to the pipeline; they are never mutated,
// only analyzed and, ultimately, deleted by ID.
type Email struct {
	ID               string `json:"id"`
	Subject          string `json:"subject"`
	FromAddress      string `json:"fromAddress"`
	FromName         string `json:"fromName"`
	BodyPreview      string `json:"bodyPreview"`
	ReceivedDateTime string `json:"receivedDateTime"`
	HasAttachments   bool   `json:"hasAttachments"`
	IsRead           bool   `json:"isRead"`
	// Classification is the provider's own focused/other bucketing.
	Classification string `json:"classification"`
}

// VerdictInfo carries the fields common to every agent verdict.
type VerdictInfo struct {
	Confidence Confidence
	Reasoning  string
	Method     Method
	// Err records the underlying failure when Method is MethodErrorDefault,
	// so callers can tell a conservative answer from a failed call.
	Err error
}

// DocumentVerdict is the document preservation agent's output.
type DocumentVerdict struct {
	VerdictInfo
	Preserve        bool
	MatchedKeywords []string
}

// Classification is the classifier agent's output.
type Classification struct {
	VerdictInfo
	Category Category
}

// SpamIndicators is the spam agent's per-indicator breakdown.
type SpamIndicators struct {
	LegitimateSender  bool
	SpamPhrases       []string
	SuspiciousSender  bool
	SuspiciousPattern string
	PhishingDetected  bool
	PhishingCount     int
}

// SpamVerdict is the spam detector agent's output.
type SpamVerdict struct {
	VerdictInfo
	IsSpam     bool
	Score      int
	Indicators SpamIndicators
}

// UnwantedPatterns records which unwanted-email pattern groups matched.
type UnwantedPatterns struct {
	Newsletter bool
	Social     bool
	Marketing  bool
	Event      bool
}

// UnwantedVerdict is the unwanted email agent's output.
type UnwantedVerdict struct {
	VerdictInfo
	IsUnwanted bool
	Score      int
	AgeDays    int
	Patterns   UnwantedPatterns
}

// Decision is the arbitrated outcome for one email.
type Decision struct {
	Action     Action
	Confidence Confidence
	Reason     string
}

// EmailAnalysis is the full record of one email's trip through the pipeline:
// the four agent verdicts, the arbitrated decision, and one reasoning line
// per step.
type EmailAnalysis struct {
	Email          *Email
	Document       DocumentVerdict
	Classification Classification
	Spam           SpamVerdict
	Unwanted       UnwantedVerdict
	Decision       Decision
	ReasoningChain []string
}

// BatchResult buckets analyzed emails by final decision.
type BatchResult struct {
	Preserve []*EmailAnalysis
	Delete   []*EmailAnalysis
	Review   []*EmailAnalysis
}

// Proposal is a batch of emails pending human approval for deletion.
// At most one proposal is live at a time; any approval or rejection
// command consumes it.
type Proposal struct {
	ID                string
	Emails            []*Email
	CategoryBreakdown map[Category]int
	CreatedAt         time.Time
}

// BackupEmail is one email snapshot inside a backup record. Field names
// follow the mail provider's message schema so backups can be inspected
// with ordinary tools.
type BackupEmail struct {
	ID               string `json:"id"`
	Subject          string `json:"subject"`
	From             string `json:"from"`
	ReceivedDateTime string `json:"receivedDateTime"`
	BodyPreview      string `json:"bodyPreview"`
	HasAttachments   bool   `json:"hasAttachments"`
	IsRead           bool   `json:"isRead"`
	Classification   string `json:"classificationTag"`
}

// BackupRecord is the durable snapshot written before any delete call is
// issued. Immutable once written, addressable by proposal ID.
type BackupRecord struct {
	Timestamp  string        `json:"timestamp"`
	ProposalID string        `json:"proposal_id"`
	EmailCount int           `json:"email_count"`
	Emails     []BackupEmail `json:"emails"`
}

// BackupSummary is one line of a backup listing.
type BackupSummary struct {
	Location   string
	ProposalID string
	Timestamp  string
	EmailCount int
}

// NewBackupRecord snapshots a set of emails into a backup record.
func NewBackupRecord(proposalID string, emails []*Email) *BackupRecord {
	rec := &BackupRecord{
		Timestamp:  time.Now().Format(time.RFC3339),
		ProposalID: proposalID,
		EmailCount: len(emails),
		Emails:     make([]BackupEmail, 0, len(emails)),
	}
	for _, e := range emails {
		from := e.FromAddress
		if e.FromName != "" {
			from = e.FromName + " <" + e.FromAddress + ">"
		}
		rec.Emails = append(rec.Emails, BackupEmail{
			ID:               e.ID,
			Subject:          e.Subject,
			From:             from,
			ReceivedDateTime: e.ReceivedDateTime,
			BodyPreview:      e.BodyPreview,
			HasAttachments:   e.HasAttachments,
			IsRead:           e.IsRead,
			Classification:   e.Classification,
		})
	}
	return rec
}

// DeletionError records one failed delete call.
type DeletionError struct {
	EmailID string `json:"email_id"`
	Subject string `json:"subject"`
	Error   string `json:"error"`
}

// DeletionResult aggregates the outcome of one deletion batch. Success and
// Failed are running counters; one failure never aborts the remaining
// deletions.
type DeletionResult struct {
	ProposalID     string
	BackupLocation string
	Total          int
	Success        int
	Failed         int
	Errors         []DeletionError
	DeletedIDs     []string
	// Mailbox counts are best effort. ProgressPercent is only meaningful
	// when CountsKnown is true; it is never fabricated from partial data.
	CountsKnown     bool
	CountBefore     int
	CountAfter      int
	ProgressPercent float64
}

// NewProposalID derives a proposal identifier from the current time.
func NewProposalID() string {
	return time.Now().Format("20060102_150405")
}
