package core

import (
	"context"
)

// LLMClient is the interface to a hosted language model. Each agent owns its
// prompt and response schema; providers only turn a system/user prompt pair
// into raw model output.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// CountScope selects which mailbox count to fetch.
type CountScope string

const (
	CountOther   CountScope = "other"
	CountFocused CountScope = "focused"
	CountTotal   CountScope = "total"
)

// MailStore is the interface to the remote mailbox provider.
type MailStore interface {
	// ListMessages fetches up to limit messages, filtered by the provider's
	// focused/other classification tag ("" for no filter).
	ListMessages(ctx context.Context, tag string, limit int) ([]*Email, error)

	// DeleteMessage deletes one message by ID. A nil error means the
	// provider acknowledged the deletion.
	DeleteMessage(ctx context.Context, id string) error

	// InboxCount returns the message count for a scope.
	InboxCount(ctx context.Context, scope CountScope) (int, error)

	// RefreshCredentials refreshes the provider bearer credential.
	// Failures are non-fatal; subsequent calls surface their own auth errors.
	RefreshCredentials(ctx context.Context) error
}

// BackupStore persists email snapshots before deletion. Records are
// append-only and addressable by proposal ID.
type BackupStore interface {
	// Create writes a record and returns its location (file path or DSN-ish
	// identifier, for reporting).
	Create(ctx context.Context, rec *BackupRecord) (string, error)

	// Get retrieves a record by proposal ID.
	Get(ctx context.Context, proposalID string) (*BackupRecord, error)

	// List enumerates all records with summary fields.
	List(ctx context.Context) ([]BackupSummary, error)
}

// AnalysisCache remembers completed per-email analyses so a re-run inside
// the TTL window does not re-bill the LLM.
type AnalysisCache interface {
	Get(emailID string) (*EmailAnalysis, bool)
	Set(emailID string, analysis *EmailAnalysis)
	Stop()
}

// The four scoring agents. Each inspects one email and returns its verdict;
// evaluation never fails hard, an LLM error degrades to the agent's
// documented fail-safe default.

type DocumentAgent interface {
	Evaluate(ctx context.Context, email *Email) DocumentVerdict
}

type ClassifierAgent interface {
	Evaluate(ctx context.Context, email *Email) Classification
}

type SpamAgent interface {
	Evaluate(ctx context.Context, email *Email) SpamVerdict
}

type UnwantedAgent interface {
	Evaluate(ctx context.Context, email *Email) UnwantedVerdict
}
