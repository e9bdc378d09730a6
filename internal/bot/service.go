package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mikey/inbox-cleanup-agent/internal/commands"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

// Transport delivers outbound messages to the user and feeds inbound command
// text back into the service.
type Transport interface {
	// Send delivers one outbound message.
	Send(ctx context.Context, text string) error

	// Listen blocks, invoking handle for each inbound message until the
	// context is cancelled.
	Listen(ctx context.Context, handle func(ctx context.Context, text string)) error
}

// Service owns the approval workflow: it proposes deletions, holds the single
// live proposal, and executes approved deletions. All state mutation happens
// under one mutex; the proposal is a single slot overwritten wholesale.
type Service struct {
	orch      *core.Orchestrator
	deleter   *core.Deleter
	mail      core.MailStore
	backups   core.BackupStore
	transport Transport
	logger    *zap.Logger

	analyzeLimit int
	inboxTag     string

	mu       sync.Mutex
	proposal *core.Proposal
}

// NewService creates a new bot service
func NewService(
	orch *core.Orchestrator,
	deleter *core.Deleter,
	mail core.MailStore,
	backups core.BackupStore,
	transport Transport,
	analyzeLimit int,
	inboxTag string,
	logger *zap.Logger,
) *Service {
	return &Service{
		orch:         orch,
		deleter:      deleter,
		mail:         mail,
		backups:      backups,
		transport:    transport,
		logger:       logger,
		analyzeLimit: analyzeLimit,
		inboxTag:     inboxTag,
	}
}

// Run listens for inbound commands until the context is cancelled
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("Bot service listening",
		zap.Int("analyze_limit", s.analyzeLimit),
		zap.String("inbox_tag", s.inboxTag))

	return s.transport.Listen(ctx, func(ctx context.Context, text string) {
		for _, reply := range s.Handle(ctx, text) {
			if err := s.transport.Send(ctx, reply); err != nil {
				s.logger.Error("Failed to send reply", zap.Error(err))
			}
		}
	})
}

// Handle processes one inbound message and returns the replies to send.
func (s *Service) Handle(ctx context.Context, text string) []string {
	cmd := commands.Parse(text)

	s.logger.Debug("Handling command",
		zap.String("verb", string(cmd.Verb)),
		zap.Ints("indices", cmd.Indices))

	switch cmd.Verb {
	case commands.VerbStart:
		return []string{welcomeMessage}
	case commands.VerbHelp:
		return []string{helpMessage}
	case commands.VerbTest:
		return s.handleTest()
	case commands.VerbAnalyze:
		return s.handleAnalyze(ctx)
	case commands.VerbYes:
		return s.handleYes(ctx)
	case commands.VerbNo:
		return s.handleNo()
	case commands.VerbDeleteOnly:
		return s.handleDeleteOnly(ctx, cmd.Indices)
	case commands.VerbExcept:
		return s.handleExcept(ctx, cmd.Indices)
	case commands.VerbDetails:
		return s.handleDetails()
	case commands.VerbBackups:
		return s.handleBackups(ctx, cmd.Args)
	case commands.VerbSummary:
		return s.handleSummary()
	default:
		return []string{"❓ Unknown command. Use /help to see what I understand."}
	}
}

// Propose stores a new proposal as the live one and returns its formatted
// message. Any previous proposal is discarded.
func (s *Service) Propose(emails []*core.Email, breakdown map[core.Category]int) string {
	p := &core.Proposal{
		ID:                core.NewProposalID(),
		Emails:            emails,
		CategoryBreakdown: breakdown,
		CreatedAt:         time.Now(),
	}

	s.mu.Lock()
	s.proposal = p
	s.mu.Unlock()

	return formatProposal(p)
}

func (s *Service) handleAnalyze(ctx context.Context) []string {
	emails, err := s.mail.ListMessages(ctx, s.inboxTag, s.analyzeLimit)
	if err != nil {
		s.logger.Error("Failed to fetch emails", zap.Error(err))
		return []string{fmt.Sprintf("❌ ERROR\n\nFailed to fetch emails: %v", err)}
	}
	if len(emails) == 0 {
		return []string{"❌ No emails fetched from inbox!"}
	}

	progress := fmt.Sprintf("✅ Fetched %d emails\n🤖 Running analysis...", len(emails))

	result := s.orch.AnalyzeBatch(ctx, emails)

	if len(result.Delete) == 0 {
		return []string{progress,
			"✅ No emails found safe to delete!\n\n" +
				"All analyzed emails are either:\n" +
				"• Important documents\n" +
				"• Personal emails\n" +
				"• Need human review"}
	}

	deleteEmails := make([]*core.Email, 0, len(result.Delete))
	breakdown := make(map[core.Category]int)
	for _, a := range result.Delete {
		deleteEmails = append(deleteEmails, a.Email)
		breakdown[a.Classification.Category]++
	}

	proposal := s.Propose(deleteEmails, breakdown)

	return []string{progress, proposal,
		"✅ Proposal sent! Use /yes, /no, /delete_only, /except, or /details"}
}

func (s *Service) handleTest() []string {
	now := time.Now()
	sample := []*core.Email{
		{
			ID:               "test_1",
			Subject:          "Job Alert: Senior Developer",
			FromAddress:      "alerts@indeed.com",
			FromName:         "Indeed",
			ReceivedDateTime: now.AddDate(0, 0, -800).Format(time.RFC3339),
		},
		{
			ID:               "test_2",
			Subject:          "Weekly Newsletter - Tech Updates",
			FromAddress:      "news@techcrunch.com",
			FromName:         "TechCrunch",
			ReceivedDateTime: now.AddDate(0, 0, -1000).Format(time.RFC3339),
		},
		{
			ID:               "test_3",
			Subject:          "FLASH SALE - 70% OFF",
			FromAddress:      "deals@store.com",
			FromName:         "Store",
			ReceivedDateTime: now.AddDate(0, 0, -500).Format(time.RFC3339),
		},
	}
	breakdown := map[core.Category]int{
		core.CategoryNewsletter:  2,
		core.CategoryPromotional: 1,
	}

	proposal := s.Propose(sample, breakdown)
	return []string{proposal, "✅ Test proposal sent! Try the commands now."}
}

func (s *Service) handleYes(ctx context.Context) []string {
	p := s.consumeProposal()
	if p == nil {
		return []string{noProposalMessage}
	}

	replies := []string{formatApproved(len(p.Emails))}
	return append(replies, s.executeDeletion(ctx, p.Emails, p.ID)...)
}

func (s *Service) handleNo() []string {
	p := s.consumeProposal()
	if p == nil {
		return []string{noProposalMessage}
	}
	return []string{formatRejected(len(p.Emails))}
}

func (s *Service) handleDeleteOnly(ctx context.Context, indices []int) []string {
	s.mu.Lock()
	p := s.proposal
	s.mu.Unlock()

	if p == nil {
		return []string{noProposalMessage}
	}

	if len(indices) == 0 {
		// Malformed input mutates nothing; the proposal stays live
		return []string{"❌ Invalid format!\n" +
			"Examples:\n" +
			"  /delete_only 5,10,15\n" +
			"  /delete_only 1-5,10,15-20\n" +
			"  /delete_only 1-30"}
	}

	toDelete, toKeep := splitByIndices(p.Emails, indices)
	if len(toDelete) == 0 {
		return []string{"❌ No valid email indices found!"}
	}

	s.clearProposal(p)

	replies := []string{formatDeleteOnly(len(toDelete), len(toKeep), indices)}
	return append(replies, s.executeDeletion(ctx, toDelete, p.ID)...)
}

func (s *Service) handleExcept(ctx context.Context, indices []int) []string {
	s.mu.Lock()
	p := s.proposal
	s.mu.Unlock()

	if p == nil {
		return []string{noProposalMessage}
	}

	if len(indices) == 0 {
		return []string{"❌ Invalid format. Use: /except 1,3,5"}
	}

	toKeep, toDelete := splitByIndices(p.Emails, indices)
	if len(toDelete) == 0 {
		return []string{"❌ No emails to delete! You excluded everything!"}
	}

	s.clearProposal(p)

	replies := []string{formatPartial(len(toDelete), len(toKeep))}
	return append(replies, s.executeDeletion(ctx, toDelete, p.ID)...)
}

func (s *Service) handleDetails() []string {
	s.mu.Lock()
	p := s.proposal
	s.mu.Unlock()

	if p == nil {
		return []string{noProposalMessage}
	}
	return formatDetails(p.Emails)
}

func (s *Service) handleBackups(ctx context.Context, args string) []string {
	if id := strings.TrimSpace(args); id != "" {
		rec, err := s.backups.Get(ctx, id)
		if err != nil {
			s.logger.Error("Failed to load backup", zap.String("proposal_id", id), zap.Error(err))
			return []string{fmt.Sprintf("❌ ERROR\n\nFailed to load backup: %v", err)}
		}
		return []string{formatBackupDetail(rec)}
	}

	summaries, err := s.backups.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list backups", zap.Error(err))
		return []string{fmt.Sprintf("❌ ERROR\n\nFailed to list backups: %v", err)}
	}
	return []string{formatBackups(summaries)}
}

func (s *Service) handleSummary() []string {
	return []string{formatSummary(s.deleter.LastDeletion())}
}

func (s *Service) executeDeletion(ctx context.Context, emails []*core.Email, proposalID string) []string {
	res, err := s.deleter.Delete(ctx, emails, proposalID, true)
	if err != nil {
		s.logger.Error("Deletion failed", zap.Error(err))
		return []string{fmt.Sprintf("❌ ERROR\n\nDeletion failed: %v", err)}
	}

	replies := []string{formatCompletion(res)}
	if res.Failed > 0 {
		replies = append(replies, formatFailures(res))
	}
	return replies
}

// consumeProposal atomically takes and clears the live proposal
func (s *Service) consumeProposal() *core.Proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.proposal
	s.proposal = nil
	return p
}

// clearProposal clears the slot only if it still holds p
func (s *Service) clearProposal(p *core.Proposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.proposal == p {
		s.proposal = nil
	}
}

// splitByIndices partitions emails by their 1-based index. The first return
// holds emails whose index is in the set, the second the rest.
func splitByIndices(emails []*core.Email, indices []int) (in []*core.Email, out []*core.Email) {
	set := make(map[int]struct{}, len(indices))
	for _, n := range indices {
		set[n] = struct{}{}
	}
	for i, e := range emails {
		if _, ok := set[i+1]; ok {
			in = append(in, e)
		} else {
			out = append(out, e)
		}
	}
	return in, out
}
