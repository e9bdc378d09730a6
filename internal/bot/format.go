package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
)

const previewCap = 10
const detailsChunkSize = 20
const backupSampleSize = 5
const backupSubjectCap = 50

// formatEmailPreview renders one numbered email line for proposal and
// details listings.
func formatEmailPreview(email *core.Email, index int, now time.Time) string {
	subject := email.Subject
	if subject == "" {
		subject = "No Subject"
	}
	if len(subject) > 80 {
		subject = subject[:80]
	}

	name := email.FromName
	if name == "" {
		name = email.FromAddress
	}
	if name == "" {
		name = "Unknown"
	}

	ageStr := "Unknown age"
	if len(email.ReceivedDateTime) >= 10 {
		if received, err := time.Parse("2006-01-02", email.ReceivedDateTime[:10]); err == nil {
			ageDays := int(now.Sub(received).Hours() / 24)
			if years := ageDays / 365; years > 0 {
				ageStr = fmt.Sprintf("%d+ years old", years)
			} else {
				ageStr = fmt.Sprintf("%d days old", ageDays)
			}
		}
	}

	return fmt.Sprintf("%d. %s\n   From: %s\n   Age: %s", index, subject, name, ageStr)
}

// formatProposal renders the deletion proposal message: category breakdown,
// the first few emails, and the command footer.
func formatProposal(p *core.Proposal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🗑️ DELETION PROPOSAL #%s\n\n", p.ID)
	fmt.Fprintf(&b, "Found %d emails safe to delete:\n\n", len(p.Emails))

	if len(p.CategoryBreakdown) > 0 {
		b.WriteString("📊 Breakdown:\n")
		for _, cat := range []core.Category{
			core.CategoryUrgent,
			core.CategoryPersonal,
			core.CategoryNewsletter,
			core.CategoryPromotional,
			core.CategoryInformational,
			core.CategorySpam,
		} {
			if count, ok := p.CategoryBreakdown[cat]; ok {
				fmt.Fprintf(&b, "%s %s: %d\n", core.CategoryIcon(cat), cat, count)
			}
		}
		b.WriteString("\n")
	}

	shown := len(p.Emails)
	if shown > previewCap {
		shown = previewCap
	}
	for i := 0; i < shown; i++ {
		b.WriteString(formatEmailPreview(p.Emails[i], i+1, time.Now()))
		b.WriteString("\n")
	}
	if rest := len(p.Emails) - shown; rest > 0 {
		fmt.Fprintf(&b, "\n... and %d more (use /details to see all)\n", rest)
	}

	b.WriteString("\n💡 Reply with:\n")
	b.WriteString("✅ /yes - Delete all\n")
	b.WriteString("❌ /no - Keep all\n")
	b.WriteString("🎯 /delete_only 5,10 - Delete ONLY those (ranges: 1-5,10)\n")
	b.WriteString("🎯 /except 1,3,5 - Keep those, delete rest\n")
	b.WriteString("📄 /details - See full list")

	return b.String()
}

// formatDetails renders the full proposal listing in chunks.
func formatDetails(emails []*core.Email) []string {
	now := time.Now()
	var messages []string

	for start := 0; start < len(emails); start += detailsChunkSize {
		end := start + detailsChunkSize
		if end > len(emails) {
			end = len(emails)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "📧 Emails %d-%d:\n\n", start+1, end)
		for i := start; i < end; i++ {
			b.WriteString(formatEmailPreview(emails[i], i+1, now))
			b.WriteString("\n")
		}
		messages = append(messages, b.String())
	}

	return messages
}

func formatApproved(count int) string {
	return fmt.Sprintf("✅ DELETION APPROVED\n\n"+
		"🗑️ Deleting %d emails...\n"+
		"💾 Creating backup first...\n"+
		"⏳ This may take a moment...", count)
}

func formatRejected(count int) string {
	return fmt.Sprintf("❌ DELETION CANCELLED\n\n"+
		"🛡️ All %d emails will be kept\n"+
		"✅ No changes made", count)
}

func formatDeleteOnly(deleteCount, keepCount int, indices []int) string {
	parts := make([]string, len(indices))
	for i, n := range indices {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("🎯 DELETE ONLY SPECIFIED\n\n"+
		"🗑️ Deleting %d email(s): %s\n"+
		"🛡️ Keeping %d email(s)\n\n"+
		"💾 Creating backup first...",
		deleteCount, strings.Join(parts, ", "), keepCount)
}

func formatPartial(deleteCount, excludedCount int) string {
	return fmt.Sprintf("🎯 PARTIAL DELETION\n\n"+
		"🗑️ Deleting %d emails\n"+
		"🛡️ Keeping %d excluded emails\n"+
		"💾 Creating backup first...", deleteCount, excludedCount)
}

// formatCompletion renders the post-deletion report with inbox stats when
// both counts were available.
func formatCompletion(res *core.DeletionResult) string {
	var b strings.Builder

	b.WriteString("🎉 DELETION COMPLETE!\n\n")
	fmt.Fprintf(&b, "✅ Successfully deleted: %d emails\n", res.Success)

	if res.Failed > 0 {
		fmt.Fprintf(&b, "⚠️ Errors: %d emails\n", res.Failed)
	}

	if res.CountsKnown {
		b.WriteString("\n📊 Inbox Status:\n")
		fmt.Fprintf(&b, "   Before: %d emails\n", res.CountBefore)
		fmt.Fprintf(&b, "   After: %d emails\n", res.CountAfter)
		fmt.Fprintf(&b, "   Progress: %.2f%% cleaned\n", res.ProgressPercent)
	}

	b.WriteString("\n📊 Your inbox is now cleaner!\n")
	b.WriteString("💾 Backup saved (can undo if needed)")

	return b.String()
}

// formatFailures lists the first few per-email deletion failures.
func formatFailures(res *core.DeletionResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ %d emails failed to delete:\n", res.Failed)
	shown := len(res.Errors)
	if shown > 5 {
		shown = 5
	}
	for i := 0; i < shown; i++ {
		fmt.Fprintf(&b, "• %s: %s\n", res.Errors[i].Subject, res.Errors[i].Error)
	}
	return b.String()
}

func formatBackups(summaries []core.BackupSummary) string {
	if len(summaries) == 0 {
		return "📦 No backups found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📦 Found %d backup(s):\n\n", len(summaries))
	for _, s := range summaries {
		fmt.Fprintf(&b, "• %s - %d emails (%s)\n", s.ProposalID, s.EmailCount, s.Timestamp)
	}
	b.WriteString("\nUse /backups <proposal_id> to inspect one")
	return b.String()
}

// formatBackupDetail renders one backup record with a sample of the subjects
// it preserves.
func formatBackupDetail(rec *core.BackupRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📦 Backup %s\n\n", rec.ProposalID)
	fmt.Fprintf(&b, "Created: %s\n", rec.Timestamp)
	fmt.Fprintf(&b, "Emails: %d\n\n", rec.EmailCount)

	shown := len(rec.Emails)
	if shown > backupSampleSize {
		shown = backupSampleSize
	}
	for i := 0; i < shown; i++ {
		subject := rec.Emails[i].Subject
		if subject == "" {
			subject = "No Subject"
		}
		if len(subject) > backupSubjectCap {
			subject = subject[:backupSubjectCap]
		}
		fmt.Fprintf(&b, "• %s\n", subject)
	}
	if remaining := len(rec.Emails) - shown; remaining > 0 {
		fmt.Fprintf(&b, "... and %d more\n", remaining)
	}
	return b.String()
}

func formatSummary(res *core.DeletionResult) string {
	if res == nil {
		return "📊 No deletions have run yet"
	}

	var b strings.Builder
	b.WriteString("📊 Last deletion:\n\n")
	fmt.Fprintf(&b, "• Proposal: %s\n", res.ProposalID)
	fmt.Fprintf(&b, "• Deleted: %d of %d\n", res.Success, res.Total)
	fmt.Fprintf(&b, "• Failed: %d\n", res.Failed)
	if res.BackupLocation != "" {
		fmt.Fprintf(&b, "• Backup: %s\n", res.BackupLocation)
	}
	return b.String()
}

const welcomeMessage = "👋 Welcome to Email Cleanup Bot!\n\n" +
	"I'll help you safely delete old unwanted emails.\n\n" +
	"Commands:\n" +
	"/analyze - Analyze your inbox\n" +
	"/yes - Approve deletion\n" +
	"/no - Reject deletion\n" +
	"/except N,N,N - Delete all except those\n" +
	"/details - See full list\n" +
	"/help - Show this message"

const helpMessage = "🤖 Email Cleanup Bot Commands:\n\n" +
	"🔄 /analyze - Fetch and analyze inbox emails\n" +
	"✅ /yes - Approve all deletions\n" +
	"❌ /no - Reject all deletions\n" +
	"🎯 /delete_only 1-5,10 - Delete only those numbers\n" +
	"🎯 /except 1,3,5 - Delete all except those numbers\n" +
	"📄 /details - Show full email list\n" +
	"📦 /backups [id] - List deletion backups, or show one\n" +
	"📊 /summary - Show last deletion summary\n" +
	"❓ /help - Show this message\n\n" +
	"💡 The bot will send you deletion proposals.\n" +
	"Review them and respond with a command!"

const noProposalMessage = "❌ No active proposal. Run /analyze first!"
