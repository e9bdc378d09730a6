package core

import (
	"context"

	"go.uber.org/zap"
)

// Deleter executes approved deletion batches against the mail store:
// backup first, then per-email delete calls, tolerating partial failure.
type Deleter struct {
	mail    MailStore
	backups BackupStore
	logger  *zap.Logger

	lastDeletion *DeletionResult
}

// NewDeleter creates a deletion executor.
func NewDeleter(mail MailStore, backups BackupStore, logger *zap.Logger) *Deleter {
	return &Deleter{
		mail:    mail,
		backups: backups,
		logger:  logger,
	}
}

// Delete backs up and deletes a batch of emails. One email's failure never
// aborts the rest of the batch; the result carries one error record per
// failed delete call. The backup is written before the first delete call is
// issued; deletion never proceeds without a backup unless the caller
// explicitly disables it.
func (d *Deleter) Delete(ctx context.Context, emails []*Email, proposalID string, createBackup bool) (*DeletionResult, error) {
	if len(emails) == 0 {
		d.logger.Info("No emails to delete")
		return &DeletionResult{Errors: []DeletionError{}}, nil
	}

	if proposalID == "" {
		proposalID = NewProposalID()
	}

	d.logger.Info("Starting deletion",
		zap.String("proposal_id", proposalID),
		zap.Int("emails", len(emails)))

	// Best effort: a refresh failure is logged, the delete calls below
	// surface their own auth errors.
	if err := d.mail.RefreshCredentials(ctx); err != nil {
		d.logger.Warn("Credential refresh failed", zap.Error(err))
	}

	countBefore, haveBefore := d.inboxCount(ctx, CountTotal)

	result := &DeletionResult{
		ProposalID: proposalID,
		Total:      len(emails),
		Errors:     []DeletionError{},
	}

	if createBackup {
		location, err := d.backups.Create(ctx, NewBackupRecord(proposalID, emails))
		if err != nil {
			// Never delete what we could not back up.
			return nil, err
		}
		result.BackupLocation = location
		d.logger.Info("Backup created",
			zap.String("location", location),
			zap.Int("emails", len(emails)))
	}

	for i, email := range emails {
		if err := d.mail.DeleteMessage(ctx, email.ID); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, DeletionError{
				EmailID: email.ID,
				Subject: truncate(email.Subject, 50),
				Error:   err.Error(),
			})
			d.logger.Warn("Delete failed",
				zap.Int("index", i+1),
				zap.String("email_id", email.ID),
				zap.Error(err))
			continue
		}
		result.Success++
		result.DeletedIDs = append(result.DeletedIDs, email.ID)
		d.logger.Debug("Deleted email",
			zap.Int("index", i+1),
			zap.String("email_id", email.ID))
	}

	countAfter, haveAfter := d.inboxCount(ctx, CountTotal)

	// Report the cleanup metric only when both counts are available.
	if haveBefore && haveAfter && countBefore > 0 {
		result.CountsKnown = true
		result.CountBefore = countBefore
		result.CountAfter = countAfter
		result.ProgressPercent = float64(countBefore-countAfter) / float64(countBefore) * 100
	}

	d.lastDeletion = result

	d.logger.Info("Deletion complete",
		zap.String("proposal_id", proposalID),
		zap.Int("success", result.Success),
		zap.Int("failed", result.Failed))

	return result, nil
}

// LastDeletion returns the most recent deletion result, or nil if no
// deletion has run yet. The backup record is the durable artifact; this is
// in-memory state for summary queries only.
func (d *Deleter) LastDeletion() *DeletionResult {
	return d.lastDeletion
}

func (d *Deleter) inboxCount(ctx context.Context, scope CountScope) (int, bool) {
	count, err := d.mail.InboxCount(ctx, scope)
	if err != nil {
		d.logger.Warn("Could not fetch inbox count",
			zap.String("scope", string(scope)),
			zap.Error(err))
		return 0, false
	}
	return count, true
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
