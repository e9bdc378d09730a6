package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

// SQLiteStore keeps backup records as rows in a SQLite database, one row per
// proposal, insert-only.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
	dbPath string
}

// NewSQLiteStore creates a SQLite backup store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS email_backups (
			proposal_id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			email_count INTEGER NOT NULL,
			record TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger,
		dbPath: dbPath,
	}, nil
}

// Create inserts a backup record and returns a row locator
func (s *SQLiteStore) Create(ctx context.Context, rec *core.BackupRecord) (string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO email_backups (proposal_id, created_at, email_count, record)
		VALUES (?, ?, ?, ?)
	`, rec.ProposalID, rec.Timestamp, rec.EmailCount, string(data))
	if err != nil {
		return "", fmt.Errorf("failed to insert backup record: %w", err)
	}

	s.logger.Info("Backup created",
		zap.String("proposal_id", rec.ProposalID),
		zap.Int("email_count", rec.EmailCount))

	return fmt.Sprintf("sqlite:%s#%s", s.dbPath, rec.ProposalID), nil
}

// Get retrieves a backup record by proposal ID
func (s *SQLiteStore) Get(ctx context.Context, proposalID string) (*core.BackupRecord, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT record FROM email_backups WHERE proposal_id = ?
	`, proposalID).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("backup not found for proposal %s", proposalID)
		}
		return nil, fmt.Errorf("failed to query backup record: %w", err)
	}

	var rec core.BackupRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backup record: %w", err)
	}

	return &rec, nil
}

// List enumerates all backup rows, oldest first
func (s *SQLiteStore) List(ctx context.Context) ([]core.BackupSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT proposal_id, created_at, email_count
		FROM email_backups
		ORDER BY proposal_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list backup records: %w", err)
	}
	defer rows.Close()

	var summaries []core.BackupSummary
	for rows.Next() {
		var sum core.BackupSummary
		if err := rows.Scan(&sum.ProposalID, &sum.Timestamp, &sum.EmailCount); err != nil {
			return nil, fmt.Errorf("failed to scan backup row: %w", err)
		}
		sum.Location = fmt.Sprintf("sqlite:%s#%s", s.dbPath, sum.ProposalID)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate backup rows: %w", err)
	}

	return summaries, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
