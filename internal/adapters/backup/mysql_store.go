package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

// MySQLStore keeps backup records in a MySQL table, one row per proposal,
// insert-only.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a MySQL backup store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS email_backups (
			proposal_id VARCHAR(64) PRIMARY KEY,
			created_at VARCHAR(64) NOT NULL,
			email_count INT NOT NULL,
			record MEDIUMTEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

// Create inserts a backup record and returns a row locator
func (s *MySQLStore) Create(ctx context.Context, rec *core.BackupRecord) (string, error) {
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

	return "mysql:email_backups#" + rec.ProposalID, nil
}

// Get retrieves a backup record by proposal ID
func (s *MySQLStore) Get(ctx context.Context, proposalID string) (*core.BackupRecord, error) {
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
func (s *MySQLStore) List(ctx context.Context) ([]core.BackupSummary, error) {
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
		sum.Location = "mysql:email_backups#" + sum.ProposalID
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate backup rows: %w", err)
	}

	return summaries, nil
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
