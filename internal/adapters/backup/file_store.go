package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

// FileStore writes one backup_<proposal_id>.json per proposal into a
// directory. Records are never overwritten or removed.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates a file backup store, creating the directory if needed
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &FileStore{
		dir:    dir,
		logger: logger,
	}, nil
}

// Create writes a backup record and returns the file path
func (s *FileStore) Create(ctx context.Context, rec *core.BackupRecord) (string, error) {
	path := filepath.Join(s.dir, "backup_"+rec.ProposalID+".json")

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup record: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	s.logger.Info("Backup created",
		zap.String("path", path),
		zap.Int("email_count", rec.EmailCount))

	return path, nil
}

// Get retrieves a backup record by proposal ID
func (s *FileStore) Get(ctx context.Context, proposalID string) (*core.BackupRecord, error) {
	path := filepath.Join(s.dir, "backup_"+proposalID+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("backup not found for proposal %s", proposalID)
		}
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	var rec core.BackupRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal backup record: %w", err)
	}

	return &rec, nil
}

// List enumerates all backup files, oldest first
func (s *FileStore) List(ctx context.Context) ([]core.BackupSummary, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "backup_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list backup files: %w", err)
	}
	sort.Strings(paths)

	summaries := make([]core.BackupSummary, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("Skipping unreadable backup file",
				zap.String("path", path), zap.Error(err))
			continue
		}

		var rec core.BackupRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			s.logger.Warn("Skipping malformed backup file",
				zap.String("path", path), zap.Error(err))
			continue
		}

		proposalID := rec.ProposalID
		if proposalID == "" {
			base := filepath.Base(path)
			proposalID = strings.TrimSuffix(strings.TrimPrefix(base, "backup_"), ".json")
		}

		summaries = append(summaries, core.BackupSummary{
			Location:   path,
			ProposalID: proposalID,
			Timestamp:  rec.Timestamp,
			EmailCount: rec.EmailCount,
		})
	}

	return summaries, nil
}
