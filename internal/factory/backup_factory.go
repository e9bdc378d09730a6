package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/inbox-cleanup-agent/internal/adapters/backup"
	"github.com/mikey/inbox-cleanup-agent/internal/config"
	"github.com/mikey/inbox-cleanup-agent/internal/core"
	"go.uber.org/zap"
)

// BackupFactory creates backup stores based on configuration
type BackupFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewBackupFactory creates a new backup factory
func NewBackupFactory(cfg *config.Config, logger *zap.Logger) *BackupFactory {
	return &BackupFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateBackupStore creates a backup store based on the configuration
func (f *BackupFactory) CreateBackupStore() (core.BackupStore, error) {
	backupCfg := f.cfg.GetBackup()

	switch backupCfg.Type {
	case "file":
		return backup.NewFileStore(backupCfg.Dir, f.logger)
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(backupCfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return backup.NewSQLiteStore(backupCfg.SQLitePath, f.logger)
	case "mysql":
		return backup.NewMySQLStore(backupCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported backup type: %s", backupCfg.Type)
	}
}
