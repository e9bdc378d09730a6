package factory

import (
	"fmt"

	"github.com/mikey/inbox-cleanup-agent/internal/adapters/notify"
	"github.com/mikey/inbox-cleanup-agent/internal/bot"
	"github.com/mikey/inbox-cleanup-agent/internal/config"
	"go.uber.org/zap"
)

// NotifierFactory creates bot transports based on configuration
type NotifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewNotifierFactory creates a new notifier factory
func NewNotifierFactory(cfg *config.Config, logger *zap.Logger) *NotifierFactory {
	return &NotifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTransport creates a bot transport based on the configuration
func (f *NotifierFactory) CreateTransport() (bot.Transport, error) {
	botCfg := f.cfg.GetBot()

	switch botCfg.Transport {
	case "telegram":
		tgCfg := f.cfg.GetTelegram()
		return notify.NewTelegramTransport(tgCfg.BotToken, tgCfg.ChatID, f.logger)
	case "console":
		return notify.NewConsoleTransport(f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported bot transport: %s", botCfg.Transport)
	}
}
