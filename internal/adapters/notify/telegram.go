package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// TelegramTransport delivers messages over a Telegram bot via long polling,
// restricted to a single chat.
type TelegramTransport struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramTransport creates a Telegram transport
func NewTelegramTransport(token string, chatID int64, logger *zap.Logger) (*TelegramTransport, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", api.Self.UserName))

	return &TelegramTransport{
		api:    api,
		chatID: chatID,
		logger: logger,
	}, nil
}

// Send delivers one message to the configured chat
func (t *TelegramTransport) Send(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	return nil
}

// Listen long-polls for updates and feeds message text from the configured
// chat into handle. Messages from any other chat are dropped.
func (t *TelegramTransport) Listen(ctx context.Context, handle func(ctx context.Context, text string)) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := t.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			if update.Message.Chat.ID != t.chatID {
				t.logger.Warn("Ignoring message from unknown chat",
					zap.Int64("chat_id", update.Message.Chat.ID))
				continue
			}
			handle(ctx, update.Message.Text)
		}
	}
}
