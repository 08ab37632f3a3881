package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// chatActionInterval stays under the 5 second lifetime of a Telegram chat action
const chatActionInterval = 4 * time.Second

// ActivityNotifier repeats a chat action ("typing", "upload_document") while work is in progress
type ActivityNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	action string
	cancel context.CancelFunc
	done   chan struct{}
	logger *zap.Logger
}

// StartActivity sends action immediately and then periodically until Stop or ctx is done
func StartActivity(ctx context.Context, bot *tgbotapi.BotAPI, chatID int64, action string, logger *zap.Logger) *ActivityNotifier {
	ctx, cancel := context.WithCancel(ctx)
	n := &ActivityNotifier{
		bot:    bot,
		chatID: chatID,
		action: action,
		cancel: cancel,
		done:   make(chan struct{}),
		logger: logger,
	}

	n.send()

	go func() {
		defer close(n.done)

		ticker := time.NewTicker(chatActionInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				n.send()
			case <-ctx.Done():
				return
			}
		}
	}()

	return n
}

// Stop stops the notifier and waits for its goroutine
func (n *ActivityNotifier) Stop() {
	n.cancel()
	<-n.done
}

func (n *ActivityNotifier) send() {
	if _, err := n.bot.Request(tgbotapi.NewChatAction(n.chatID, n.action)); err != nil {
		n.logger.Warn("failed to send chat action",
			zap.Error(err),
			zap.String("action", n.action),
			zap.Int64("chat_id", n.chatID),
		)
	}
}
