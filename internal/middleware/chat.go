package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// AllowedChat creates middleware that drops updates from every chat except chatID
func AllowedChat(chatID int64, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil || chat.ID != chatID {
				var from int64
				if chat != nil {
					from = chat.ID
				}
				logger.Warn("Ignoring update from foreign chat", zap.Int64("chat_id", from))
				return nil
			}

			return next(c)
		}
	}
}
