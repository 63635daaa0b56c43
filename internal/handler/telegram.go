package handler

import (
	"strings"
	"sync"

	"lingo/internal/view"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Messenger is the part of *tele.Bot the Telegram display needs
type Messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Inline keyboard buttons
var btnNextWord = tele.Btn{
	Unique: "next_word",
	Text:   "🔄 Next word",
}

func cardMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnNextWord))
	return menu
}

// TelegramDisplay keeps one card message in a chat in sync with the presenter.
// Countdown ticks are not published.
type TelegramDisplay struct {
	messenger Messenger
	chat      *tele.Chat
	widget    Widget
	logger    *zap.Logger

	mu      sync.Mutex
	message *tele.Message
	text    string
	seq     uint64
}

// NewTelegramDisplay creates a display posting to chatID
func NewTelegramDisplay(messenger Messenger, chatID int64, widget Widget, logger *zap.Logger) *TelegramDisplay {
	return &TelegramDisplay{
		messenger: messenger,
		chat:      &tele.Chat{ID: chatID},
		widget:    widget,
		logger:    logger,
	}
}

// RegisterHandlers registers the bot commands and buttons
func (d *TelegramDisplay) RegisterHandlers(bot *tele.Bot) {
	bot.Handle("/word", d.handleWord)
	bot.Handle("/next", d.handleNext)
	bot.Handle(&btnNextWord, d.handleNextButton)
}

// Show publishes state changes to the chat. Models for a word set older than
// the last one drawn are ignored.
func (d *TelegramDisplay) Show(m view.Model) {
	if m.Reason == view.ReasonTick {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if m.Seq < d.seq {
		d.logger.Debug("Ignoring stale card", zap.Uint64("seq", m.Seq), zap.Uint64("current_seq", d.seq))
		return
	}
	d.seq = m.Seq

	text := view.Text(m)
	if d.message != nil && text == d.text {
		return
	}
	d.publishLocked(text)
}

// Resend posts the current card as a new message
func (d *TelegramDisplay) Resend(m view.Model) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if m.Seq > d.seq {
		d.seq = m.Seq
	}
	d.message = nil
	d.publishLocked(view.Text(m))
}

func (d *TelegramDisplay) publishLocked(text string) {
	if d.message != nil {
		_, err := d.messenger.Edit(d.message, text, cardMarkup())
		if err == nil {
			d.text = text
			return
		}
		if strings.Contains(err.Error(), "message is not modified") {
			d.text = text
			return
		}
		d.logger.Warn("Failed to edit card, sending new", zap.Error(err))
	}

	msg, err := d.messenger.Send(d.chat, text, cardMarkup())
	if err != nil {
		d.logger.Error("Failed to send card",
			zap.Error(err),
			zap.Int64("chat_id", d.chat.ID),
		)
		return
	}
	d.message = msg
	d.text = text
}

// handleWord re-sends the current card
func (d *TelegramDisplay) handleWord(c tele.Context) error {
	d.Resend(d.widget.View())
	return nil
}

// handleNext requests the next word set
func (d *TelegramDisplay) handleNext(c tele.Context) error {
	d.widget.RequestNextWord()
	d.logger.Info("Next word requested over Telegram", zap.Int64("chat_id", c.Chat().ID))
	return nil
}

// handleNextButton handles the inline next button
func (d *TelegramDisplay) handleNextButton(c tele.Context) error {
	d.widget.RequestNextWord()
	return c.Respond(&tele.CallbackResponse{Text: "Next word"})
}
