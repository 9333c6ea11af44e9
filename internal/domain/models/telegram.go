package models

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// InboundMessage is the subset of a Telegram update the relay acts on.
type InboundMessage struct {
	ChatID int64
	Text   string
}

// InboundFromUpdate extracts the chat and text of an update. The boolean is
// false when the update carries no message, no chat or no text.
func InboundFromUpdate(update tgbotapi.Update) (InboundMessage, bool) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return InboundMessage{}, false
	}
	return InboundMessage{ChatID: msg.Chat.ID, Text: msg.Text}, true
}
