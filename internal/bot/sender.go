package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender delivers a text reply to a chat. Delivery is best effort; failures
// are surfaced to the caller and never retried.
type Sender interface {
	SendText(chatID int64, text string) error
}

type apiSender struct {
	api *tgbotapi.BotAPI
}

// NewAPISender wraps the Telegram client as a Sender.
func NewAPISender(api *tgbotapi.BotAPI) Sender {
	return &apiSender{api: api}
}

func (s *apiSender) SendText(chatID int64, text string) error {
	_, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
