package notify

import "context"

// Settings identify the Telegram bot and chat that receive order messages.
type Settings struct {
	Token  string `json:"token"`
	ChatID string `json:"chatId"`
}

// Complete reports whether both fields are present.
func (s Settings) Complete() bool {
	return s.Token != "" && s.ChatID != ""
}

// Line is one ordered item in a notification message.
type Line struct {
	Title    string
	Quantity int
	Price    float64
}

// Notifier delivers an order summary to the store operator. Failures are
// raised to the caller; whether they are fatal is the caller's call.
type Notifier interface {
	Notify(ctx context.Context, invoiceNumber string, lines []Line, total float64, s Settings) error
}
