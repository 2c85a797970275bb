package telegram

// Client sends plain-text messages to a Telegram chat.
// Motor only uses it to reach the admin.
type Client interface {
	SendText(chatID int64, text string) error
}
