// internal/infra/telegram/client.go
package telegram

import (
	"strings"

	"gopkg.in/telebot.v3"
)

// maxMessageLength is the Telegram limit for one text message.
const maxMessageLength = 4096

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendText sends text to the chat, split into several messages if it is too long.
func (tba *TelebotAdapter) SendText(chatID int64, text string) error {
	options := &telebot.SendOptions{DisableWebPagePreview: true}
	for _, chunk := range splitMessage(text, maxMessageLength) {
		if _, err := tba.bot.Send(telebot.ChatID(chatID), chunk, options); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text into chunks of at most limit runes, preferring line breaks.
func splitMessage(text string, limit int) []string {
	var chunks []string
	for {
		runes := []rune(text)
		if len(runes) <= limit {
			return append(chunks, text)
		}
		head := string(runes[:limit])
		if i := strings.LastIndex(head, "\n"); i > 0 {
			head = head[:i+1]
		}
		chunks = append(chunks, head)
		text = text[len(head):]
	}
}
