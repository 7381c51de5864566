package notify

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

// OrderMessage formats the owner-facing order notification text.
func OrderMessage(o *models.Order) string {
	var b strings.Builder
	b.WriteString("New Order Received!\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n\n", o.CustomerPhone)
	b.WriteString("Items:\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "%s x%d - ₹%.2f\n", item.Name, item.Quantity, item.Price*float64(item.Quantity))
	}
	instructions := o.SpecialInstructions
	if instructions == "" {
		instructions = "None"
	}
	fmt.Fprintf(&b, "\nSpecial Instructions: %s\n\n", instructions)
	fmt.Fprintf(&b, "Total: ₹%.2f", o.TotalAmount)
	return b.String()
}

// WhatsAppURL builds a wa.me deep link carrying the message text. An
// empty phone yields the generic share link.
func WhatsAppURL(phone, text string) string {
	if phone == "" {
		return "https://wa.me/?text=" + url.QueryEscape(text)
	}
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(text)
}

// LogNotifier writes the WhatsApp deep link to the process log. It is
// the default, delivery-less notifier.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, destination, text string) error {
	log.Printf("📲 Order notification for %s: %s", destination, WhatsAppURL(destination, text))
	return nil
}

// TelegramNotifier pushes the notification text to the owner's Telegram
// chat through a bot.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

func (n *TelegramNotifier) Send(ctx context.Context, destination, text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
