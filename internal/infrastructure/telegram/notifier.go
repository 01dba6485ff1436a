package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vladima-ai/payment-service/internal/domain"
)

const defaultAPIURL = "https://api.telegram.org"

// Notifier sends the post-payment access message to the buyer's chat via the
// Bot API. It is invoked only on a first-time confirmation; the caller logs
// and swallows errors so the webhook acknowledgment is never affected.
type Notifier struct {
	botToken string
	apiURL   string
	links    AccessLinks
	client   *http.Client
}

type AccessLinks struct {
	WebinarAccessURL string
	ProBotURL        string
}

func NewNotifier(botToken string, links AccessLinks) *Notifier {
	return &Notifier{
		botToken: botToken,
		apiURL:   defaultAPIURL,
		links:    links,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (n *Notifier) NotifyPaid(ctx context.Context, order *domain.Order) error {
	if n.botToken == "" {
		return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN", domain.ErrMissingConfiguration)
	}
	if order.ChatID == 0 {
		return fmt.Errorf("order InvId=%d has no chat to notify", order.InvID)
	}
	return n.sendMessage(ctx, order.ChatID, AccessMessage(order.ProductCode, n.links))
}

func (n *Notifier) sendMessage(ctx context.Context, chatID int64, text string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.botToken)
	form := url.Values{}
	form.Set("chat_id", strconv.FormatInt(chatID, 10))
	form.Set("text", text)
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram sendMessage: %s", resp.Status)
	}
	return nil
}
