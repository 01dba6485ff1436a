package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladima-ai/payment-service/internal/domain"
)

func paidOrder() *domain.Order {
	return &domain.Order{
		InvID:       42,
		UserID:      5,
		ChatID:      77,
		ProductCode: domain.ProductWebinar,
		Amount:      "2990.00",
		Status:      domain.StatusPaid,
	}
}

func TestNotifyPaidSendsToChat(t *testing.T) {
	var gotPath string
	var gotChatID, gotText string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPath = r.URL.Path
		gotChatID = r.PostFormValue("chat_id")
		gotText = r.PostFormValue("text")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	n := NewNotifier("bot-token", AccessLinks{WebinarAccessURL: "https://example.com/webinar"})
	n.apiURL = ts.URL

	require.NoError(t, n.NotifyPaid(context.Background(), paidOrder()))
	assert.Equal(t, "/botbot-token/sendMessage", gotPath)
	assert.Equal(t, "77", gotChatID)
	assert.Contains(t, gotText, "https://example.com/webinar")
}

func TestNotifyPaidAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusForbidden)
	}))
	defer ts.Close()

	n := NewNotifier("bot-token", AccessLinks{})
	n.apiURL = ts.URL

	err := n.NotifyPaid(context.Background(), paidOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestNotifyPaidMissingToken(t *testing.T) {
	n := NewNotifier("", AccessLinks{})
	err := n.NotifyPaid(context.Background(), paidOrder())
	assert.True(t, errors.Is(err, domain.ErrMissingConfiguration))
}

func TestNotifyPaidNoChat(t *testing.T) {
	n := NewNotifier("bot-token", AccessLinks{})
	order := paidOrder()
	order.ChatID = 0
	assert.Error(t, n.NotifyPaid(context.Background(), order))
}

func TestAccessMessagePerProduct(t *testing.T) {
	links := AccessLinks{
		WebinarAccessURL: "https://example.com/webinar",
		ProBotURL:        "https://t.me/pro_bot",
	}

	assert.Contains(t, AccessMessage("webinar", links), links.WebinarAccessURL)
	assert.Contains(t, AccessMessage("pro", links), links.ProBotURL)

	// Group tiers share one message and never embed a link.
	for _, code := range []string{"group", "group_standard", "group_vip"} {
		msg := AccessMessage(code, links)
		assert.Contains(t, msg, "групповых занятий")
		assert.NotContains(t, msg, "https://")
	}

	// Without configured links the texts degrade but never go empty.
	assert.NotEmpty(t, AccessMessage("webinar", AccessLinks{}))
	assert.NotEmpty(t, AccessMessage("pro", AccessLinks{}))
	assert.NotEmpty(t, AccessMessage("unknown_product", links))
}
