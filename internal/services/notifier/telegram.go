// Package notifier delivers priority signal alerts to an operator channel.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/memewatch/internal/domain"
)

const (
	defaultAPIURL   = "https://api.telegram.org"
	deliveryTimeout = 10 * time.Second
)

// TelegramNotifier sends alert messages through the Telegram Bot API.
// Delivery is best effort: one attempt per row per cycle, no dedup across
// cycles while a condition holds.
type TelegramNotifier struct {
	apiURL     string
	token      string
	chatID     string
	httpClient *http.Client
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegramNotifier creates a notifier. Empty token or chat ID yields a
// disabled notifier, which is a valid configuration, not an error.
func NewTelegramNotifier(token, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		apiURL:     defaultAPIURL,
		token:      token,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: deliveryTimeout},
	}
}

// NewTelegramNotifierWithAPIURL creates a notifier against a custom API base.
// Used by tests to point at a fake Telegram server.
func NewTelegramNotifierWithAPIURL(apiURL, token, chatID string) *TelegramNotifier {
	n := NewTelegramNotifier(token, chatID)
	n.apiURL = apiURL

	return n
}

// Enabled reports whether delivery credentials are configured.
func (n *TelegramNotifier) Enabled() bool {
	return n.token != "" && n.chatID != ""
}

// Notify sends one alert message for a priority row.
func (n *TelegramNotifier) Notify(ctx context.Context, row domain.MarketRow) error {
	if !n.Enabled() {
		return nil
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    n.chatID,
		Text:      formatAlert(row),
		ParseMode: "Markdown",
	})
	if err != nil {
		return errors.Wrap(err, "failed to marshal telegram payload")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiURL, n.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrap(err, "failed to build telegram request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "telegram request failed")
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return errors.Wrap(err, "failed to decode telegram response")
	}

	if !result.OK {
		return fmt.Errorf("telegram API rejected message: %s", result.Description)
	}

	return nil
}

func formatAlert(row domain.MarketRow) string {
	return fmt.Sprintf(
		"🚨 *SIGNAL DETECTED!*\n\n"+
			"Token: %s\n"+
			"Price: %s\n"+
			"24h Change: %s\n"+
			"Signal: %s\n"+
			"Score: %d%%\n\n"+
			"[Link DexScreener](%s)",
		row.Symbol,
		row.PriceDisplay(),
		row.ChangeDisplay(),
		row.Signal.Label,
		row.Signal.Score,
		row.PairURL,
	)
}
