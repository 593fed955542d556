package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	telegramBaseURL = "https://api.telegram.org"
	httpTimeout     = 15 * time.Second
)

// Telegram sends messages through the Telegram Bot API to a fixed chat.
type Telegram struct {
	baseURL string
	token   string
	chatID  string
	client  *http.Client
}

// NewTelegram validates the bot token eagerly via getMe and returns the
// notifier. A rejected token fails construction, before the monitor starts.
func NewTelegram(ctx context.Context, token, chatID string) (*Telegram, error) {
	return newTelegram(ctx, telegramBaseURL, token, chatID)
}

func newTelegram(ctx context.Context, baseURL, token, chatID string) (*Telegram, error) {
	t := &Telegram{
		baseURL: baseURL,
		token:   token,
		chatID:  chatID,
		client:  &http.Client{Timeout: httpTimeout},
	}
	if err := t.call(ctx, "getMe", nil); err != nil {
		return nil, fmt.Errorf("telegram token check: %w", err)
	}
	return t, nil
}

// Send delivers one message to the configured chat.
func (t *Telegram) Send(ctx context.Context, text string) error {
	body := map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	if err := t.call(ctx, "sendMessage", body); err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}

// apiResponse mirrors the envelope every Bot API method returns.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *Telegram) call(ctx context.Context, method string, body map[string]string) error {
	url := fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("http POST: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var api apiResponse
	if err := json.Unmarshal(raw, &api); err != nil {
		return fmt.Errorf("bot api returned %d: %s", resp.StatusCode, string(raw))
	}
	if !api.OK {
		return fmt.Errorf("bot api error: %s", api.Description)
	}
	return nil
}
