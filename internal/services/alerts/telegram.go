package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

type TelegramService struct {
	token      string
	chatID     string
	apiBase    string
	httpClient *http.Client
}

func NewTelegramService(token, chatID string) *TelegramService {
	return &TelegramService{
		token:   token,
		chatID:  chatID,
		apiBase: telegramAPIBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Configured reports whether credentials are present. Sending without
// them is a no-op error, not a crash, so the monitor can run alert-less.
func (s *TelegramService) Configured() bool {
	return s.token != "" && s.chatID != ""
}

// Send delivers a Markdown-formatted message to the configured chat
func (s *TelegramService) Send(ctx context.Context, message string) error {
	if !s.Configured() {
		return errors.New("missing telegram token or chat id")
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id":    s.chatID,
		"text":       message,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
