package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var _ CodeSender = (*LogCodeSender)(nil)
var _ CodeSender = (*WebhookCodeSender)(nil)

// LogCodeSender writes codes to the log. Meant for development only.
type LogCodeSender struct{}

func (LogCodeSender) SendCode(_ context.Context, email, code string) error {
	log.Infof("login code for %s: %s", email, code)
	return nil
}

// WebhookCodeSender posts codes to an external mailer.
type WebhookCodeSender struct {
	url        string
	httpClient *http.Client
}

type codeWebhookPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func NewWebhookCodeSender(url string, httpClient *http.Client) *WebhookCodeSender {
	return &WebhookCodeSender{
		url:        url,
		httpClient: httpClient,
	}
}

func (s *WebhookCodeSender) SendCode(ctx context.Context, email, code string) error {
	body, err := json.Marshal(codeWebhookPayload{Email: email, Code: code})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post code webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("code webhook responded %d: %s", resp.StatusCode, respBody)
	}
	return nil
}
