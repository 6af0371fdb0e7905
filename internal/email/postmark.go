package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"warden/pkg/domain"
)

const (
	postmarkAuthHeader    = "X-Postmark-Server-Token"
	postmarkMessageStream = "outbound"
)

// PostmarkSender delivers mail through the Postmark HTTP API.
type PostmarkSender struct {
	httpClient  *http.Client
	baseURL     string
	sender      domain.Email
	serverToken domain.Secret
}

// NewPostmark constructs a Postmark sender. baseURL must include the scheme;
// httpClient may be nil, in which case a client with a 10s timeout is used.
func NewPostmark(baseURL string, sender domain.Email, serverToken domain.Secret, httpClient *http.Client) (*PostmarkSender, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse postmark base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &PostmarkSender{
		httpClient:  httpClient,
		baseURL:     baseURL,
		sender:      sender,
		serverToken: serverToken,
	}, nil
}

type postmarkRequest struct {
	From          string `json:"From"`
	To            string `json:"To"`
	Subject       string `json:"Subject"`
	HTMLBody      string `json:"HtmlBody"`
	TextBody      string `json:"TextBody"`
	MessageStream string `json:"MessageStream"`
}

func (p *PostmarkSender) Send(ctx context.Context, recipient domain.Email, subject, body string) error {
	endpoint, err := url.JoinPath(p.baseURL, "email")
	if err != nil {
		return fmt.Errorf("build postmark url: %w", err)
	}

	payload, err := json.Marshal(postmarkRequest{
		From:          p.sender.String(),
		To:            recipient.String(),
		Subject:       subject,
		HTMLBody:      body,
		TextBody:      body,
		MessageStream: postmarkMessageStream,
	})
	if err != nil {
		return fmt.Errorf("marshal postmark request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build postmark request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(postmarkAuthHeader, p.serverToken.Expose())

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Postmark errors carry a JSON body; keep a bounded prefix for logs.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("postmark returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
