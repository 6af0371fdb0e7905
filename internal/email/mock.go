package email

import (
	"context"
	"log/slog"
	"sync"

	"warden/pkg/domain"
)

// SentMessage is one message captured by the mock sender.
type SentMessage struct {
	Recipient domain.Email
	Subject   string
	Body      string
}

// MockSender records messages instead of delivering them. Used in tests and
// as the dev fallback when no provider is configured.
type MockSender struct {
	mu       sync.Mutex
	sent     []SentMessage
	failWith error
	logger   *slog.Logger
}

// NewMock constructs a recording sender. logger may be nil.
func NewMock(logger *slog.Logger) *MockSender {
	return &MockSender{logger: logger}
}

// FailWith makes every subsequent Send return err. Pass nil to recover.
func (m *MockSender) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

func (m *MockSender) Send(ctx context.Context, recipient domain.Email, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, SentMessage{Recipient: recipient, Subject: subject, Body: body})
	if m.logger != nil {
		m.logger.DebugContext(ctx, "mock email sent",
			"recipient", recipient.String(),
			"subject", subject,
		)
	}
	return nil
}

// Sent returns a copy of everything sent so far.
func (m *MockSender) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// LastTo returns the most recent message sent to recipient, if any.
func (m *MockSender) LastTo(recipient domain.Email) (SentMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].Recipient == recipient {
			return m.sent[i], true
		}
	}
	return SentMessage{}, false
}
