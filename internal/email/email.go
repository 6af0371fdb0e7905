// Package email abstracts outbound mail. The auth service only needs a
// Sender; delivery concerns (provider, retries, templating) stay behind it.
package email

import (
	"context"

	"warden/pkg/domain"
)

// Sender delivers a single message to a recipient. Implementations must be
// safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, recipient domain.Email, subject, body string) error
}
