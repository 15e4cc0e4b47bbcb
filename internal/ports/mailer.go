package ports

import (
	"context"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
)

// Mailer delivers one rendered notification. The dry-run console printer and
// the SMTP sender both satisfy this.
type Mailer interface {
	Send(ctx context.Context, msg domain.Message) error
}
