package smtpmailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
	"github.com/ThalesGSN/SecretSanta/internal/ports"
)

// Mailer delivers notifications over SMTP with STARTTLS, authenticating as
// the configured user. The password arrives as an explicit argument from the
// interactive prompt and lives only inside the dialer.
type Mailer struct {
	client *mail.Client
	from   string
}

var _ ports.Mailer = (*Mailer)(nil)

func New(cfg domain.SMTPConfig, password string) (*Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(cfg.User),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "smtpmailer.new",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	return &Mailer{client: client, from: cfg.User}, nil
}

// Send dials, authenticates, and delivers one message.
func (m *Mailer) Send(ctx context.Context, msg domain.Message) error {
	mm, err := buildMessage(m.from, msg)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return &domain.OpError{
			Op:   "smtpmailer.send",
			Kind: domain.KindDelivery,
			Err:  fmt.Errorf("%w: %v", domain.ErrDelivery, err),
		}
	}
	return nil
}

func buildMessage(from string, msg domain.Message) (*mail.Msg, error) {
	mm := mail.NewMsg()
	if err := mm.From(from); err != nil {
		return nil, &domain.OpError{
			Op:   "smtpmailer.build",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("from address: %w", err),
		}
	}
	if err := mm.AddToFormat(msg.ToName, msg.To); err != nil {
		return nil, &domain.OpError{
			Op:   "smtpmailer.build",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("to address %s: %w", msg.To, err),
		}
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	return mm, nil
}
