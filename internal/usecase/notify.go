package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThalesGSN/SecretSanta/internal/app/template"
	"github.com/ThalesGSN/SecretSanta/internal/domain"
	"github.com/ThalesGSN/SecretSanta/internal/ports"
)

// Notify renders and delivers one message per assignment, in roster order.
// Delivery stops at the first failed send so a transient SMTP problem does
// not half-spam the group; the report records how far it got.
type Notify struct {
	mailer ports.Mailer
	log    *slog.Logger
}

type NotifyOption func(*Notify)

func WithNotifyLogger(l *slog.Logger) NotifyOption {
	return func(n *Notify) {
		if l != nil {
			n.log = l
		}
	}
}

func NewNotify(mailer ports.Mailer, opts ...NotifyOption) *Notify {
	n := &Notify{
		mailer: mailer,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Execute sends one notification per assignment. The subject and body carry
// the recipient's name; the report deliberately does not.
func (uc *Notify) Execute(ctx context.Context, set domain.AssignmentSet, event domain.EventDetails, body string) (domain.DispatchReport, error) {
	report := domain.DispatchReport{
		Deliveries: make([]domain.Delivery, 0, len(set)),
	}

	for _, a := range set {
		rendered, err := template.RenderString(body, event.TemplateVars(a))
		if err != nil {
			report.Deliveries = append(report.Deliveries, domain.Delivery{
				Giver: a.Giver,
				Err:   err.Error(),
			})
			return report, err
		}

		msg := domain.Message{
			To:       a.Giver.Email,
			ToName:   a.Giver.Name,
			Subject:  fmt.Sprintf("🎅 Olá %s! Você tem um Amigo Secreto!", a.Giver.Name),
			HTMLBody: rendered,
		}

		if err := uc.mailer.Send(ctx, msg); err != nil {
			uc.log.Error("notify.send_failed", "to", a.Giver.Email, "error", err.Error())
			report.Deliveries = append(report.Deliveries, domain.Delivery{
				Giver: a.Giver,
				Err:   err.Error(),
			})
			return report, &domain.OpError{
				Op:   "notify.send",
				Kind: domain.KindDelivery,
				Err:  fmt.Errorf("%w: %s: %v", domain.ErrDelivery, a.Giver.Email, err),
			}
		}

		uc.log.Info("notify.sent", "to", a.Giver.Email)
		report.Deliveries = append(report.Deliveries, domain.Delivery{
			Giver: a.Giver,
			Sent:  true,
		})
	}

	return report, nil
}
