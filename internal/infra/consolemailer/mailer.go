package consolemailer

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
	"github.com/ThalesGSN/SecretSanta/internal/ports"
)

// Mailer is the dry-run sink: it prints each would-be email instead of
// delivering it. Dry-run is a property of this consumer, never of the draw.
type Mailer struct {
	out io.Writer

	header lipgloss.Style
	label  lipgloss.Style
	body   lipgloss.Style
}

var _ ports.Mailer = (*Mailer)(nil)

func New(out io.Writer) *Mailer {
	return &Mailer{
		out:    out,
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		label:  lipgloss.NewStyle().Bold(true),
		body:   lipgloss.NewStyle().Faint(true),
	}
}

// Send prints the message and never fails.
func (m *Mailer) Send(_ context.Context, msg domain.Message) error {
	fmt.Fprintln(m.out, m.header.Render(fmt.Sprintf("--- DRY RUN: email to %s <%s> ---", msg.ToName, msg.To)))
	fmt.Fprintf(m.out, "%s %s\n", m.label.Render("Subject:"), msg.Subject)
	fmt.Fprintln(m.out, m.body.Render(msg.HTMLBody))
	fmt.Fprintln(m.out)
	return nil
}
