package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
	"github.com/ThalesGSN/SecretSanta/internal/infra/config"
	"github.com/ThalesGSN/SecretSanta/internal/infra/consolemailer"
	"github.com/ThalesGSN/SecretSanta/internal/infra/csvroster"
	"github.com/ThalesGSN/SecretSanta/internal/infra/localrand"
	"github.com/ThalesGSN/SecretSanta/internal/infra/logger"
	"github.com/ThalesGSN/SecretSanta/internal/infra/randomorg"
	"github.com/ThalesGSN/SecretSanta/internal/infra/smtpmailer"
	"github.com/ThalesGSN/SecretSanta/internal/ports"
	"github.com/ThalesGSN/SecretSanta/internal/usecase"
)

type runFlags struct {
	configPath       string
	participantsFile string
	templateFile     string
	apiKey           string
	eventDate        string
	expectedValue    string
	place            string
	organizerEmail   string
	smtpHost         string
	smtpPort         int
	smtpUser         string
	allowFallback    bool
	dryRun           bool
	yes              bool
}

func runCmd(debug *bool) *cobra.Command {
	var flags runFlags

	c := &cobra.Command{
		Use:   "run",
		Short: "Draw the Secret Santa and send one email per participant",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cleanup, _ := logger.Setup(logger.Config{Root: ".", Debug: *debug})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, flags)

			if err := config.Validate(cfg, !flags.dryRun); err != nil {
				return err
			}

			roster, err := csvroster.NewLoader().LoadRoster(cfg.Paths.ParticipantsFile)
			if err != nil {
				return err
			}

			body, err := os.ReadFile(cfg.Paths.TemplateFile)
			if err != nil {
				return &domain.OpError{
					Op:   "cli.run",
					Kind: domain.KindNotFound,
					Path: cfg.Paths.TemplateFile,
					Err:  err,
				}
			}

			mailer, err := buildMailer(cfg, flags, len(roster))
			if err != nil {
				return err
			}
			if mailer == nil {
				fmt.Fprintln(os.Stdout, "Aborted.")
				return nil
			}

			source := randomorg.NewClient(cfg.Random.APIKey,
				randomorg.WithURL(cfg.Random.URL),
				randomorg.WithTimeout(cfg.Random.Timeout),
			)

			drawOpts := []usecase.DrawOption{
				usecase.WithMaxAttempts(cfg.Draw.MaxAttempts),
				usecase.WithLogger(logger.L()),
			}
			if cfg.Random.AllowLocalFallback {
				drawOpts = append(drawOpts, usecase.WithFallback(localrand.New()))
			}

			set, err := usecase.NewDraw(source, drawOpts...).Execute(cmd.Context(), roster)
			if err != nil {
				return err
			}

			uc := usecase.NewNotify(mailer, usecase.WithNotifyLogger(logger.L()))
			report, err := uc.Execute(cmd.Context(), set, cfg.Event, string(body))
			report.DryRun = flags.dryRun

			printReport(os.Stdout, report, len(roster))
			return err
		},
	}

	c.Flags().StringVar(&flags.configPath, "config", "santa.yaml", "Path to the santa.yaml config file")
	c.Flags().StringVar(&flags.participantsFile, "participants-file", "", "Path to the CSV file with participant names and emails")
	c.Flags().StringVar(&flags.templateFile, "template-file", "", "Path to the HTML email template")
	c.Flags().StringVar(&flags.apiKey, "api-key", "", "API key for random.org (or RANDOM_ORG_API_KEY)")
	c.Flags().StringVar(&flags.eventDate, "event-date", "", "Date of the event (or EVENT_DATE)")
	c.Flags().StringVar(&flags.expectedValue, "expected-value", "", "Suggested gift value (or EXPECTED_VALUE)")
	c.Flags().StringVar(&flags.place, "place", "", "Location of the event (or PLACE)")
	c.Flags().StringVar(&flags.organizerEmail, "organizer-email", "", "Organizer's email (or ORGANIZER_EMAIL)")
	c.Flags().StringVar(&flags.smtpHost, "smtp-host", "", "SMTP server host (or SMTP_HOST)")
	c.Flags().IntVar(&flags.smtpPort, "smtp-port", 0, "SMTP server port (or SMTP_PORT)")
	c.Flags().StringVar(&flags.smtpUser, "smtp-user", "", "Username for the SMTP server (or SMTP_USER)")
	c.Flags().BoolVar(&flags.allowFallback, "allow-local-fallback", false, "Fall back to the local PRNG if random.org is unreachable")
	c.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the emails to the console instead of sending them")
	c.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Skip the confirmation prompt before sending")

	return c
}

// applyFlags layers explicitly-set flags over the loaded config. Unset flags
// never clobber yaml or environment values.
func applyFlags(cmd *cobra.Command, cfg *domain.Config, flags runFlags) {
	if cmd.Flags().Changed("participants-file") {
		cfg.Paths.ParticipantsFile = flags.participantsFile
	}
	if cmd.Flags().Changed("template-file") {
		cfg.Paths.TemplateFile = flags.templateFile
	}
	if cmd.Flags().Changed("api-key") {
		cfg.Random.APIKey = flags.apiKey
	}
	if cmd.Flags().Changed("event-date") {
		cfg.Event.Date = flags.eventDate
	}
	if cmd.Flags().Changed("expected-value") {
		cfg.Event.ExpectedValue = flags.expectedValue
	}
	if cmd.Flags().Changed("place") {
		cfg.Event.Place = flags.place
	}
	if cmd.Flags().Changed("organizer-email") {
		cfg.Event.OrganizerEmail = flags.organizerEmail
	}
	if cmd.Flags().Changed("smtp-host") {
		cfg.SMTP.Host = flags.smtpHost
	}
	if cmd.Flags().Changed("smtp-port") {
		cfg.SMTP.Port = flags.smtpPort
	}
	if cmd.Flags().Changed("smtp-user") {
		cfg.SMTP.User = flags.smtpUser
	}
	if cmd.Flags().Changed("allow-local-fallback") {
		cfg.Random.AllowLocalFallback = flags.allowFallback
	}
}

// buildMailer picks the delivery sink. For live runs it confirms, then
// prompts for the SMTP password; the password goes straight into the mailer
// and nowhere else. A nil mailer with nil error means the operator aborted.
func buildMailer(cfg domain.Config, flags runFlags, participants int) (ports.Mailer, error) {
	if flags.dryRun {
		return consolemailer.New(os.Stdout), nil
	}

	if !flags.yes {
		ok, err := confirmSend(participants)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}

	password, err := promptPassword(cfg.SMTP.User)
	if err != nil {
		return nil, err
	}

	return smtpmailer.New(cfg.SMTP, password)
}

func confirmSend(participants int) (bool, error) {
	var ok bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Send %d emails?", participants),
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func promptPassword(user string) (string, error) {
	var password string
	prompt := &survey.Password{
		Message: fmt.Sprintf("SMTP password for %s:", user),
	}
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return password, nil
}

func printReport(w io.Writer, report domain.DispatchReport, participants int) {
	mode := "sent"
	if report.DryRun {
		mode = "printed"
	}

	fmt.Fprintf(w, "Participants: %d\n", participants)
	fmt.Fprintf(w, "Notifications %s: %d/%d\n", mode, report.SentCount(), participants)

	for _, d := range report.Deliveries {
		if d.Sent {
			fmt.Fprintf(w, "- [OK]   %s (%s)\n", d.Giver.Name, d.Giver.Email)
		} else {
			fmt.Fprintf(w, "- [FAIL] %s (%s): %s\n", d.Giver.Name, d.Giver.Email, d.Err)
		}
	}

	if report.SentCount() == participants && participants > 0 {
		if report.DryRun {
			fmt.Fprintln(w, "\nDry run complete. No emails were sent.")
		} else {
			fmt.Fprintln(w, "\nAssignment complete! All emails sent successfully.")
		}
	}
}
