package domain

import (
	"fmt"
	"strings"
)

// EventDetails carries the facts the notification template needs about the
// exchange itself. All fields are required before a live run.
type EventDetails struct {
	Date           string
	ExpectedValue  string
	Place          string
	OrganizerEmail string
}

// Vars is the variable set handed to the template renderer.
type Vars map[string]string

// Template variable names understood by the bundled email template.
const (
	VarParticipantName = "PARTICIPANT_NAME"
	VarDrawName        = "DRAW_NAME"
	VarEventDate       = "EVENT_DATE"
	VarExpectedValue   = "EXPECTED_VALUE"
	VarPlace           = "PLACE"
	VarOrganizerEmail  = "EMAIL_ORGANIZER"
)

// TemplateVars builds the renderer variable set for one assignment.
func (e EventDetails) TemplateVars(a Assignment) Vars {
	return Vars{
		VarParticipantName: a.Giver.Name,
		VarDrawName:        a.Recipient.Name,
		VarEventDate:       e.Date,
		VarExpectedValue:   e.ExpectedValue,
		VarPlace:           e.Place,
		VarOrganizerEmail:  e.OrganizerEmail,
	}
}

// Message is one rendered notification, ready for a Mailer.
type Message struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
}

// Delivery records the outcome for a single giver.
type Delivery struct {
	Giver Participant
	Sent  bool
	Err   string
}

// DispatchReport summarizes a notification run. Recipients are deliberately
// absent: the report may be printed and must not leak who drew whom.
type DispatchReport struct {
	Deliveries []Delivery
	DryRun     bool
}

// SentCount returns how many messages were delivered.
func (r DispatchReport) SentCount() int {
	n := 0
	for _, d := range r.Deliveries {
		if d.Sent {
			n++
		}
	}
	return n
}

// MissingEventFields lists required event fields that are still blank,
// using their config key names so callers can report them verbatim.
func (e EventDetails) MissingEventFields() []string {
	var missing []string
	if strings.TrimSpace(e.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(e.ExpectedValue) == "" {
		missing = append(missing, "expected_value")
	}
	if strings.TrimSpace(e.Place) == "" {
		missing = append(missing, "place")
	}
	if strings.TrimSpace(e.OrganizerEmail) == "" {
		missing = append(missing, "organizer_email")
	}
	return missing
}

// Validate fails with every missing field listed at once.
func (e EventDetails) Validate() error {
	missing := e.MissingEventFields()
	if len(missing) == 0 {
		return nil
	}
	return &OpError{
		Op:   "event.validate",
		Kind: KindInvalidConfig,
		Err:  fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", ")),
	}
}
