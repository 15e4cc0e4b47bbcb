package domain

import (
	"fmt"
	"strings"
)

// Participant is one person in the exchange. Email doubles as identity and
// must be unique within a roster.
type Participant struct {
	Name  string
	Email string
}

// Identity returns the value participants are deduplicated and matched on.
// Emails are compared case-insensitively, per RFC 5321 common practice.
func (p Participant) Identity() string {
	return strings.ToLower(strings.TrimSpace(p.Email))
}

// Roster is the ordered list of participants for a single draw.
type Roster []Participant

// Validate checks the preconditions for a draw: at least two participants,
// no blank names or emails, and no duplicate identities. A roster of zero or
// one cannot be deranged.
func (r Roster) Validate() error {
	if len(r) < 2 {
		return &OpError{
			Op:   "roster.validate",
			Kind: KindInsufficientParticipants,
			Err:  fmt.Errorf("%w: got %d, need at least 2", ErrInsufficientParticipants, len(r)),
		}
	}

	seen := make(map[string]int, len(r))
	for i, p := range r {
		if strings.TrimSpace(p.Name) == "" {
			return &OpError{
				Op:   "roster.validate",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("participant %d: name is required", i),
			}
		}
		id := p.Identity()
		if id == "" {
			return &OpError{
				Op:   "roster.validate",
				Kind: KindInvalidConfig,
				Err:  fmt.Errorf("participant %d (%s): email is required", i, p.Name),
			}
		}
		if prev, ok := seen[id]; ok {
			return &OpError{
				Op:   "roster.validate",
				Kind: KindDuplicateParticipant,
				Err:  fmt.Errorf("%w: %s appears at positions %d and %d", ErrDuplicateParticipant, id, prev, i),
			}
		}
		seen[id] = i
	}
	return nil
}
