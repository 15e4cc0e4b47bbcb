package csvroster

import (
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
	"github.com/ThalesGSN/SecretSanta/internal/ports"
)

// Loader reads the participant roster from a CSV file with Name,Email
// headers (the format the original tool shipped with).
type Loader struct{}

var _ ports.RosterLoader = (*Loader)(nil)

func NewLoader() *Loader {
	return &Loader{}
}

type csvRow struct {
	Name  string `csv:"Name"`
	Email string `csv:"Email"`
}

// LoadRoster parses and validates the roster. Duplicate emails and blank
// fields are rejected here, before any network call; the draw re-checks
// identity uniqueness defensively.
func (l *Loader) LoadRoster(path string) (domain.Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "csvroster.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var rows []csvRow
	if err := gocsv.UnmarshalBytes(b, &rows); err != nil {
		return nil, &domain.OpError{
			Op:   "csvroster.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	roster := make(domain.Roster, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.Name) == "" || strings.TrimSpace(row.Email) == "" {
			// Row 1 is the header line.
			return nil, &domain.OpError{
				Op:   "csvroster.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("row %d: Name and Email are required", i+2),
			}
		}
		roster = append(roster, domain.Participant{
			Name:  strings.TrimSpace(row.Name),
			Email: strings.TrimSpace(row.Email),
		})
	}

	if err := roster.Validate(); err != nil {
		return nil, err
	}
	return roster, nil
}
