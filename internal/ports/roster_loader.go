package ports

import "github.com/ThalesGSN/SecretSanta/internal/domain"

// RosterLoader loads participants from a source (e.g., a CSV file).
type RosterLoader interface {
	LoadRoster(path string) (domain.Roster, error)
}
