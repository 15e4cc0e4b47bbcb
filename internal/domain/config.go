package domain

import "time"

// Config represents the resolved santa configuration: defaults, then
// santa.yaml, then environment, then flags.
type Config struct {
	Random RandomConfig
	SMTP   SMTPConfig
	Event  EventDetails
	Paths  PathsConfig
	Draw   DrawConfig
}

type RandomConfig struct {
	APIKey  string
	URL     string
	Timeout time.Duration

	// AllowLocalFallback opts in to a local PRNG permutation when random.org
	// is unreachable. This trades the provider's true-randomness guarantee
	// for availability, so it is off unless asked for.
	AllowLocalFallback bool
}

type SMTPConfig struct {
	Host string
	Port int
	User string
}

type PathsConfig struct {
	ParticipantsFile string
	TemplateFile     string
}

type DrawConfig struct {
	// MaxAttempts bounds the re-draw loop. Random permutations are
	// fixed-point-free with probability ~1/e, so 10 attempts fail with
	// probability well under 1e-4.
	MaxAttempts int
}

// DefaultConfig provides sane defaults if santa.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Random: RandomConfig{
			URL:     "https://api.random.org/json-rpc/4/invoke",
			Timeout: 15 * time.Second,
		},
		SMTP: SMTPConfig{
			Port: 587,
		},
		Paths: PathsConfig{
			ParticipantsFile: "participants.csv",
			TemplateFile:     "email-template.html",
		},
		Draw: DrawConfig{
			MaxAttempts: 10,
		},
	}
}
