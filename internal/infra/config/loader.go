package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
)

// envOverrides keeps the environment variable names of the original tool.
type envOverrides struct {
	APIKey         string `env:"RANDOM_ORG_API_KEY"`
	EventDate      string `env:"EVENT_DATE"`
	ExpectedValue  string `env:"EXPECTED_VALUE"`
	Place          string `env:"PLACE"`
	OrganizerEmail string `env:"ORGANIZER_EMAIL"`
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       int    `env:"SMTP_PORT"`
	SMTPUser       string `env:"SMTP_USER"`
}

// Load resolves configuration in layers: defaults, then santa.yaml (if the
// file exists), then .env, then the process environment. Flags are applied
// on top by the CLI.
func Load(path string) (domain.Config, error) {
	// A .env next to the tool populates the environment before env.Parse
	// reads it; a missing file is not an error.
	_ = godotenv.Load()

	yc := yamlConfig{}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &yc); err != nil {
			return domain.Config{}, &domain.OpError{
				Op:   "config.load",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  err,
			}
		}
	case os.IsNotExist(err):
		// Optional file; defaults plus environment cover everything.
	default:
		return domain.Config{}, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	cfg, err := mapConfig(yc)
	if err != nil {
		return domain.Config{}, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return domain.Config{}, &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("parse env vars: %w", err),
		}
	}
	applyEnv(&cfg, ov)

	return cfg, nil
}

func applyEnv(cfg *domain.Config, ov envOverrides) {
	if ov.APIKey != "" {
		cfg.Random.APIKey = ov.APIKey
	}
	if ov.EventDate != "" {
		cfg.Event.Date = ov.EventDate
	}
	if ov.ExpectedValue != "" {
		cfg.Event.ExpectedValue = ov.ExpectedValue
	}
	if ov.Place != "" {
		cfg.Event.Place = ov.Place
	}
	if ov.OrganizerEmail != "" {
		cfg.Event.OrganizerEmail = ov.OrganizerEmail
	}
	if ov.SMTPHost != "" {
		cfg.SMTP.Host = ov.SMTPHost
	}
	if ov.SMTPPort > 0 {
		cfg.SMTP.Port = ov.SMTPPort
	}
	if ov.SMTPUser != "" {
		cfg.SMTP.User = ov.SMTPUser
	}
}

// Validate reports every missing required key at once. SMTP settings are
// only required for live delivery.
func Validate(cfg domain.Config, requireSMTP bool) error {
	var missing []string

	if strings.TrimSpace(cfg.Random.APIKey) == "" {
		missing = append(missing, "random.api_key (RANDOM_ORG_API_KEY)")
	}
	for _, f := range cfg.Event.MissingEventFields() {
		missing = append(missing, "event."+f)
	}
	if requireSMTP {
		if strings.TrimSpace(cfg.SMTP.Host) == "" {
			missing = append(missing, "smtp.host (SMTP_HOST)")
		}
		if strings.TrimSpace(cfg.SMTP.User) == "" {
			missing = append(missing, "smtp.user (SMTP_USER)")
		}
	}

	if len(missing) == 0 {
		return nil
	}
	return &domain.OpError{
		Op:   "config.validate",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%w: missing %s", domain.ErrInvalidConfig, strings.Join(missing, ", ")),
	}
}
