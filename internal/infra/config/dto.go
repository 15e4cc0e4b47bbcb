package config

import (
	"fmt"
	"time"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
)

type yamlConfig struct {
	Random yamlRandom `yaml:"random"`
	SMTP   yamlSMTP   `yaml:"smtp"`
	Event  yamlEvent  `yaml:"event"`
	Paths  yamlPaths  `yaml:"paths"`
	Draw   yamlDraw   `yaml:"draw"`
}

type yamlRandom struct {
	APIKey string `yaml:"api_key"`
	URL    string `yaml:"url"`
	// Timeout is a Go duration string ("15s"); yaml.v3 has no native
	// time.Duration decoding.
	Timeout            string `yaml:"timeout"`
	AllowLocalFallback bool   `yaml:"allow_local_fallback"`
}

type yamlSMTP struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
}

type yamlEvent struct {
	Date           string `yaml:"date"`
	ExpectedValue  string `yaml:"expected_value"`
	Place          string `yaml:"place"`
	OrganizerEmail string `yaml:"organizer_email"`
}

type yamlPaths struct {
	ParticipantsFile string `yaml:"participants_file"`
	TemplateFile     string `yaml:"template_file"`
}

type yamlDraw struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// mapConfig layers yaml values over the defaults, leaving untouched fields
// at their DefaultConfig values.
func mapConfig(yc yamlConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if yc.Random.APIKey != "" {
		cfg.Random.APIKey = yc.Random.APIKey
	}
	if yc.Random.URL != "" {
		cfg.Random.URL = yc.Random.URL
	}
	if yc.Random.Timeout != "" {
		d, err := time.ParseDuration(yc.Random.Timeout)
		if err != nil || d <= 0 {
			return domain.Config{}, fmt.Errorf("random.timeout: invalid duration %q", yc.Random.Timeout)
		}
		cfg.Random.Timeout = d
	}
	cfg.Random.AllowLocalFallback = yc.Random.AllowLocalFallback

	if yc.SMTP.Host != "" {
		cfg.SMTP.Host = yc.SMTP.Host
	}
	if yc.SMTP.Port > 0 {
		cfg.SMTP.Port = yc.SMTP.Port
	}
	if yc.SMTP.User != "" {
		cfg.SMTP.User = yc.SMTP.User
	}

	cfg.Event.Date = yc.Event.Date
	cfg.Event.ExpectedValue = yc.Event.ExpectedValue
	cfg.Event.Place = yc.Event.Place
	cfg.Event.OrganizerEmail = yc.Event.OrganizerEmail

	if yc.Paths.ParticipantsFile != "" {
		cfg.Paths.ParticipantsFile = yc.Paths.ParticipantsFile
	}
	if yc.Paths.TemplateFile != "" {
		cfg.Paths.TemplateFile = yc.Paths.TemplateFile
	}

	if yc.Draw.MaxAttempts > 0 {
		cfg.Draw.MaxAttempts = yc.Draw.MaxAttempts
	}

	return cfg, nil
}
