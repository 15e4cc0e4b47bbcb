package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
)

// --- applyFlags ---

func TestApplyFlagsOnlyTouchesChangedFlags(t *testing.T) {
	var debug bool
	cmd := runCmd(&debug)
	if err := cmd.Flags().Set("api-key", "from-flag"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("smtp-port", "2525"); err != nil {
		t.Fatal(err)
	}

	cfg := domain.DefaultConfig()
	cfg.Random.APIKey = "from-env"
	cfg.SMTP.Host = "env.example.com"

	applyFlags(cmd, &cfg, runFlags{apiKey: "from-flag", smtpPort: 2525, smtpHost: ""})

	if cfg.Random.APIKey != "from-flag" {
		t.Errorf("expected flag to win, got %q", cfg.Random.APIKey)
	}
	if cfg.SMTP.Port != 2525 {
		t.Errorf("expected flag port, got %d", cfg.SMTP.Port)
	}
	if cfg.SMTP.Host != "env.example.com" {
		t.Errorf("expected unset flag to leave host alone, got %q", cfg.SMTP.Host)
	}
}

func TestApplyFlagsFallbackOptIn(t *testing.T) {
	var debug bool
	cmd := runCmd(&debug)
	if err := cmd.Flags().Set("allow-local-fallback", "true"); err != nil {
		t.Fatal(err)
	}

	cfg := domain.DefaultConfig()
	applyFlags(cmd, &cfg, runFlags{allowFallback: true})

	if !cfg.Random.AllowLocalFallback {
		t.Error("expected fallback enabled by flag")
	}
}

// --- printReport ---

func TestPrintReportAllSent(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, domain.DispatchReport{
		Deliveries: []domain.Delivery{
			{Giver: domain.Participant{Name: "Ana", Email: "ana@example.com"}, Sent: true},
			{Giver: domain.Participant{Name: "Bruno", Email: "bruno@example.com"}, Sent: true},
		},
	}, 2)

	out := buf.String()
	if !strings.Contains(out, "2/2") {
		t.Errorf("expected full count, got:\n%s", out)
	}
	if !strings.Contains(out, "All emails sent successfully") {
		t.Errorf("expected success line, got:\n%s", out)
	}
}

func TestPrintReportPartialFailure(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, domain.DispatchReport{
		Deliveries: []domain.Delivery{
			{Giver: domain.Participant{Name: "Ana", Email: "ana@example.com"}, Sent: true},
			{Giver: domain.Participant{Name: "Bruno", Email: "bruno@example.com"}, Err: "connection reset"},
		},
	}, 3)

	out := buf.String()
	if !strings.Contains(out, "1/3") {
		t.Errorf("expected partial count, got:\n%s", out)
	}
	if !strings.Contains(out, "[FAIL] Bruno") {
		t.Errorf("expected failure line, got:\n%s", out)
	}
	if strings.Contains(out, "All emails sent successfully") {
		t.Errorf("expected no success line, got:\n%s", out)
	}
}

func TestPrintReportDryRun(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, domain.DispatchReport{
		DryRun: true,
		Deliveries: []domain.Delivery{
			{Giver: domain.Participant{Name: "Ana", Email: "ana@example.com"}, Sent: true},
		},
	}, 1)

	out := buf.String()
	if !strings.Contains(out, "printed") {
		t.Errorf("expected dry-run wording, got:\n%s", out)
	}
	if !strings.Contains(out, "No emails were sent") {
		t.Errorf("expected dry-run closing line, got:\n%s", out)
	}
}

// --- command wiring ---

func TestRootCmdHasSubcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"run", "init", "version"} {
		found := false
		for _, c := range root.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q subcommand", name)
		}
	}
}

func TestRunCmdDefaults(t *testing.T) {
	var debug bool
	cmd := runCmd(&debug)

	if got := cmd.Flags().Lookup("config").DefValue; got != "santa.yaml" {
		t.Errorf("expected santa.yaml default, got %q", got)
	}
	if got := cmd.Flags().Lookup("dry-run").DefValue; got != "false" {
		t.Errorf("expected dry-run off by default, got %q", got)
	}
}
