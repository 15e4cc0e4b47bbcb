package consolemailer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ThalesGSN/SecretSanta/internal/domain"
)

func TestSendPrintsMessage(t *testing.T) {
	var buf bytes.Buffer
	m := New(&buf)

	err := m.Send(context.Background(), domain.Message{
		To:       "ana@example.com",
		ToName:   "Ana",
		Subject:  "Você tem um Amigo Secreto!",
		HTMLBody: "<p>Olá Ana, você tirou Bruno!</p>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ana@example.com") {
		t.Fatalf("expected recipient in output, got %q", out)
	}
	if !strings.Contains(out, "DRY RUN") {
		t.Fatalf("expected dry run marker, got %q", out)
	}
	if !strings.Contains(out, "você tirou Bruno") {
		t.Fatalf("expected body in output, got %q", out)
	}
}
