package redact

import (
	"strings"
	"testing"
)

func TestTextDisabledByDefaultPassesThrough(t *testing.T) {
	SetEnabled(false)
	in := "mail me at luke@example.com"
	if got := Text(in); got != in {
		t.Fatalf("expected passthrough when disabled, got %q", got)
	}
}

func TestTextMasksWhenEnabled(t *testing.T) {
	SetEnabled(true)
	t.Cleanup(func() { SetEnabled(false) })

	got := Text("contact luke@example.com or +62 812-3456-7890 with key sk-abcdef1234567890")
	for _, want := range []string{"[REDACTED_EMAIL]", "[REDACTED_PHONE]", "[REDACTED_KEY]"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %s in %q", want, got)
		}
	}
}

func TestSecretKeepsTail(t *testing.T) {
	if got := Secret("sk-verysecret9876"); got != "****9876" {
		t.Fatalf("unexpected mask: %q", got)
	}
	if got := Secret("abc"); got != "****" {
		t.Fatalf("short secrets must be fully masked, got %q", got)
	}
}
