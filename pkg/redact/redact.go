// Package redact masks personal data and credentials before they reach
// log output. It is a global toggle so every component logs through the
// same policy without plumbing.
package redact

import (
	"regexp"
	"strings"
	"sync/atomic"
)

var enabled atomic.Bool

var (
	emailRe  = regexp.MustCompile(`(?i)[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`)
	phoneRe  = regexp.MustCompile(`\b\+?\d[\d\s\-]{7,}\d\b`)
	apiKeyRe = regexp.MustCompile(`\bsk-[A-Za-z0-9\-_]{8,}\b`)
)

// SetEnabled toggles redaction.
func SetEnabled(v bool) {
	enabled.Store(v)
}

// Enabled returns true when redaction is active.
func Enabled() bool {
	return enabled.Load()
}

// Text redacts emails, phone numbers and API keys when enabled.
func Text(in string) string {
	if !enabled.Load() || strings.TrimSpace(in) == "" {
		return in
	}
	out := emailRe.ReplaceAllString(in, "[REDACTED_EMAIL]")
	out = phoneRe.ReplaceAllString(out, "[REDACTED_PHONE]")
	out = apiKeyRe.ReplaceAllString(out, "[REDACTED_KEY]")
	return out
}

// Secret masks a credential unconditionally, keeping the last four
// characters for identification.
func Secret(in string) string {
	if len(in) <= 4 {
		return "****"
	}
	return "****" + in[len(in)-4:]
}
