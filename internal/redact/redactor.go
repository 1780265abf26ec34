// Package redact masks secrets in log output and tool results. It covers
// two paths: known API-key formats matched by regex, and literal values
// registered at runtime (e.g. keys read from config).
package redact

import (
	"regexp"
	"strings"
	"sync"
)

// Placeholder replaces redacted secret values.
const Placeholder = "***REDACTED***"

// secretKeyPattern matches variable or map keys that likely hold secrets.
var secretKeyPattern = regexp.MustCompile(`(?i)(secret|token|passwd|password|key|credential|auth)`)

// keyFormatPatterns match common API key and token formats on sight.
var keyFormatPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-ant-[a-zA-Z0-9\-]{20,}`),
	regexp.MustCompile(`sk-[a-zA-Z0-9]{20,}`),
	regexp.MustCompile(`(ghp_|gho_|ghs_|github_pat_)[a-zA-Z0-9_]{20,}`),
	regexp.MustCompile(`AKIA[A-Z0-9]{16}`),
	regexp.MustCompile(`xox[bp]-[0-9]+-[a-zA-Z0-9\-]+`),
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._\-]{20,}`),
}

// SecretKey reports whether a key name suggests its value is a secret.
// Used by the env_vars tool to mask values regardless of their format.
func SecretKey(name string) bool {
	return secretKeyPattern.MatchString(name)
}

// Redactor replaces secret values in strings with Placeholder.
// Safe for concurrent use.
type Redactor struct {
	mu       sync.RWMutex
	literals []string
}

// NewRedactor creates a Redactor with the default format patterns active
// and no literal values.
func NewRedactor() *Redactor {
	return &Redactor{}
}

// AddLiteral registers a literal secret value to redact on sight.
// Empty strings are ignored.
func (r *Redactor) AddLiteral(secret string) {
	if secret == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.literals = append(r.literals, secret)
}

// Redact replaces all known key formats and registered literal values in s.
func (r *Redactor) Redact(s string) string {
	if s == "" {
		return s
	}

	for _, p := range keyFormatPatterns {
		s = p.ReplaceAllString(s, Placeholder)
	}

	r.mu.RLock()
	literals := r.literals
	r.mu.RUnlock()

	for _, lit := range literals {
		if strings.Contains(s, lit) {
			s = strings.ReplaceAll(s, lit, Placeholder)
		}
	}

	return s
}
