package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"retrieval-agent/internal/application/port/output"
)

const Redacted = "[REDACTED]"

var _ output.LoggerPort = (*RedactingLogger)(nil)

// RedactingLogger replaces known secret values in messages and argument
// values before they reach the underlying logger.
type RedactingLogger struct {
	base    output.LoggerPort
	secrets []string
}

// Redacting wraps base so that none of secrets is ever written, neither raw
// nor in the escaped forms a JSON encoder produces for them. Empty values are
// ignored. Wrapping a RedactingLogger merges the secret sets.
func Redacting(base output.LoggerPort, secrets ...string) *RedactingLogger {
	seen := make(map[string]struct{})
	var known []string
	add := func(s string) {
		if _, ok := seen[s]; ok || s == "" {
			return
		}
		seen[s] = struct{}{}
		known = append(known, s)
	}

	if r, ok := base.(*RedactingLogger); ok {
		base = r.base
		for _, s := range r.secrets {
			add(s)
		}
	}
	for _, s := range secrets {
		if s == "" {
			continue
		}
		for _, form := range escapedForms(s) {
			add(form)
		}
	}

	// Longest first: a shorter form may be a substring of a longer one.
	sort.SliceStable(known, func(i, j int) bool { return len(known[i]) > len(known[j]) })
	return &RedactingLogger{base: base, secrets: known}
}

// escapedForms returns s together with its JSON string escapes: with and
// without HTML escaping, with every non-ASCII rune as \uXXXX, and once more
// escaped for JSON embedded in a JSON string.
func escapedForms(s string) []string {
	plain := jsonEscape(s, false)
	return []string{
		s,
		jsonEscape(s, true),
		plain,
		asciiEscape(plain),
		jsonEscape(plain, false),
	}
}

func jsonEscape(s string, escapeHTML bool) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(escapeHTML)
	if err := enc.Encode(s); err != nil {
		return s
	}
	out := strings.TrimSuffix(buf.String(), "\n")
	return out[1 : len(out)-1]
}

func asciiEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&b, "\\u%04x\\u%04x", r1, r2)
		default:
			fmt.Fprintf(&b, "\\u%04x", r)
		}
	}
	return b.String()
}

func (r *RedactingLogger) Debug(msg string, args ...any) {
	r.base.Debug(r.scrub(msg), r.scrubArgs(args)...)
}

func (r *RedactingLogger) Info(msg string, args ...any) {
	r.base.Info(r.scrub(msg), r.scrubArgs(args)...)
}

func (r *RedactingLogger) Warn(msg string, args ...any) {
	r.base.Warn(r.scrub(msg), r.scrubArgs(args)...)
}

func (r *RedactingLogger) Error(msg string, args ...any) {
	r.base.Error(r.scrub(msg), r.scrubArgs(args)...)
}

func (r *RedactingLogger) WithField(key string, value any) output.LoggerPort {
	return &RedactingLogger{base: r.base.WithField(key, r.scrubValue(value)), secrets: r.secrets}
}

func (r *RedactingLogger) WithFields(fields map[string]any) output.LoggerPort {
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		clean[k] = r.scrubValue(v)
	}
	return &RedactingLogger{base: r.base.WithFields(clean), secrets: r.secrets}
}

func (r *RedactingLogger) Close() error {
	return r.base.Close()
}

// Scrub exposes the redaction for callers that build log text themselves.
func (r *RedactingLogger) Scrub(s string) string {
	return r.scrub(s)
}

func (r *RedactingLogger) scrub(s string) string {
	for _, secret := range r.secrets {
		s = strings.ReplaceAll(s, secret, Redacted)
	}
	return s
}

func (r *RedactingLogger) scrubArgs(args []any) []any {
	if len(r.secrets) == 0 {
		return args
	}
	out := make([]any, len(args))
	for i, a := range args {
		// keys are positional and never secret
		if i%2 == 0 {
			out[i] = a
			continue
		}
		out[i] = r.scrubValue(a)
	}
	return out
}

func (r *RedactingLogger) scrubValue(v any) any {
	if len(r.secrets) == 0 || v == nil {
		return v
	}
	switch val := v.(type) {
	case string:
		return r.scrub(val)
	case []byte:
		return r.scrub(string(val))
	case error:
		msg := val.Error()
		if clean := r.scrub(msg); clean != msg {
			return errors.New(clean)
		}
		return val
	case int, int64, float64, bool:
		return val
	default:
		s := fmt.Sprintf("%+v", val)
		if clean := r.scrub(s); clean != s {
			return clean
		}
		return val
	}
}
