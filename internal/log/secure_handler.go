package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
)

// sensitiveKeys are attribute keys whose values are always masked.
// Keys are compared in lower case.
var sensitiveKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"api_key":             true,
	"apikey":              true,
	"password":            true,
	"passwd":              true,
	"secret":              true,
	"token":               true,
	"access_token":        true,
	"refresh_token":       true,
	"session_id":          true,
	"credentials":         true,
}

// sensitiveKeywords mask any key that contains them, e.g. "proxy_password".
var sensitiveKeywords = []string{"password", "passwd", "secret", "token", "credential", "private"}

// sensitivePatterns mask a whole string value.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	regexp.MustCompile(`(?i)-----BEGIN.*(PRIVATE|SECRET).*KEY-----`),
}

// urlUserinfo matches the user[:password]@ part of a URL anywhere in a
// string.
var urlUserinfo = regexp.MustCompile(`(?i)\b([a-z][a-z0-9+.-]*://)[^/\s@]+@`)

// MaskValue replaces redacted values.
const MaskValue = "***REDACTED***"

// DefaultMaxValueLength is the longest string value logged unchanged.
const DefaultMaxValueLength = 1024

// SecureHandler is a slog.Handler that sanitizes attributes before passing
// them on.
type SecureHandler struct {
	handler     slog.Handler
	maxValueLen int
}

// HandlerOption configures a SecureHandler.
type HandlerOption func(*SecureHandler)

// WithMaxValueLength sets the length above which string values are cut.
// Zero or less disables truncation.
func WithMaxValueLength(n int) HandlerOption {
	return func(h *SecureHandler) {
		h.maxValueLen = n
	}
}

// NewSecureHandler wraps handler. A nil handler wraps the default handler.
func NewSecureHandler(handler slog.Handler, opts ...HandlerOption) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &SecureHandler{handler: handler, maxValueLen: DefaultMaxValueLength}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled implements slog.Handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, h.sanitizeString(r.Message), r.PC)

	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.sanitizeAttr(a))
		return true
	})

	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs implements slog.Handler.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitizedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitizedAttrs[i] = h.sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitizedAttrs), maxValueLen: h.maxValueLen}
}

// WithGroup implements slog.Handler.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name), maxValueLen: h.maxValueLen}
}

func (h *SecureHandler) sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		sanitizedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			sanitizedAttrs[i] = h.sanitizeAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(sanitizedAttrs...)}
	}

	keyLower := strings.ToLower(a.Key)
	if sensitiveKeys[keyLower] || containsSensitiveKeyword(keyLower) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.sanitizeString(a.Value.String()))
	case slog.KindAny:
		// Errors and URLs carry request URLs in their text.
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, h.sanitizeString(err.Error()))
		}
		if s, ok := a.Value.Any().(interface{ String() string }); ok {
			return slog.String(a.Key, h.sanitizeString(s.String()))
		}
	}
	return a
}

func (h *SecureHandler) sanitizeString(s string) string {
	if isSensitiveValue(s) {
		return MaskValue
	}
	s = redactUserinfo(s)
	return truncate(s, h.maxValueLen)
}

func containsSensitiveKeyword(key string) bool {
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// redactUserinfo masks the credentials of every URL in s.
func redactUserinfo(s string) string {
	return urlUserinfo.ReplaceAllString(s, "${1}"+MaskValue+"@")
}

// truncate cuts s to at most n bytes on a rune boundary and notes how much
// was dropped.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "... (" + humanize.Bytes(uint64(len(s)-cut)) + " truncated)" //nolint:gosec // len is non-negative
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// NewSecureLogger creates a text logger writing to w. It logs warnings and
// errors, or everything from debug up when verbose is set.
func NewSecureLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSecureHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
