package log

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"
)

// MaskValue replaces a sensitive value.
const MaskValue = "***"

// sensitiveKeys are attribute keys and header names whose values are always masked.
var sensitiveKeys = map[string]bool{
	"authorization":       true,
	"proxy-authorization": true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"password":            true,
	"secret":              true,
	"token":               true,
	"api_key":             true,
	"access_token":        true,
	"session":             true,
	"session_id":          true,
}

// cookieKeys hold cookie strings. Cookie names are kept and values masked.
var cookieKeys = map[string]bool{
	"cookie":     true,
	"set-cookie": true,
}

// headerKeys hold header maps whose entries are checked one by one.
var headerKeys = map[string]bool{
	"headers": true,
	"header":  true,
}

// sensitivePatterns match values that are masked regardless of key.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
}

// SecureHandler wraps an slog.Handler and masks credentials in attributes
// before passing records on.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler creates a SecureHandler wrapping handler.
// A nil handler wraps slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates to the underlying handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(sanitizeAttr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the masked attributes added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	sanitized := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		sanitized[i] = sanitizeAttr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(sanitized)}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

func sanitizeAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	key := strings.ToLower(a.Key)

	switch {
	case a.Value.Kind() == slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			out[i] = sanitizeAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case sensitiveKeys[key]:
		return slog.String(a.Key, MaskValue)
	case cookieKeys[key]:
		return slog.String(a.Key, MaskCookie(a.Value.String()))
	case headerKeys[key] && a.Value.Kind() == slog.KindAny:
		if group, ok := headerGroup(a); ok {
			return group
		}
	case a.Value.Kind() == slog.KindString && isSensitiveValue(a.Value.String()):
		return slog.String(a.Key, MaskValue)
	}

	return a
}

// headerGroup turns a header map into a group with masked entries.
func headerGroup(a slog.Attr) (slog.Attr, bool) {
	values := make(map[string]string)
	switch v := a.Value.Any().(type) {
	case map[string]string:
		for k, val := range v {
			values[k] = val
		}
	case http.Header:
		for k := range v {
			values[k] = v.Get(k)
		}
	default:
		return a, false
	}

	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)

	attrs := make([]slog.Attr, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, sanitizeAttr(slog.String(name, values[name])))
	}
	return slog.Attr{Key: a.Key, Value: slog.GroupValue(attrs...)}, true
}

// MaskCookie masks every value of a cookie string and keeps the names.
func MaskCookie(cookie string) string {
	if strings.TrimSpace(cookie) == "" {
		return cookie
	}

	parts := strings.Split(cookie, ";")
	for i, p := range parts {
		name, _, found := strings.Cut(strings.TrimSpace(p), "=")
		if !found {
			parts[i] = MaskValue
			continue
		}
		parts[i] = name + "=" + MaskValue
	}
	return strings.Join(parts, "; ")
}

func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// LoggerOption configures NewSecureLogger.
type LoggerOption func(*loggerOptions)

type loggerOptions struct {
	json bool
}

// WithJSON selects the JSON handler instead of the text handler.
func WithJSON() LoggerOption {
	return func(o *loggerOptions) {
		o.json = true
	}
}

// NewSecureLogger creates a masking logger writing to w. The level is
// Debug when verbose is set and Warn otherwise.
func NewSecureLogger(w io.Writer, verbose bool, opts ...LoggerOption) *slog.Logger {
	o := &loggerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if o.json {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(NewSecureHandler(handler))
}
