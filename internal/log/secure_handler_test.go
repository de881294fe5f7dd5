package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"
)

// TestSecureHandlerMasksKeys tests masking by attribute key.
func TestSecureHandlerMasksKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		value    string
		wantMask bool
	}{
		{name: "authorization", key: "authorization", value: "Bearer abc", wantMask: true},
		{name: "uppercase key", key: "Authorization", value: "Token abc", wantMask: true},
		{name: "token", key: "token", value: "abc", wantMask: true},
		{name: "bearer value under plain key", key: "value", value: "Bearer abc.def", wantMask: true},
		{name: "phone number is kept", key: "reference", value: "0312345678", wantMask: false},
		{name: "url is kept", key: "url", value: "https://example.com/contact", wantMask: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, true)
			logger.Info("test", tt.key, tt.value)

			out := buf.String()
			masked := !strings.Contains(out, tt.value)
			if masked != tt.wantMask {
				t.Errorf("expected masked=%v, got output %q", tt.wantMask, out)
			}
		})
	}
}

// TestMaskCookie tests cookie masking.
func TestMaskCookie(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		expected string
	}{
		{in: "session=abc", expected: "session=***"},
		{in: "session=abc; lang=ja", expected: "session=***; lang=***"},
		{in: "opaque", expected: "***"},
		{in: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := MaskCookie(tt.in); got != tt.expected {
				t.Errorf("MaskCookie(%q) = %q, expected %q", tt.in, got, tt.expected)
			}
		})
	}
}

// TestSecureHandlerHeaders tests header map masking.
func TestSecureHandlerHeaders(t *testing.T) {
	t.Parallel()

	t.Run("map of headers", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewSecureLogger(&buf, true, WithJSON())
		logger.Debug("request", "headers", map[string]string{
			"Authorization":   "Basic dXNlcjpwYXNz",
			"Accept-Language": "ja",
			"Cookie":          "sid=1",
		})

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		headers, ok := entry["headers"].(map[string]any)
		if !ok {
			t.Fatalf("expected headers group, got %T", entry["headers"])
		}
		if headers["Authorization"] != MaskValue {
			t.Errorf("expected masked authorization, got %v", headers["Authorization"])
		}
		if headers["Cookie"] != "sid=***" {
			t.Errorf("expected masked cookie, got %v", headers["Cookie"])
		}
		if headers["Accept-Language"] != "ja" {
			t.Errorf("expected plain header, got %v", headers["Accept-Language"])
		}
	})

	t.Run("http.Header", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		h.Set("X-Api-Key", "k-123")
		var buf bytes.Buffer
		NewSecureLogger(&buf, true).Debug("request", "header", h)

		if strings.Contains(buf.String(), "k-123") {
			t.Errorf("expected api key to be masked: %s", buf.String())
		}
	})
}

// TestSecureHandlerWithAttrs tests masking of logger-level attributes and groups.
func TestSecureHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, true).With("cookie", "session=abc")
	logger.WithGroup("site").Info("fetch", slog.Group("auth", "token", "xyz"))

	out := buf.String()
	if strings.Contains(out, "abc") || strings.Contains(out, "xyz") {
		t.Errorf("expected values to be masked: %s", out)
	}
	if !strings.Contains(out, "session=***") {
		t.Errorf("expected cookie name to be kept: %s", out)
	}
}

// TestNewSecureLoggerLevel tests the verbose switch.
func TestNewSecureLoggerLevel(t *testing.T) {
	t.Parallel()

	var quiet, verbose bytes.Buffer
	NewSecureLogger(&quiet, false).Debug("hidden")
	NewSecureLogger(&verbose, true).Debug("shown")

	if quiet.Len() != 0 {
		t.Errorf("expected no debug output, got %q", quiet.String())
	}
	if !strings.Contains(verbose.String(), "shown") {
		t.Errorf("expected debug output, got %q", verbose.String())
	}
}

// TestNewSecureHandlerNil tests the nil fallback.
func TestNewSecureHandlerNil(t *testing.T) {
	t.Parallel()

	if NewSecureHandler(nil).handler == nil {
		t.Error("expected default handler")
	}
}
