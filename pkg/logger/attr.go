package logger

import (
	"log/slog"
	"strings"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the subsystem emitting the record under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// SessionID records a session identifier under the key "session_id".
// Only a short prefix is logged; full tokens never reach log output.
func SessionID(token string) slog.Attr {
	if token == "" {
		return slog.Attr{}
	}
	if len(token) > 8 {
		token = token[:8]
	}
	return slog.String("session_id", token+"…")
}

// Email records an email address under the key "email" with the local
// part masked, so log aggregation never holds raw identifiers.
func Email(email string) slog.Attr {
	if email == "" {
		return slog.Attr{}
	}
	return slog.String("email", maskEmail(email))
}

func maskEmail(email string) string {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at+1:]
	if len(local) == 1 {
		return "*@" + domain
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
}
