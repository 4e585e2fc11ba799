// Footfall - Visit Analytics Ingestion and Review
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/footfall

package logging

import (
	"github.com/rs/zerolog"
)

// SecurityEvent represents a security-relevant event for audit logging.
type SecurityEvent struct {
	// Event is the type of event (login_success, login_failed, logout).
	Event     string
	Username  string
	SessionID string
	// Mode is the carrier type (session or token).
	Mode      string
	IPAddress string
	UserAgent string
	Success   bool
}

// SecurityLogger writes authentication audit events with sensitive
// values masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger creates a security logger with a custom zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogEvent logs a security event.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	if !event.Success {
		e = l.logger.Warn()
	}
	e = e.Str("event", event.Event)

	if event.Success {
		e = e.Str("status", "success")
	} else {
		e = e.Str("status", "failed")
	}
	if event.Username != "" {
		e = e.Str("username", SanitizeUsername(event.Username))
	}
	if event.SessionID != "" {
		e = e.Str("session_id", SanitizeSessionID(event.SessionID))
	}
	if event.Mode != "" {
		e = e.Str("mode", event.Mode)
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.UserAgent != "" {
		e = e.Str("user_agent", truncateString(event.UserAgent, 100))
	}

	e.Msg("security event")
}

// LogLoginSuccess logs a successful login.
func (l *SecurityLogger) LogLoginSuccess(username, mode, ip, userAgent string) {
	l.LogEvent(&SecurityEvent{
		Event:     "login_success",
		Username:  username,
		Mode:      mode,
		IPAddress: ip,
		UserAgent: userAgent,
		Success:   true,
	})
}

// LogLoginFailure logs a failed login. The reason is never recorded so the
// log cannot be used to tell a wrong username from a wrong password.
func (l *SecurityLogger) LogLoginFailure(username, mode, ip, userAgent string) {
	l.LogEvent(&SecurityEvent{
		Event:     "login_failed",
		Username:  username,
		Mode:      mode,
		IPAddress: ip,
		UserAgent: userAgent,
		Success:   false,
	})
}

// LogLogout logs a logout.
func (l *SecurityLogger) LogLogout(username, sessionID, mode, ip string) {
	l.LogEvent(&SecurityEvent{
		Event:     "logout",
		Username:  username,
		SessionID: sessionID,
		Mode:      mode,
		IPAddress: ip,
		Success:   true,
	})
}

// SanitizeSessionID masks a session ID.
// Example: "abc123def456ghi789" -> "abc1...i789"
func SanitizeSessionID(sessionID string) string {
	if sessionID == "" {
		return ""
	}
	if len(sessionID) <= 12 {
		return "***"
	}
	return sessionID[:4] + "..." + sessionID[len(sessionID)-4:]
}

// SanitizeUsername masks a username, keeping first 2 characters.
// Example: "johndoe" -> "jo***"
func SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}
	if len(username) <= 2 {
		return "***"
	}
	return username[:2] + "***"
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
