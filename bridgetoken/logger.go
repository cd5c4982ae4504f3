package bridgetoken

import (
	"log/slog"
	"time"
)

// IssuanceEvent represents a structured log entry for one issuance attempt
type IssuanceEvent struct {
	EventType     string    // "issued" or "failed"
	Timestamp     time.Time // Event timestamp
	RequestID     string    // Correlation ID
	Subject       string    // Client identifier
	Role          string    // Requested role
	Algorithm     string    // Always HS256 today
	FailureReason string    // Error code (on failure)
	TokenPreview  string    // Redacted token preview
	ExpiresAt     time.Time // Zero on failure
}

// LogValue implements slog.LogValuer for structured logging with redaction
func (e IssuanceEvent) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("event", e.EventType),
		slog.Time("timestamp", e.Timestamp),
		slog.String("request_id", e.RequestID),
		slog.String("sub", e.Subject),
		slog.String("role", e.Role),
		slog.String("algorithm", e.Algorithm),
	}
	if e.FailureReason != "" {
		attrs = append(attrs, slog.String("failure_reason", e.FailureReason))
	} else {
		attrs = append(attrs,
			slog.String("token", redactToken(e.TokenPreview)),
			slog.Time("expires_at", e.ExpiresAt),
		)
	}
	return slog.GroupValue(attrs...)
}

// redactToken keeps only the first 8 characters of a token
func redactToken(token string) string {
	if len(token) == 0 {
		return ""
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:8] + "..."
}

// logIssuanceEvent emits an issuance event via the configured logger
func logIssuanceEvent(logger *slog.Logger, event IssuanceEvent) {
	if logger == nil {
		return // Logging disabled
	}

	if event.EventType == "failed" {
		logger.Warn("token issuance failed", "issuance", event)
	} else {
		logger.Info("token issued", "issuance", event)
	}
}
