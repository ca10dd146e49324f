package audit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tunelink/auth-service/internal/logger"
)

// Logger is the write-only audit sink. Every entry carries audit=true so
// the persistent log stream can be filtered out of the regular app log.
type Logger struct {
	log zerolog.Logger
}

// New creates a new audit logger
func New(log zerolog.Logger) *Logger {
	return &Logger{
		log: log.With().Bool("audit", true).Logger(),
	}
}

// Request logs one entry per handled HTTP request: method, url, status
// and a short outcome message. Internal error detail lands here, never
// in the response body.
func (l *Logger) Request(ctx context.Context, method, url string, status int, message string) {
	evt := l.log.Info()
	if status >= 400 {
		evt = l.log.Warn()
	}
	evt.
		Str("method", method).
		Str("url", url).
		Int("status", status).
		Str("message", message).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Msg("http_request")
}

// LoginSuccess logs a successful login
func (l *Logger) LoginSuccess(ctx context.Context, email string) {
	l.log.Info().
		Str("action", "login_success").
		Str("email", maskEmail(email)).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Msg("User logged in successfully")
}

// LoginFailed logs a failed login attempt. The reason recorded here is
// the only place wrong-password and unknown-email are distinguishable.
func (l *Logger) LoginFailed(ctx context.Context, email, reason string) {
	l.log.Warn().
		Str("action", "login_failed").
		Str("email", maskEmail(email)).
		Str("reason", reason).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Msg("Login attempt failed")
}

// Registered logs a new user registration
func (l *Logger) Registered(ctx context.Context, email string) {
	l.log.Info().
		Str("action", "user_registered").
		Str("email", maskEmail(email)).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Msg("New user registered")
}

// Logout logs a user logout
func (l *Logger) Logout(ctx context.Context, email string) {
	l.log.Info().
		Str("action", "logout").
		Str("email", maskEmail(email)).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Msg("User logged out")
}

// VerificationSent logs a dispatched verification email
func (l *Logger) VerificationSent(ctx context.Context, email string) {
	l.log.Info().
		Str("action", "verification_sent").
		Str("email", maskEmail(email)).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Msg("Verification email sent")
}

// EmailVerified logs a completed email verification
func (l *Logger) EmailVerified(ctx context.Context, email string) {
	l.log.Info().
		Str("action", "email_verified").
		Str("email", maskEmail(email)).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Msg("Email verified")
}

// PreferenceUpdated logs a music platform preference change
func (l *Logger) PreferenceUpdated(ctx context.Context, email, platform string) {
	l.log.Info().
		Str("action", "preference_updated").
		Str("email", maskEmail(email)).
		Str("platform", platform).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Msg("Music platform preference updated")
}

// RegistrationRejected logs a registration refused for an undeliverable
// or malformed email address.
func (l *Logger) RegistrationRejected(ctx context.Context, email string) {
	l.log.Warn().
		Str("action", "register_invalid_email").
		Str("email", maskEmail(email)).
		Str("request_id", logger.RequestIDFromContext(ctx)).
		Msg("Registration rejected, email not deliverable")
}

// maskEmail partially masks email for privacy in logs
func maskEmail(email string) string {
	if len(email) < 5 {
		return "***"
	}
	at := 0
	for i, c := range email {
		if c == '@' {
			at = i
			break
		}
	}
	if at < 2 {
		return email[:1] + "***" + email[at:]
	}
	return email[:2] + "***" + email[at:]
}
