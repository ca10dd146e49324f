package auth

import (
	"context"
	"time"

	"github.com/tunelink/auth-service/internal/domain"
)

// Service is the auth flow controller: it orchestrates the credential
// store, hasher, token codecs, email validator and mail sender into the
// register/login/verify/settings operations. It is the only component
// that mutates the verified flag or the platform preference.
type Service struct {
	users  UserRepo
	hasher PasswordHasher

	// Two independent secret/lifetime pairs. Session tokens and
	// verification tokens must not be interchangeable.
	sessionTokens TokenCodec
	verifyTokens  TokenCodec

	emails EmailValidator
	mailer MailSender

	sessionTTL time.Duration
	verifyTTL  time.Duration

	// verifyLinkBase is the prefix the verification token is appended to,
	// e.g. https://host/users/verify_email/
	verifyLinkBase string

	audit func(ctx context.Context, action string, fields map[string]string)
}

type Config struct {
	SessionTTL     time.Duration
	VerifyTTL      time.Duration
	VerifyLinkBase string
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	sessionTokens TokenCodec,
	verifyTokens TokenCodec,
	emails EmailValidator,
	mailer MailSender,
	cfg Config,
) *Service {
	sessionTTL := cfg.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = time.Hour
	}
	verifyTTL := cfg.VerifyTTL
	if verifyTTL <= 0 {
		verifyTTL = 24 * time.Hour
	}
	return &Service{
		users:         users,
		hasher:        hasher,
		sessionTokens: sessionTokens,
		verifyTokens:  verifyTokens,
		emails:        emails,
		mailer:        mailer,

		sessionTTL:     sessionTTL,
		verifyTTL:      verifyTTL,
		verifyLinkBase: cfg.VerifyLinkBase,

		audit: func(context.Context, string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(ctx context.Context, action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// ensureAnonymous is the register/login precondition: a presented,
// still-valid session token fails the operation with AlreadyLoggedIn.
// An absent or unverifiable token passes; the transport layer clears
// the stale cookie.
func (s *Service) ensureAnonymous(sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if _, err := s.sessionTokens.Verify(sessionToken); err == nil {
		return domain.ErrAlreadyLoggedIn()
	}
	return nil
}
