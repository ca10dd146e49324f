package auth

import (
	"context"

	"github.com/tunelink/auth-service/internal/domain"
)

// RequestVerification issues a verification token for the logged-in
// account and emails the verification link. Returns the link so the
// transport layer can echo it back for test environments.
func (s *Service) RequestVerification(ctx context.Context, sessionToken string) (string, error) {
	email, err := s.CheckSession(sessionToken)
	if err != nil {
		return "", err
	}

	verified, err := s.users.GetVerified(ctx, email)
	if err != nil {
		return "", err
	}
	if verified {
		return "", domain.ErrAlreadyVerified()
	}

	token, err := s.verifyTokens.Sign(email, s.verifyTTL)
	if err != nil {
		return "", err
	}
	link := s.verifyLinkBase + token

	if err := s.mailer.SendVerificationEmail(ctx, email, link); err != nil {
		return "", err
	}

	s.audit(ctx, "verification_sent", map[string]string{"email": email})
	return link, nil
}

// VerifyEmail consumes a verification token carried in the link and
// flips the account to verified. Idempotence comes from the UPDATE being
// a no-op on an already-verified row; a second click still succeeds.
func (s *Service) VerifyEmail(ctx context.Context, verificationToken string) (string, error) {
	if verificationToken == "" {
		return "", domain.ErrInvalidOrExpiredToken()
	}
	email, err := s.verifyTokens.Verify(verificationToken)
	if err != nil {
		return "", domain.ErrInvalidOrExpiredToken()
	}

	if err := s.users.SetVerified(ctx, email); err != nil {
		// The account behind a token can be gone; the caller only learns
		// the token no longer works.
		if isUserNotFound(err) {
			return "", domain.ErrInvalidOrExpiredToken()
		}
		return "", err
	}

	s.audit(ctx, "email_verified", map[string]string{"email": email})
	return email, nil
}
