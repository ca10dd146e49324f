package auth

import (
	"context"

	"github.com/tunelink/auth-service/internal/domain"
)

// Login checks the credentials and issues a fresh session token.
// Unknown emails and wrong passwords produce the same InvalidCredentials
// error; the distinction lives only in the audit log.
func (s *Service) Login(ctx context.Context, sessionToken, email, password string) (string, error) {
	if err := s.ensureAnonymous(sessionToken); err != nil {
		return "", err
	}
	if email == "" || password == "" {
		return "", domain.ErrMissingFields()
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if isUserNotFound(err) {
			s.audit(ctx, "login_failed", map[string]string{"email": email, "reason": "unknown email"})
			return "", domain.ErrInvalidCredentials()
		}
		return "", err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.audit(ctx, "login_failed", map[string]string{"email": email, "reason": "password mismatch"})
		return "", domain.ErrInvalidCredentials()
	}

	token, err := s.sessionTokens.Sign(u.Email, s.sessionTTL)
	if err != nil {
		return "", err
	}

	s.audit(ctx, "login_success", map[string]string{"email": u.Email})
	return token, nil
}
