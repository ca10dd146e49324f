package auth

import (
	"context"

	"github.com/tunelink/auth-service/internal/domain"
)

// CheckSession validates a presented session token and returns the email
// it vouches for. Absent, malformed, expired and badly-signed tokens all
// collapse into Unauthorized.
func (s *Service) CheckSession(sessionToken string) (string, error) {
	if sessionToken == "" {
		return "", domain.ErrUnauthorized()
	}
	email, err := s.sessionTokens.Verify(sessionToken)
	if err != nil {
		return "", domain.ErrUnauthorized()
	}
	return email, nil
}

// Logout always succeeds: tokens are stateless, so ending a session is
// purely the client discarding its cookie. A valid token still gets an
// audit entry.
func (s *Service) Logout(ctx context.Context, sessionToken string) {
	if email, err := s.CheckSession(sessionToken); err == nil {
		s.audit(ctx, "logout", map[string]string{"email": email})
	}
}
