package auth

import (
	"context"
	"errors"

	"github.com/tunelink/auth-service/internal/domain"
)

// RegisterInput carries all five required registration fields.
type RegisterInput struct {
	Email         string
	Password      string
	MusicPlatform string
	FirstName     string
	LastName      string
}

// Register creates a new unverified credential record and issues a
// session token. The verification email is NOT sent here; that is a
// separate, explicitly invoked step. sessionToken is the token the
// client presented, if any: a valid one makes the whole operation a
// no-op failing with AlreadyLoggedIn.
func (s *Service) Register(ctx context.Context, sessionToken string, in RegisterInput) (string, error) {
	if err := s.ensureAnonymous(sessionToken); err != nil {
		return "", err
	}

	if in.Email == "" || in.Password == "" || in.MusicPlatform == "" || in.FirstName == "" || in.LastName == "" {
		return "", domain.ErrMissingFields()
	}
	if !domain.IsValidPlatform(in.MusicPlatform) {
		return "", domain.ErrInvalidPlatform(in.MusicPlatform)
	}

	if !s.emails.WellFormed(in.Email) || !s.emails.DeliverableDomain(ctx, in.Email) {
		s.audit(ctx, "register_invalid_email", map[string]string{"email": in.Email})
		return "", domain.ErrInvalidEmail()
	}

	// Existence precondition read. The store's unique key is the backstop
	// for two registrations racing past this check.
	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return "", domain.ErrEmailExists()
	case !isUserNotFound(err):
		return "", err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}

	u := domain.User{
		Email:         in.Email,
		PasswordHash:  hash,
		Verified:      false,
		MusicPlatform: domain.MusicPlatform(in.MusicPlatform),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}

	token, err := s.sessionTokens.Sign(u.Email, s.sessionTTL)
	if err != nil {
		return "", err
	}

	s.audit(ctx, "user_registered", map[string]string{"email": u.Email})
	return token, nil
}

func isUserNotFound(err error) bool {
	var de *domain.Error
	return errors.As(err, &de) && de.Code == "user_not_found"
}
