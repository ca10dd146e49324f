package auth

import (
	"context"

	"github.com/tunelink/auth-service/internal/domain"
)

// GetPreference returns the stored music platform for the session's
// account.
func (s *Service) GetPreference(ctx context.Context, sessionToken string) (domain.MusicPlatform, error) {
	email, err := s.CheckSession(sessionToken)
	if err != nil {
		return "", err
	}
	return s.users.GetPlatform(ctx, email)
}

// UpdatePreference replaces the stored music platform for the session's
// account and returns the new value.
func (s *Service) UpdatePreference(ctx context.Context, sessionToken, platform string) (domain.MusicPlatform, error) {
	email, err := s.CheckSession(sessionToken)
	if err != nil {
		return "", err
	}
	if platform == "" {
		return "", domain.ErrMissingField("music_platform")
	}
	if !domain.IsValidPlatform(platform) {
		return "", domain.ErrInvalidPlatform(platform)
	}

	if err := s.users.SetPlatform(ctx, email, domain.MusicPlatform(platform)); err != nil {
		return "", err
	}

	s.audit(ctx, "preference_updated", map[string]string{"email": email, "platform": platform})
	return domain.MusicPlatform(platform), nil
}
