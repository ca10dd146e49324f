package dto

import (
	"github.com/tunelink/auth-service/internal/domain"
)

// Request bodies keep the frontend's field names (email_id, not email)
// so existing clients keep working.

type RegisterRequest struct {
	EmailID       string `json:"email_id"`
	Password      string `json:"password"`
	MusicPlatform string `json:"music_platform"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
}

func (r *RegisterRequest) Validate() error {
	if r.EmailID == "" || r.Password == "" || r.MusicPlatform == "" || r.FirstName == "" || r.LastName == "" {
		return domain.ErrMissingFields()
	}
	return nil
}

type LoginRequest struct {
	EmailID  string `json:"email_id"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if r.EmailID == "" || r.Password == "" {
		return domain.ErrMissingFields()
	}
	return nil
}

// SettingsUpdateRequest carries no Validate: whether the platform field
// is usable is decided after the session check, in the service.
type SettingsUpdateRequest struct {
	MusicPlatform string `json:"music_platform"`
}
