package memory

import (
	"context"
	"sync"

	"github.com/tunelink/auth-service/internal/domain"
)

// UserRepo is the in-memory mirror of the postgres repo, used in dev
// mode and in tests. Same key semantics: email, case-sensitive.
type UserRepo struct {
	mu      sync.RWMutex
	byEmail map[string]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byEmail: make(map[string]domain.User),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return domain.ErrEmailExists()
	}
	r.byEmail[u.Email] = u
	return nil
}

func (r *UserRepo) SetVerified(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.Verified = true
	r.byEmail[email] = u
	return nil
}

func (r *UserRepo) GetVerified(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return false, domain.ErrUserNotFound()
	}
	return u.Verified, nil
}

func (r *UserRepo) GetPlatform(ctx context.Context, email string) (domain.MusicPlatform, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return "", domain.ErrUserNotFound()
	}
	return u.MusicPlatform, nil
}

func (r *UserRepo) SetPlatform(ctx context.Context, email string, platform domain.MusicPlatform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byEmail[email]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.MusicPlatform = platform
	r.byEmail[email] = u
	return nil
}
