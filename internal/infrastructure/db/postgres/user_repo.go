package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tunelink/auth-service/internal/domain"
)

// UserRepo persists credential records keyed by email. It performs point
// reads and writes only; all policy lives in the application layer. The
// unique key on email_id is the backstop for registration races: the
// loser of a concurrent insert surfaces as email_exists, never as a
// silent overwrite.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

type userRow struct {
	Email         string
	PasswordHash  string
	Verified      bool
	MusicPlatform sql.NullString
	FirstName     string
	LastName      string
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		Email:         ur.Email,
		PasswordHash:  ur.PasswordHash,
		Verified:      ur.Verified,
		MusicPlatform: domain.MusicPlatform(ur.MusicPlatform.String),
		FirstName:     ur.FirstName,
		LastName:      ur.LastName,
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email_id")
	}

	const q = `
SELECT email_id, password, verified, music_platform, first_name, last_name
FROM users
WHERE email_id = $1
LIMIT 1;
`
	var ur userRow
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&ur.Email,
		&ur.PasswordHash,
		&ur.Verified,
		&ur.MusicPlatform,
		&ur.FirstName,
		&ur.LastName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrStore(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) error {
	if u.Email == "" {
		return domain.ErrMissingField("email_id")
	}
	if u.PasswordHash == "" {
		return domain.ErrMissingField("password")
	}

	const q = `
INSERT INTO users (email_id, password, verified, music_platform, first_name, last_name)
VALUES ($1,$2,$3,$4,$5,$6);
`
	_, err := r.db.ExecContext(ctx, q,
		u.Email, u.PasswordHash, u.Verified, string(u.MusicPlatform), u.FirstName, u.LastName,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.ErrEmailExists()
		}
		return domain.ErrStore(err)
	}
	return nil
}

// SetVerified marks the record verified. Idempotent: re-applying to an
// already-verified record succeeds. There is no path back to false.
func (r *UserRepo) SetVerified(ctx context.Context, email string) error {
	if email == "" {
		return domain.ErrMissingField("email_id")
	}

	const q = `
UPDATE users
SET verified = TRUE
WHERE email_id = $1;
`
	res, err := r.db.ExecContext(ctx, q, email)
	if err != nil {
		return domain.ErrStore(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (r *UserRepo) GetVerified(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, domain.ErrMissingField("email_id")
	}

	const q = `SELECT verified FROM users WHERE email_id = $1 LIMIT 1;`

	var verified bool
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&verified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrUserNotFound()
		}
		return false, domain.ErrStore(err)
	}
	return verified, nil
}

func (r *UserRepo) GetPlatform(ctx context.Context, email string) (domain.MusicPlatform, error) {
	if email == "" {
		return "", domain.ErrMissingField("email_id")
	}

	const q = `SELECT music_platform FROM users WHERE email_id = $1 LIMIT 1;`

	var platform sql.NullString
	if err := r.db.QueryRowContext(ctx, q, email).Scan(&platform); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrUserNotFound()
		}
		return "", domain.ErrStore(err)
	}
	return domain.MusicPlatform(platform.String), nil
}

func (r *UserRepo) SetPlatform(ctx context.Context, email string, platform domain.MusicPlatform) error {
	if email == "" {
		return domain.ErrMissingField("email_id")
	}

	const q = `
UPDATE users
SET music_platform = $2
WHERE email_id = $1;
`
	res, err := r.db.ExecContext(ctx, q, email, string(platform))
	if err != nil {
		return domain.ErrStore(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
