package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/tunelink/auth-service/internal/domain"
)

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepo(db), mock
}

func userColumns() []string {
	return []string{"email_id", "password", "verified", "music_platform", "first_name", "last_name"}
}

func TestGetByEmail_Found(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT email_id, password, verified, music_platform, first_name, last_name").
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("a@b.com", "$2a$10$hash", true, "yt", "Ada", "Lovelace"))

	u, err := repo.GetByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.Email != "a@b.com" || !u.Verified || u.MusicPlatform != domain.PlatformYouTube {
		t.Fatalf("unexpected user: %+v", u)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetByEmail_NullPlatform_MapsToEmpty(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT email_id, password").
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("a@b.com", "hash", false, nil, "Ada", "Lovelace"))

	u, err := repo.GetByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if u.MusicPlatform != "" {
		t.Fatalf("expected empty platform, got %q", u.MusicPlatform)
	}
}

func TestGetByEmail_NoRows_UserNotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT email_id, password").
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.GetByEmail(context.Background(), "a@b.com")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestGetByEmail_QueryError_StoreError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT email_id, password").
		WithArgs("a@b.com").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.GetByEmail(context.Background(), "a@b.com")
	if !domain.Is(err, "store_error") {
		t.Fatalf("expected store_error, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("a@b.com", "hash", false, "yt", "Ada", "Lovelace").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), domain.User{
		Email:         "a@b.com",
		PasswordHash:  "hash",
		MusicPlatform: "yt",
		FirstName:     "Ada",
		LastName:      "Lovelace",
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestCreate_DuplicateKey_EmailExists(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "users_pkey"`))

	err := repo.Create(context.Background(), domain.User{
		Email:        "a@b.com",
		PasswordHash: "hash",
	})
	if !domain.Is(err, "email_exists") {
		t.Fatalf("expected email_exists, got %v", err)
	}
}

func TestSetVerified_Success(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users").
		WithArgs("a@b.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetVerified(context.Background(), "a@b.com"); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestSetVerified_NoRows_UserNotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users").
		WithArgs("ghost@b.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetVerified(context.Background(), "ghost@b.com")
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestGetVerified(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT verified FROM users").
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"verified"}).AddRow(true))

	v, err := repo.GetVerified(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if !v {
		t.Fatalf("expected verified=true")
	}
}

func TestGetPlatform(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT music_platform FROM users").
		WithArgs("a@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"music_platform"}).AddRow("sp"))

	p, err := repo.GetPlatform(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if p != domain.PlatformSpotify {
		t.Fatalf("expected sp, got %q", p)
	}
}

func TestSetPlatform_Success(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users").
		WithArgs("a@b.com", "sp").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetPlatform(context.Background(), "a@b.com", domain.PlatformSpotify); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestSetPlatform_NoRows_UserNotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users").
		WithArgs("ghost@b.com", "sp").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPlatform(context.Background(), "ghost@b.com", domain.PlatformSpotify)
	if !domain.Is(err, "user_not_found") {
		t.Fatalf("expected user_not_found, got %v", err)
	}
}

func TestEmptyEmail_RejectedWithoutQuery(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)

	if _, err := repo.GetByEmail(context.Background(), ""); !domain.Is(err, "missing_field") {
		t.Fatalf("expected missing_field, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no queries expected: %v", err)
	}
}
