package auth

import (
	"context"
	"time"

	"github.com/tunelink/auth-service/internal/domain"
)

/*
UserRepo
--------
Persistence port for credential records, keyed by email.
Only describes WHAT the auth service needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, u domain.User) error

	SetVerified(ctx context.Context, email string) error
	GetVerified(ctx context.Context, email string) (bool, error)

	GetPlatform(ctx context.Context, email string) (domain.MusicPlatform, error)
	SetPlatform(ctx context.Context, email string, platform domain.MusicPlatform) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenCodec
----------
Issues and verifies identity tokens under one secret. The service holds
two: the session pair and the email-verification pair.
*/
type TokenCodec interface {
	Sign(email string, ttl time.Duration) (string, error)
	Verify(token string) (email string, err error)
}

/*
EmailValidator
--------------
Syntactic shape check plus MX deliverability probe. Used only at
registration, never at login.
*/
type EmailValidator interface {
	WellFormed(addr string) bool
	DeliverableDomain(ctx context.Context, addr string) bool
}

/*
MailSender
----------
The outbound transactional-email collaborator. Takes (recipient, link),
reports success or failure; the service owns no retry policy.
*/
type MailSender interface {
	SendVerificationEmail(ctx context.Context, to, link string) error
}
