package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tunelink/auth-service/internal/domain"
)

// TokenCodec signs and verifies compact identity assertions under one
// secret. Two instances exist at runtime: the session pair and the
// email-verification pair. A token signed by one must fail verification
// by the other.
type TokenCodec struct {
	secret []byte
	issuer string
}

func NewTokenCodec(secret string, issuer string) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		issuer: issuer,
	}
}

type identityClaims struct {
	EmailID string `json:"email_id"`
	jwt.RegisteredClaims
}

// Sign embeds the email identity with an absolute expiry of now+ttl.
func (c *TokenCodec) Sign(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := identityClaims{
		EmailID: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", domain.ErrTokenSignFailed(err)
	}
	return signed, nil
}

// Verify returns the embedded email identity. Expiry is reported as
// token_expired, every other failure (bad signature, wrong secret,
// malformed token, alg confusion) as token_invalid.
func (c *TokenCodec) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &identityClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domain.ErrTokenInvalid()
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired()
		}
		return "", domain.ErrTokenInvalid()
	}

	claims, ok := parsed.Claims.(*identityClaims)
	if !ok || !parsed.Valid || claims.EmailID == "" {
		return "", domain.ErrTokenInvalid()
	}

	return claims.EmailID, nil
}
