package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tunelink/auth-service/internal/domain"
)

/*
Shared audit capture
*/

type auditEntry struct {
	action string
	fields map[string]string
}

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByEmailErr  error
	createErr      error
	setVerifiedErr error
	getVerifiedErr error
	getPlatformErr error
	setPlatformErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]domain.User{},
	}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.ErrEmailExists()
	}
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) SetVerified(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setVerifiedErr != nil {
		return f.setVerifiedErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.Verified = true
	f.byEmail[email] = u
	return nil
}

func (f *fakeUserRepo) GetVerified(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getVerifiedErr != nil {
		return false, f.getVerifiedErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return false, domain.ErrUserNotFound()
	}
	return u.Verified, nil
}

func (f *fakeUserRepo) GetPlatform(ctx context.Context, email string) (domain.MusicPlatform, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getPlatformErr != nil {
		return "", f.getPlatformErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return "", domain.ErrUserNotFound()
	}
	return u.MusicPlatform, nil
}

func (f *fakeUserRepo) SetPlatform(ctx context.Context, email string, platform domain.MusicPlatform) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setPlatformErr != nil {
		return f.setPlatformErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.MusicPlatform = platform
	f.byEmail[email] = u
	return nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

// fakeCodec issues tokens of the form "<prefix>(<email>)"; a prefix
// mismatch stands in for a wrong-secret signature failure.
type fakeCodec struct {
	prefix string

	signErr   error
	verifyErr error
}

func (c *fakeCodec) Sign(email string, ttl time.Duration) (string, error) {
	if c.signErr != nil {
		return "", c.signErr
	}
	return fmt.Sprintf("%s(%s)", c.prefix, email), nil
}

func (c *fakeCodec) Verify(token string) (string, error) {
	if c.verifyErr != nil {
		return "", c.verifyErr
	}
	if !strings.HasPrefix(token, c.prefix+"(") || !strings.HasSuffix(token, ")") {
		return "", domain.ErrTokenInvalid()
	}
	return token[len(c.prefix)+1 : len(token)-1], nil
}

type fakeEmailValidator struct {
	wellFormed  func(addr string) bool
	deliverable func(addr string) bool
}

func (v *fakeEmailValidator) WellFormed(addr string) bool {
	if v.wellFormed != nil {
		return v.wellFormed(addr)
	}
	return strings.Contains(addr, "@")
}

func (v *fakeEmailValidator) DeliverableDomain(ctx context.Context, addr string) bool {
	if v.deliverable != nil {
		return v.deliverable(addr)
	}
	return true
}

type fakeSender struct {
	mu      sync.Mutex
	sent    []struct{ to, link string }
	sendErr error
}

func (s *fakeSender) SendVerificationEmail(ctx context.Context, to, link string) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	s.sent = append(s.sent, struct{ to, link string }{to, link})
	s.mu.Unlock()
	return nil
}

/*
Wiring helper
*/

type svcFixture struct {
	svc    *Service
	users  *fakeUserRepo
	hasher *fakeHasher
	// session and verify codecs use distinct prefixes so a token from
	// one pair never verifies under the other.
	sessions *fakeCodec
	verify   *fakeCodec
	emails   *fakeEmailValidator
	sender   *fakeSender
	audits   *[]auditEntry
}

func newSvcForTest(t *testing.T) svcFixture {
	t.Helper()

	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	sessions := &fakeCodec{prefix: "sess"}
	verify := &fakeCodec{prefix: "verify"}
	emails := &fakeEmailValidator{}
	sender := &fakeSender{}

	audits := &[]auditEntry{}

	svc := NewService(users, hasher, sessions, verify, emails, sender, Config{
		SessionTTL:     time.Hour,
		VerifyTTL:      24 * time.Hour,
		VerifyLinkBase: "http://localhost:3000/users/verify_email/",
	}).WithAudit(func(_ context.Context, action string, fields map[string]string) {
		*audits = append(*audits, auditEntry{action: action, fields: fields})
	})

	return svcFixture{
		svc:      svc,
		users:    users,
		hasher:   hasher,
		sessions: sessions,
		verify:   verify,
		emails:   emails,
		sender:   sender,
		audits:   audits,
	}
}

func seedUser(f svcFixture, email, password string, verified bool, platform domain.MusicPlatform) {
	f.users.byEmail[email] = domain.User{
		Email:         email,
		PasswordHash:  "hash:" + password,
		Verified:      verified,
		MusicPlatform: platform,
		FirstName:     "Test",
		LastName:      "User",
	}
}

func validRegisterInput(email string) RegisterInput {
	return RegisterInput{
		Email:         email,
		Password:      "pw123456",
		MusicPlatform: "yt",
		FirstName:     "Test",
		LastName:      "User",
	}
}
