package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coreybb/scribe/datastore"
	"github.com/coreybb/scribe/models"
)

// fakeUserStore is an in-memory UserStore returning the datastore sentinels.
type fakeUserStore struct {
	byEmail map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User)}
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return datastore.ErrDuplicateEmail
	}
	s.byEmail[user.Email] = user
	return nil
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, datastore.ErrUserNotFound
	}
	return user, nil
}

func newTestAuthenticator(ttl time.Duration) (*Authenticator, *fakeUserStore) {
	store := newFakeUserStore()
	return NewAuthenticator(store, []byte("test-secret"), ttl), store
}

func TestRegisterLoginVerify_RoundTrip(t *testing.T) {
	a, _ := newTestAuthenticator(time.Hour)
	ctx := context.Background()

	user, err := a.Register(ctx, "Ann", "ann@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.PasswordHash == "pw123456" || user.PasswordHash == "" {
		t.Fatalf("password must be stored as a hash, got %q", user.PasswordHash)
	}

	token, name, err := a.Login(ctx, "ann@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if name != "Ann" {
		t.Fatalf("display name mismatch: got %q want %q", name, "Ann")
	}

	identity, err := a.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if identity.UserID != user.ID {
		t.Fatalf("userID mismatch: got %q want %q", identity.UserID, user.ID)
	}
	if identity.Name != "Ann" {
		t.Fatalf("name claim mismatch: got %q want %q", identity.Name, "Ann")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	a, _ := newTestAuthenticator(time.Hour)
	ctx := context.Background()

	if _, err := a.Register(ctx, "Ann", "ann@x.com", "pw123456"); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	_, err := a.Register(ctx, "Other Ann", "ann@x.com", "different-pw")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	a, _ := newTestAuthenticator(time.Hour)
	ctx := context.Background()

	if _, err := a.Register(ctx, "Ann", "ann@x.com", "pw123456"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, _, wrongPassword := a.Login(ctx, "ann@x.com", "not-the-password")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}

	_, _, unknownEmail := a.Login(ctx, "nobody@x.com", "pw123456")
	if !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}

	// Both failure modes must be the same error value: no existence oracle.
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure modes differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestVerify_Expired(t *testing.T) {
	a, _ := newTestAuthenticator(-1 * time.Second)
	ctx := context.Background()

	if _, err := a.Register(ctx, "Ann", "ann@x.com", "pw123456"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	token, _, err := a.Login(ctx, "ann@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	if _, err := a.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	a, store := newTestAuthenticator(time.Hour)
	ctx := context.Background()

	if _, err := a.Register(ctx, "Ann", "ann@x.com", "pw123456"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	token, _, err := a.Login(ctx, "ann@x.com", "pw123456")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	forged := NewAuthenticator(store, []byte("other-secret"), time.Hour)
	if _, err := forged.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	a, _ := newTestAuthenticator(time.Hour)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := a.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}
