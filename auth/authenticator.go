package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreybb/scribe/datastore"
	"github.com/coreybb/scribe/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmailTaken is returned by Register when the email is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned by Login for both an unknown email
	// and a wrong password, so callers cannot probe for registered users.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned by Verify for malformed, forged or
	// expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// dummyHash is a syntactically valid bcrypt hash that matches no password.
// Login compares against it when the email is unknown so that both failure
// paths cost one bcrypt verification.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Identity is the verified subject of a bearer token.
type Identity struct {
	UserID string
	Name   string
}

// Claims is the JWT payload: the registered claims plus the identity fields
// the client-facing contract promises.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// UserStore is the slice of the credential store the Authenticator needs.
// *datastore.UserRepository satisfies it.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticator hashes and verifies passwords and issues and verifies
// bearer tokens. Token verification is pure CPU and never touches the store.
type Authenticator struct {
	store    UserStore
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthenticator(store UserStore, secret []byte, tokenTTL time.Duration) *Authenticator {
	return &Authenticator{store: store, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// is never persisted or logged. Returns ErrEmailTaken when the email is
// already registered.
func (a *Authenticator) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := a.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, datastore.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and issues a signed token embedding the
// user's ID and display name, expiring after the configured TTL. Unknown
// email and wrong password both return ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, email, password string) (token string, displayName string, err error) {
	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, datastore.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", ErrInvalidCredentials
	}

	now := time.Now()
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
		UserID: user.ID,
		Name:   user.Name,
	})

	signed, err := jwtToken.SignedString(a.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, user.Name, nil
}

// Verify checks the token's signature and expiry and returns the identity
// it asserts. There is no refresh mechanism; expiry forces re-login.
func (a *Authenticator) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Name: claims.Name}, nil
}
