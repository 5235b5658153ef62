// Package auth handles password hashing and the issuance and verification of
// the bearer tokens that identify a user on protected routes.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"agileboard/internal/apperr"
)

// DefaultTokenTTL is the access token lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// HashPassword returns a one-way salted hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Manager issues and verifies signed identity tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a token manager. The secret must not be empty; ttl and
// now fall back to DefaultTokenTTL and time.Now.
func NewManager(secret []byte, ttl time.Duration, now func() time.Time) (*Manager, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{secret: secret, ttl: ttl, now: now}, nil
}

// Issue creates a signed token bound to the user id, expiring after the
// configured lifetime.
func (m *Manager) Issue(userID int64) (string, error) {
	issuedAt := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Resolve verifies a token and returns the bound user id. Missing, malformed,
// expired and badly signed tokens all fail with the same unauthorized error.
func (m *Manager) Resolve(token string) (int64, error) {
	if token == "" {
		return 0, apperr.Unauthorized("missing token")
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeUnauthorized, "invalid token", err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeUnauthorized, "invalid token", err)
	}
	return userID, nil
}
