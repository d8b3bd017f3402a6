package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is the fixed lifetime of a session token.
const SessionTTL = 5 * time.Hour

const (
	sessionIssuer   = "ledgerpro"
	sessionAudience = "ledgerpro-session"
	minKeyLen       = 32
)

var (
	ErrWeakSigningKey = errors.New("session signing key must be at least 32 bytes")
	ErrInvalidSession = errors.New("invalid session token")
)

type SessionIssuer struct {
	key []byte
	now func() time.Time
}

func NewSessionIssuer(key []byte) (*SessionIssuer, error) {
	if len(key) < minKeyLen {
		return nil, ErrWeakSigningKey
	}
	return &SessionIssuer{key: key, now: time.Now}, nil
}

// WithClock replaces the time source, for tests.
func (s *SessionIssuer) WithClock(now func() time.Time) *SessionIssuer {
	s.now = now
	return s
}

// Issue signs an HS256 token for userID that expires SessionTTL from now.
func (s *SessionIssuer) Issue(userID string) (string, time.Time, error) {
	issued := s.now().Truncate(time.Second)
	expires := issued.Add(SessionTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    sessionIssuer,
		Audience:  jwt.ClaimStrings{sessionAudience},
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// Verify checks signature, issuer, audience and expiry and returns the
// embedded user id. Every failure wraps ErrInvalidSession.
func (s *SessionIssuer) Verify(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrInvalidSession)
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithAudience(sessionAudience),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidSession)
	}
	return claims.Subject, nil
}
