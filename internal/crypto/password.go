package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher returns a bcrypt hasher. A cost outside bcrypt's range
// falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("ledgerpro-unknown-user"), cost)
	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Hash fails with bcrypt.ErrPasswordTooLong for passwords over 72 bytes.
func (h *PasswordHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether password matches hash. An empty or malformed
// hash never matches.
func (h *PasswordHasher) Compare(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CompareUnknown burns the same bcrypt work as Compare and always reports
// false. Sign-in calls it when the email is not registered.
func (h *PasswordHasher) CompareUnknown(password string) bool {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
	return false
}
