package models

import (
	"time"
)

// User is an identity record. The password and API key are never stored in
// clear: PasswordHash is a bcrypt hash, APIKeyHash is the SHA-256 lookup
// digest and APIKeyCipher the KMS ciphertext used to show the key again.
type User struct {
	UID          string    `firestore:"uid" json:"id"`
	Name         string    `firestore:"name" json:"name"`
	Email        string    `firestore:"email" json:"email"`
	PasswordHash string    `firestore:"passwordHash" json:"-"`
	ExternalID   string    `firestore:"externalId,omitempty" json:"-"`
	APIKeyHash   string    `firestore:"apiKeyHash,omitempty" json:"-"`
	APIKeyCipher string    `firestore:"apiKeyCipher,omitempty" json:"-"`
	CreatedAt    time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `firestore:"updatedAt" json:"updatedAt"`
}
