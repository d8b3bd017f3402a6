package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GregMSThompson/ledgerpro/internal/crypto"
	"github.com/GregMSThompson/ledgerpro/internal/dto"
	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

type identityUserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByAPIKeyHash(ctx context.Context, hash string) (*models.User, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
	SetAPIKey(ctx context.Context, uid, hash, cipher string) error
	LinkExternalID(ctx context.Context, uid, externalID string) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
	CompareUnknown(password string) bool
}

type sessionTokens interface {
	Issue(userID string) (string, time.Time, error)
	Verify(token string) (string, error)
}

// keyCipher encrypts API keys at rest; aad is the owning user id.
type keyCipher interface {
	Encrypt(ctx context.Context, plaintext, aad string) (string, error)
	Decrypt(ctx context.Context, ciphertext, aad string) (string, error)
}

// externalVerifier is satisfied by *auth.Client.
type externalVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type identityService struct {
	users     identityUserStore
	passwords passwordHasher
	sessions  sessionTokens
	keys      keyCipher
	external  externalVerifier
	newAPIKey func() (string, error)
}

// NewIdentityService wires the identity core. external may be nil, in which
// case AuthenticateExternal always fails.
func NewIdentityService(users identityUserStore, passwords passwordHasher, sessions sessionTokens, keys keyCipher, external externalVerifier) *identityService {
	return &identityService{
		users:     users,
		passwords: passwords,
		sessions:  sessions,
		keys:      keys,
		external:  external,
		newAPIKey: crypto.GenerateAPIKey,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *identityService) Register(ctx context.Context, name, email, password string) (dto.PublicProfile, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return dto.PublicProfile{}, errs.NewValidationError("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return dto.PublicProfile{}, errs.NewValidationError("a valid email is required")
	}
	if password == "" {
		return dto.PublicProfile{}, errs.NewValidationError("password is required")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return dto.PublicProfile{}, errs.NewValidationError("password must be at most 72 bytes")
		}
		return dto.PublicProfile{}, err
	}

	uid := uuid.New().String()
	apiKey, err := s.newAPIKey()
	if err != nil {
		return dto.PublicProfile{}, err
	}
	cipher, err := s.keys.Encrypt(ctx, apiKey, uid)
	if err != nil {
		return dto.PublicProfile{}, errs.NewEncryptionError("failed to encrypt api key", err)
	}

	user := &models.User{
		UID:          uid,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		APIKeyHash:   crypto.HashAPIKey(apiKey),
		APIKeyCipher: cipher,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		log.Warn("failed to create user in store", "error", err)
		return dto.PublicProfile{}, err
	}

	log.Info("user registered", "uid", uid)
	return profileOf(user), nil
}

// Authenticate checks email and password and issues a session token. Every
// failure, unknown email included, is the same InvalidCredentialsError and
// costs one bcrypt comparison.
func (s *identityService) Authenticate(ctx context.Context, email, password string) (dto.SessionResult, error) {
	log := logger.FromContext(ctx)

	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		var nf *errs.NotFoundError
		if !errors.As(err, &nf) {
			return dto.SessionResult{}, err
		}
		s.passwords.CompareUnknown(password)
		log.Info("sign-in failed", "reason", "unknown email")
		return dto.SessionResult{}, errs.NewInvalidCredentialsError()
	}

	if !s.passwords.Compare(user.PasswordHash, password) {
		log.Info("sign-in failed", "reason", "password mismatch", "uid", user.UID)
		return dto.SessionResult{}, errs.NewInvalidCredentialsError()
	}

	return s.startSession(ctx, user)
}

// AuthenticateExternal signs in with a Firebase ID token. A user already
// linked by external id is used directly; otherwise the token's verified
// email is matched to a registered user and the external id is linked.
func (s *identityService) AuthenticateExternal(ctx context.Context, idToken string) (dto.SessionResult, error) {
	log := logger.FromContext(ctx)

	if s.external == nil {
		return dto.SessionResult{}, errs.NewUnauthenticatedError("external login is not enabled")
	}
	if idToken == "" {
		return dto.SessionResult{}, errs.NewUnauthenticatedError("missing external token")
	}

	tok, err := s.external.VerifyIDToken(ctx, idToken)
	if err != nil {
		if auth.IsCertificateFetchFailed(err) {
			return dto.SessionResult{}, errs.NewExternalServiceError("firebase", "failed to verify external token", true, err)
		}
		log.Debug("external token rejected", "error", err)
		return dto.SessionResult{}, errs.NewUnauthenticatedError("invalid or expired external token")
	}

	user, err := s.users.GetUserByExternalID(ctx, tok.UID)
	if err == nil {
		return s.startSession(ctx, user)
	}
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		return dto.SessionResult{}, err
	}

	email, _ := tok.Claims["email"].(string)
	verified, _ := tok.Claims["email_verified"].(bool)
	if email == "" {
		return dto.SessionResult{}, errs.NewNotFoundError("no account is linked to this login")
	}
	if !verified {
		return dto.SessionResult{}, errs.NewForbiddenError("external email is not verified")
	}

	user, err = s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.As(err, &nf) {
			return dto.SessionResult{}, errs.NewNotFoundError("no account is linked to this login")
		}
		return dto.SessionResult{}, err
	}
	if err := s.users.LinkExternalID(ctx, user.UID, tok.UID); err != nil {
		return dto.SessionResult{}, err
	}
	user.ExternalID = tok.UID

	log.Info("external login linked", "uid", user.UID)
	return s.startSession(ctx, user)
}

func (s *identityService) startSession(ctx context.Context, user *models.User) (dto.SessionResult, error) {
	token, expires, err := s.sessions.Issue(user.UID)
	if err != nil {
		return dto.SessionResult{}, err
	}
	logger.FromContext(ctx).Info("session issued", "uid", user.UID)
	return dto.SessionResult{
		Token:     token,
		ExpiresAt: expires,
		User:      profileOf(user),
	}, nil
}

// ValidateSessionToken resolves a session token to a user id. It never
// accepts an API key.
func (s *identityService) ValidateSessionToken(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", errs.NewUnauthenticatedError("missing session token")
	}
	uid, err := s.sessions.Verify(token)
	if err != nil {
		logger.FromContext(ctx).Debug("session token rejected", "error", err)
		return "", errs.NewUnauthenticatedError("invalid or expired session token")
	}
	return uid, nil
}

// ValidateApiKey resolves an API key to its owner. It never accepts a
// session token.
func (s *identityService) ValidateApiKey(ctx context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, errs.NewUnauthenticatedError("missing api key")
	}
	user, err := s.users.GetUserByAPIKeyHash(ctx, crypto.HashAPIKey(key))
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return nil, errs.NewForbiddenError("api key is not recognised")
		}
		return nil, err
	}
	return user, nil
}

func (s *identityService) GetApiKey(ctx context.Context, uid string) (string, error) {
	user, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return "", err
	}
	if user.APIKeyCipher == "" {
		return "", errs.NewNotFoundError("api key not found")
	}
	key, err := s.keys.Decrypt(ctx, user.APIKeyCipher, user.UID)
	if err != nil {
		return "", errs.NewEncryptionError("failed to decrypt api key", err)
	}
	return key, nil
}

// RotateApiKey replaces the caller's API key. The previous key stops
// validating immediately.
func (s *identityService) RotateApiKey(ctx context.Context, uid string) (string, error) {
	if _, err := s.users.GetUser(ctx, uid); err != nil {
		return "", err
	}
	key, err := s.newAPIKey()
	if err != nil {
		return "", err
	}
	cipher, err := s.keys.Encrypt(ctx, key, uid)
	if err != nil {
		return "", errs.NewEncryptionError("failed to encrypt api key", err)
	}
	if err := s.users.SetAPIKey(ctx, uid, crypto.HashAPIKey(key), cipher); err != nil {
		return "", err
	}
	logger.FromContext(ctx).Info("api key rotated", "uid", uid)
	return key, nil
}

func profileOf(u *models.User) dto.PublicProfile {
	return dto.PublicProfile{ID: u.UID, Name: u.Name, Email: u.Email}
}
