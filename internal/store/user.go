package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
)

type userStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
	Emails     *firestore.CollectionRef
}

func NewUserStore(client *firestore.Client) *userStore {
	return &userStore{
		Client:     client,
		Collection: client.Collection(usersCollection),
		Emails:     client.Collection(userEmailsCollection),
	}
}

// CreateUser claims the email and writes the user in one transaction, so two
// concurrent sign-ups with the same email cannot both succeed. The email is
// expected to be normalised by the caller.
func (us *userStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		user.UID = uuid.New().String()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	emailRef := us.Emails.Doc(emailKey(user.Email))
	userRef := us.Collection.Doc(user.UID)

	err := us.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		_, err := tx.Get(emailRef)
		if err == nil {
			return errs.NewAlreadyExistsError("user already exists")
		}
		if !isNotFound(err) {
			return err
		}
		if err := tx.Create(emailRef, map[string]any{"uid": user.UID, "createdAt": now}); err != nil {
			return err
		}
		return tx.Create(userRef, user)
	}, firestore.MaxAttempts(1))

	var exists *errs.AlreadyExistsError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exists):
		return exists
	case status.Code(err) == codes.AlreadyExists:
		// lost the race to a concurrent sign-up with the same email
		return errs.NewAlreadyExistsError("user already exists")
	default:
		return errs.NewDatabaseError("create", "failed to create user", err)
	}
}

func (us *userStore) GetUser(ctx context.Context, uid string) (*models.User, error) {
	doc, err := us.Collection.Doc(uid).Get(ctx)
	return getOne[models.User](doc, err, "user")
}

func (us *userStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return us.findOne(ctx, "email", email)
}

func (us *userStore) GetUserByAPIKeyHash(ctx context.Context, hash string) (*models.User, error) {
	return us.findOne(ctx, "apiKeyHash", hash)
}

func (us *userStore) GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return us.findOne(ctx, "externalId", externalID)
}

func (us *userStore) findOne(ctx context.Context, field, value string) (*models.User, error) {
	users, err := readAll[models.User](us.Collection.Where(field, "==", value).Limit(1).Documents(ctx), "users")
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errs.NewNotFoundError("user not found")
	}
	return users[0], nil
}

func (us *userStore) SetAPIKey(ctx context.Context, uid, hash, cipher string) error {
	_, err := us.Collection.Doc(uid).Update(ctx, []firestore.Update{
		{Path: "apiKeyHash", Value: hash},
		{Path: "apiKeyCipher", Value: cipher},
		{Path: "updatedAt", Value: time.Now()},
	})
	return updateErr(err, "user")
}

func (us *userStore) LinkExternalID(ctx context.Context, uid, externalID string) error {
	_, err := us.Collection.Doc(uid).Update(ctx, []firestore.Update{
		{Path: "externalId", Value: externalID},
		{Path: "updatedAt", Value: time.Now()},
	})
	return updateErr(err, "user")
}

// emailKey keeps arbitrary email text out of document ids.
func emailKey(email string) string {
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
}
