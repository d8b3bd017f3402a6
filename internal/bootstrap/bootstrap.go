package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	kms "cloud.google.com/go/kms/apiv1"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/ledgerpro/internal/config"
	"github.com/GregMSThompson/ledgerpro/internal/store"
	"github.com/GregMSThompson/ledgerpro/pkg/logger"
)

type Bootstrap struct {
	Log        *slog.Logger
	Firestore  *firestore.Client
	KMS        *kms.KeyManagementClient
	Secrets    *secretmanager.Client
	Firebase   *auth.Client
	SigningKey []byte
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}
	bs.KMS, err = InitKMS(applicationCtx)
	if err != nil {
		return bs, err
	}
	bs.SigningKey, err = bs.signingKey(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}
	if cfg.FirebaseAuth {
		bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
	}

	return bs, nil
}

// signingKey prefers JWTSECRET and otherwise reads the named secret from
// Secret Manager.
func (bs *Bootstrap) signingKey(ctx context.Context, cfg *config.Config) ([]byte, error) {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}
	if cfg.JWTSecretName == "" {
		return nil, errors.New("one of JWTSECRET or JWTSECRETNAME must be set")
	}

	var err error
	bs.Secrets, err = InitSecretManager(ctx)
	if err != nil {
		return nil, err
	}
	return store.NewSecretsStore(bs.Secrets, cfg.ProjectID).Latest(ctx, cfg.JWTSecretName)
}

func (bs *Bootstrap) Close() {
	if bs.Firestore != nil {
		bs.Firestore.Close()
	}
	if bs.KMS != nil {
		bs.KMS.Close()
	}
	if bs.Secrets != nil {
		bs.Secrets.Close()
	}
}
