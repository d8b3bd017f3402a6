package services

import (
	"context"
	"math"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
	"github.com/GregMSThompson/ledgerpro/internal/models"
)

type accountGetter interface {
	Get(ctx context.Context, accountID string) (*models.Account, error)
}

// checkOwner rejects a record owned by someone other than uid.
func checkOwner(ownerID, uid, what string) error {
	if ownerID != uid {
		return errs.NewForbiddenError("not allowed to access this " + what)
	}
	return nil
}

// ownedAccount loads an account and verifies the caller owns it.
func ownedAccount(ctx context.Context, accounts accountGetter, accountID, uid string) (*models.Account, error) {
	if accountID == "" {
		return nil, errs.NewValidationError("account id is required")
	}
	a, err := accounts.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(a.UserID, uid, "account"); err != nil {
		return nil, err
	}
	return a, nil
}

func positiveAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
