package store

import (
	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
)

// Top-level collections. Every document except users carries userId.
const (
	usersCollection        = "users"
	userEmailsCollection   = "user_emails"
	accountsCollection     = "accounts"
	transactionsCollection = "transactions"
	goalsCollection        = "goals"
	remindersCollection    = "reminders"
)

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// readAll drains iter into a slice, decoding each document into T.
func readAll[T any](iter *firestore.DocumentIterator, what string) ([]*T, error) {
	defer iter.Stop()

	out := []*T{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list "+what, err)
		}
		var v T
		if err := doc.DataTo(&v); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse "+what+" data", err)
		}
		out = append(out, &v)
	}
	return out, nil
}

// getOne fetches and decodes a single document, translating NotFound.
func getOne[T any](doc *firestore.DocumentSnapshot, err error, what string) (*T, error) {
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError(what + " not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get "+what, err)
	}
	var v T
	if err := doc.DataTo(&v); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse "+what+" data", err)
	}
	return &v, nil
}

// updateErr translates the error of a DocumentRef.Update.
func updateErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return errs.NewNotFoundError(what + " not found")
	}
	return errs.NewDatabaseError("update", "failed to update "+what, err)
}

func deleteErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return errs.NewNotFoundError(what + " not found")
	}
	return errs.NewDatabaseError("delete", "failed to delete "+what, err)
}
