package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/ledgerpro/internal/errs"
)

// Secrets path
// projects/{project}/secrets/{secretID}/versions/latest

type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

type secretsStore struct {
	client    secretAccessor
	projectID string
}

func NewSecretsStore(client secretAccessor, projectID string) *secretsStore {
	return &secretsStore{client: client, projectID: projectID}
}

func (s *secretsStore) secretName(secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s", s.projectID, secretID)
}

// Latest returns the payload of the newest enabled version of secretID.
func (s *secretsStore) Latest(ctx context.Context, secretID string) ([]byte, error) {
	res, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("%s/versions/latest", s.secretName(secretID)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, errs.NewNotFoundError("secret " + secretID + " not found")
		}
		transient := status.Code(err) == codes.Unavailable || status.Code(err) == codes.DeadlineExceeded
		return nil, errs.NewExternalServiceError("secretmanager", "failed to read secret "+secretID, transient, err)
	}
	return res.GetPayload().GetData(), nil
}
