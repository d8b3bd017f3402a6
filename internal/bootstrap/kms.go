package bootstrap

import (
	"context"

	kms "cloud.google.com/go/kms/apiv1"
)

func InitKMS(ctx context.Context) (*kms.KeyManagementClient, error) {
	return kms.NewKeyManagementClient(ctx)
}
