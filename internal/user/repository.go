package user

import (
	"context"

	"github.com/google/uuid"

	models "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/model"
)

type UserRepository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUsersByIDs fetches a batch of users for list enrichment.
	GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)

	UpdatePublicKey(ctx context.Context, userID uuid.UUID, publicKey []byte) error
}
