package user

import (
	"context"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	GetProfileByUsername(ctx context.Context, username string) (*ProfileDTO, error)

	// UploadPublicKey stores the caller's X25519 public key so peers can
	// derive a shared secret with it.
	UploadPublicKey(ctx context.Context, cmd UploadPublicKeyCommand) error
}
