package usecase

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/config"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/presence"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user"
	models "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/model"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

type UserUsecase struct {
	repo     user.UserRepository
	presence *presence.Tracker
	logger   logger.Logger
	config   config.Config
}

func NewUserUsecase(repo user.UserRepository, presence *presence.Tracker, logger logger.Logger, config config.Config) *UserUsecase {
	return &UserUsecase{repo: repo, presence: presence, logger: logger, config: config}
}

func (uc *UserUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*user.ProfileDTO, error) {
	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		uc.logger.Warn("profile lookup failed", "user_id", userID, "err", err)
		return nil, errors.ErrUserNotFound
	}
	return uc.toProfile(u), nil
}

func (uc *UserUsecase) GetProfileByUsername(ctx context.Context, username string) (*user.ProfileDTO, error) {
	u, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		uc.logger.Warn("profile lookup failed", "username", username, "err", err)
		return nil, errors.ErrUserNotFound
	}
	return uc.toProfile(u), nil
}

func (uc *UserUsecase) UploadPublicKey(ctx context.Context, cmd user.UploadPublicKeyCommand) error {
	key, err := base64.StdEncoding.DecodeString(cmd.PublicKey)
	if err != nil || len(key) != 32 {
		return errors.ErrInvalidPublicKey
	}

	if err := uc.repo.UpdatePublicKey(ctx, cmd.UserID, key); err != nil {
		uc.logger.Error("failed to store public key", "user_id", cmd.UserID, "err", err)
		return errors.Internal("failed to store public key")
	}
	return nil
}

func (uc *UserUsecase) toProfile(u *models.User) *user.ProfileDTO {
	online, lastSeen := uc.presence.Get(u.ID)
	return &user.ProfileDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.Name,
		PublicKey:   u.PublicKey,
		Online:      online,
		LastSeen:    lastSeen,
	}
}
