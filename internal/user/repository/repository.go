package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/model"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

type UserRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var ErrUserNotFound = errors.New("user not found")

func NewUserRepository(db *bun.DB, logger logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetUserByID.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {

	user := new(models.User)
	err := r.db.NewSelect().Model(user).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, errors.Wrap(err, "userRepo.GetUserByUsername.Scan: ")
	}
	return user, nil
}

func (r *UserRepository) GetUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var users []models.User
	err := r.db.NewSelect().Model(&users).Where("id IN (?)", bun.In(ids)).Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "userRepo.GetUsersByIDs.Scan: ")
	}
	return users, nil
}

func (r *UserRepository) UpdatePublicKey(ctx context.Context, userID uuid.UUID, publicKey []byte) error {
	res, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("public_key = ?", publicKey).
		Set("updated_at = current_timestamp").
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "userRepo.UpdatePublicKey.Exec: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
