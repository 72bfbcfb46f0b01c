package usecase

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/config"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/presence"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/mocks"
	models "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/model"
	appErrors "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

func configStub() config.Config { return config.Config{} }

func Test_UploadPublicKey(t *testing.T) {
	userID := uuid.New()

	validKey := make([]byte, 32)
	for i := range validKey {
		validKey[i] = byte(i)
	}

	t.Run("happy path - 32 byte key stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		uc := NewUserUsecase(mockRepo, presence.NewTracker(), logger.Logger{}, configStub())

		mockRepo.EXPECT().UpdatePublicKey(gomock.Any(), userID, validKey).Return(nil)

		err := uc.UploadPublicKey(context.Background(), user.UploadPublicKeyCommand{
			UserID:    userID,
			PublicKey: base64.StdEncoding.EncodeToString(validKey),
		})
		require.NoError(t, err)
	})

	t.Run("sad path - wrong length", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		uc := NewUserUsecase(mockRepo, presence.NewTracker(), logger.Logger{}, configStub())

		err := uc.UploadPublicKey(context.Background(), user.UploadPublicKeyCommand{
			UserID:    userID,
			PublicKey: base64.StdEncoding.EncodeToString([]byte("short")),
		})
		assert.Equal(t, appErrors.ErrInvalidPublicKey, err)
	})

	t.Run("sad path - not base64", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		uc := NewUserUsecase(mockRepo, presence.NewTracker(), logger.Logger{}, configStub())

		err := uc.UploadPublicKey(context.Background(), user.UploadPublicKeyCommand{
			UserID:    userID,
			PublicKey: "%%% not base64 %%%",
		})
		assert.Equal(t, appErrors.ErrInvalidPublicKey, err)
	})
}

func Test_GetProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("happy path - presence enrichment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		tracker := presence.NewTracker()
		tracker.SetOnline(userID)
		uc := NewUserUsecase(mockRepo, tracker, logger.Logger{}, configStub())

		mockRepo.EXPECT().GetUserByID(gomock.Any(), userID).
			Return(&models.User{ID: userID, Username: "alice", Name: "Alice"}, nil)

		profile, err := uc.GetProfile(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "alice", profile.Username)
		assert.True(t, profile.Online)
	})

	t.Run("sad path - unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockRepo := mocks.NewMockUserRepository(ctrl)
		uc := NewUserUsecase(mockRepo, presence.NewTracker(), logger.Logger{}, configStub())

		mockRepo.EXPECT().GetUserByID(gomock.Any(), userID).Return(nil, appErrors.ErrUserNotFound)

		_, err := uc.GetProfile(context.Background(), userID)
		assert.Equal(t, appErrors.ErrUserNotFound, err)
	})
}
