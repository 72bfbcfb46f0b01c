package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	models "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/model"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

type ChatRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
)

func NewChatRepository(db *bun.DB, logger logger.Logger) *ChatRepository {
	return &ChatRepository{
		db:     db,
		logger: &logger,
	}
}

func (r *ChatRepository) FindOrCreateConversation(ctx context.Context, a, b uuid.UUID) (*models.Conversation, error) {
	userA, userB := models.NormalizePair(a, b)

	conv := &models.Conversation{UserAID: userA, UserBID: userB}

	// Losing a race leaves zero rows inserted; the follow-up select then
	// observes the winner's row. The unique index on (user_a_id,
	// user_b_id) is what makes this converge.
	_, err := r.db.NewInsert().
		Model(conv).
		On("CONFLICT (user_a_id, user_b_id) DO NOTHING").
		Returning("*").
		Exec(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "chatRepo.FindOrCreateConversation.Insert: ")
	}
	if err == nil && conv.ID != uuid.Nil {
		return conv, nil
	}

	existing := new(models.Conversation)
	err = r.db.NewSelect().
		Model(existing).
		Where("user_a_id = ? AND user_b_id = ?", userA, userB).
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.FindOrCreateConversation.Scan: ")
	}
	return existing, nil
}

func (r *ChatRepository) GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	conv := new(models.Conversation)
	err := r.db.NewSelect().Model(conv).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.GetConversation.Scan: ")
	}
	return conv, nil
}

func (r *ChatRepository) ListConversationsForUser(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error) {
	var convs []models.Conversation
	err := r.db.NewSelect().
		Model(&convs).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListConversationsForUser.Scan: ")
	}
	return convs, nil
}

func (r *ChatRepository) DeleteConversation(ctx context.Context, id uuid.UUID) error {
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.Message)(nil)).
			Where("conversation_id = ?", id).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "deleteMessages")
		}

		res, err := tx.NewDelete().
			Model((*models.Conversation)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "deleteConversation")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrConversationNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return ErrConversationNotFound
		}
		return errors.Wrap(err, "chatRepo.DeleteConversation.Tx: ")
	}
	return nil
}

func (r *ChatRepository) ListImageObjects(ctx context.Context, conversationID uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.NewSelect().
		Model((*models.Message)(nil)).
		Column("image_object_key").
		Where("conversation_id = ? AND image_object_key IS NOT NULL", conversationID).
		Scan(ctx, &keys)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListImageObjects.Scan: ")
	}
	return keys, nil
}

func (r *ChatRepository) InsertMessage(ctx context.Context, msg *models.Message) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(msg).Returning("*").Exec(ctx); err != nil {
			return errors.Wrap(err, "chatRepo.InsertMessage.Insert: ")
		}

		// Preview and updated_at move with the message inside the same tx
		// so a reader never sees a message without its preview bump.
		_, err := tx.NewUpdate().
			Model((*models.Conversation)(nil)).
			Set("last_content = ?", nullableString(msg.Content)).
			Set("last_nonce = ?", msg.Nonce).
			Set("last_ciphertext = ?", msg.Ciphertext).
			Set("last_image_url = ?", nullableString(msg.ImageURL)).
			Set("last_sender_id = ?", msg.SenderID).
			Set("last_message_at = ?", msg.CreatedAt).
			Set("updated_at = ?", msg.CreatedAt).
			Where("id = ?", msg.ConversationID).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "chatRepo.InsertMessage.UpdatePreview: ")
		}
		return nil
	})
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, limit int, before *time.Time) ([]models.Message, error) {
	var msgs []models.Message
	q := r.db.NewSelect().
		Model(&msgs).
		Where("conversation_id = ?", conversationID)
	if before != nil {
		q = q.Where("created_at < ?", *before)
	}
	q = q.Order("created_at ASC", "id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListMessages.Scan: ")
	}
	return msgs, nil
}

func (r *ChatRepository) GetMessage(ctx context.Context, conversationID, messageID uuid.UUID) (*models.Message, error) {
	msg := new(models.Message)
	err := r.db.NewSelect().
		Model(msg).
		Where("id = ? AND conversation_id = ?", messageID, conversationID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.GetMessage.Scan: ")
	}
	return msg, nil
}

func (r *ChatRepository) UpdateMessageContent(ctx context.Context, conversationID, messageID uuid.UUID, content string) (*models.Message, error) {
	msg := new(models.Message)
	res, err := r.db.NewUpdate().
		Model(msg).
		Set("content = ?", content).
		Where("id = ? AND conversation_id = ?", messageID, conversationID).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, errors.Wrap(err, "chatRepo.UpdateMessageContent.Exec: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrMessageNotFound
	}
	return msg, nil
}

func (r *ChatRepository) DeleteMessage(ctx context.Context, conversationID, messageID uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*models.Message)(nil)).
		Where("id = ? AND conversation_id = ?", messageID, conversationID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.DeleteMessage.Exec: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *ChatRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID uuid.UUID) error {
	_, err := r.db.NewUpdate().
		Model((*models.Message)(nil)).
		Set("is_read = true").
		Where("conversation_id = ? AND receiver_id = ? AND is_read = false", conversationID, readerID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "chatRepo.MarkMessagesRead.Exec: ")
	}
	return nil
}

// nullableString keeps empty strings out of nullzero columns when used
// in raw Set expressions.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
