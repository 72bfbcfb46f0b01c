package chat

import (
	"context"
	"time"

	"github.com/google/uuid"

	models "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/model"
)

type ChatRepository interface {
	// FindOrCreateConversation returns the conversation for the unordered
	// pair, creating it if absent. Safe under concurrent calls: the
	// normalized-pair unique index serializes creation and the loser of a
	// race reads the winner's row.
	FindOrCreateConversation(ctx context.Context, a, b uuid.UUID) (*models.Conversation, error)

	GetConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error)

	// ListConversationsForUser orders by updated_at descending (most
	// recently active first).
	ListConversationsForUser(ctx context.Context, userID uuid.UUID) ([]models.Conversation, error)

	// DeleteConversation removes the conversation and all its messages in
	// one transaction.
	DeleteConversation(ctx context.Context, id uuid.UUID) error

	// ListImageObjects returns the object-storage keys referenced by the
	// conversation's messages, for pre-delete cleanup.
	ListImageObjects(ctx context.Context, conversationID uuid.UUID) ([]string, error)

	// InsertMessage persists the message and updates the parent
	// conversation's preview + updated_at in the same transaction.
	InsertMessage(ctx context.Context, msg *models.Message) error

	// ListMessages returns ascending created_at order, id tiebreak.
	// limit <= 0 means full history; before is an exclusive upper cursor.
	ListMessages(ctx context.Context, conversationID uuid.UUID, limit int, before *time.Time) ([]models.Message, error)

	GetMessage(ctx context.Context, conversationID, messageID uuid.UUID) (*models.Message, error)
	UpdateMessageContent(ctx context.Context, conversationID, messageID uuid.UUID, content string) (*models.Message, error)
	DeleteMessage(ctx context.Context, conversationID, messageID uuid.UUID) error

	// MarkMessagesRead flips IsRead on every message addressed to reader.
	MarkMessagesRead(ctx context.Context, conversationID, readerID uuid.UUID) error
}
