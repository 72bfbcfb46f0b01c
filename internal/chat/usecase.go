package chat

import (
	"context"
	"io"

	"github.com/google/uuid"
)

type ChatUsecase interface {
	// StartConversation finds or creates the conversation between the
	// caller and participantID. Repeated and concurrent calls converge on
	// the same conversation.
	StartConversation(ctx context.Context, userID, participantID uuid.UUID) (*ConversationDTO, error)

	ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationDTO, error)

	// DeleteConversation cascades to all messages and attempts best-effort
	// deletion of every referenced image; per-image outcomes are reported,
	// image failures never abort the delete.
	DeleteConversation(ctx context.Context, conversationID, userID uuid.UUID) (*CleanupReport, error)

	// SendMessage validates the sender is a participant, derives the
	// receiver, persists with preview update, then fans out to the
	// conversation's room.
	SendMessage(ctx context.Context, cmd SendMessageCommand) (*MessageDTO, error)

	SendImageMessage(ctx context.Context, cmd SendImageCommand) (*MessageDTO, error)

	// ListMessages returns history in persisted order and marks the
	// caller's inbound messages read.
	ListMessages(ctx context.Context, conversationID, userID uuid.UUID, page Page) ([]MessageDTO, error)

	// EditMessage mutates plaintext content only; only the original
	// sender may edit.
	EditMessage(ctx context.Context, conversationID, messageID, userID uuid.UUID, content string) (*MessageDTO, error)

	DeleteMessage(ctx context.Context, conversationID, messageID, userID uuid.UUID) error

	// IsParticipant is the authorization check the realtime transport
	// runs before admitting a connection to a conversation room.
	IsParticipant(ctx context.Context, conversationID, userID uuid.UUID) (bool, error)
}

// Broadcaster is the fan-out port implemented by the realtime hub and
// injected into the usecase, instead of the hub living on an ambient
// app-wide handle.
type Broadcaster interface {
	BroadcastMessage(conversationID uuid.UUID, msg *MessageDTO)
	BroadcastPresence(status PresenceDTO)
}

// ImageStore is the object-storage collaborator holding message images.
type ImageStore interface {
	Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (url string, err error)
	Remove(ctx context.Context, objectKey string) error
}
