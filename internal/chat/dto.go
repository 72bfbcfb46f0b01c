package chat

import (
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user"
)

// NOTE: commands travel from handler to usecase
// Note: DTO travels from usecase to handler

type SendMessageCommand struct {
	ConversationID uuid.UUID
	SenderID       uuid.UUID // always the authenticated identity

	Content        string
	Nonce          []byte
	Ciphertext     []byte
	ImageURL       string
	ImageObjectKey string
}

type SendImageCommand struct {
	ConversationID uuid.UUID
	SenderID       uuid.UUID
	FileName       string
	ContentType    string
	Size           int64
	Reader         io.Reader
}

// Page bounds a history fetch. Zero Limit means full history (the
// behavior older clients expect); Before is an exclusive cursor.
type Page struct {
	Limit  int
	Before *time.Time
}

type MessageDTO struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"chatId"`
	SenderID       uuid.UUID `json:"senderId"`
	ReceiverID     uuid.UUID `json:"receiverId"`
	Content        string    `json:"content,omitempty"`
	Nonce          []byte    `json:"nonce,omitempty"`
	Ciphertext     []byte    `json:"data,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

type LastMessageDTO struct {
	Content    string     `json:"content,omitempty"`
	Nonce      []byte     `json:"nonce,omitempty"`
	Ciphertext []byte     `json:"data,omitempty"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	SenderID   *uuid.UUID `json:"senderId,omitempty"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

type ConversationDTO struct {
	ID uuid.UUID `json:"id"`
	// Participant is the peer, not the caller, enriched with the fields
	// the list view needs (name, presence, public key).
	Participant *user.ProfileDTO `json:"participant,omitempty"`
	LastMessage *LastMessageDTO  `json:"lastMessage,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type PresenceDTO struct {
	UserID   uuid.UUID  `json:"userId"`
	Online   bool       `json:"online"`
	LastSeen *time.Time `json:"lastSeen"`
}

// ImageCleanupOutcome records one best-effort image deletion inside a
// cascade. Failures are visible to callers and tests instead of being
// swallowed.
type ImageCleanupOutcome struct {
	ObjectKey string `json:"objectKey"`
	Deleted   bool   `json:"deleted"`
	Error     string `json:"error,omitempty"`
}

type CleanupReport struct {
	MessagesDeleted int                   `json:"messagesDeleted"`
	Images          []ImageCleanupOutcome `json:"images,omitempty"`
}

func (r *CleanupReport) FailedImages() int {
	n := 0
	for _, img := range r.Images {
		if !img.Deleted {
			n++
		}
	}
	return n
}
