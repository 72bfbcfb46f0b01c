package user

import (
	"time"

	"github.com/google/uuid"
)

// NOTE: commands travel from handler to usecase
// Note: DTO travels from usecase to handler

type UploadPublicKeyCommand struct {
	UserID    uuid.UUID
	PublicKey string // base64, 32 bytes X25519 once decoded
}

// ProfileDTO is the lightweight projection used for peer discovery and
// conversation-list enrichment — never the full user record.
type ProfileDTO struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	PublicKey   []byte    `json:"publicKey,omitempty"`
	Online      bool      `json:"online"`
	LastSeen    time.Time `json:"lastSeen,omitempty"`
}
