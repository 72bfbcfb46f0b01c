package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID             uuid.UUID     `bun:",pk,type:uuid,default:gen_random_uuid()"`
	ConversationID uuid.UUID     `bun:",notnull,type:uuid"`
	Conversation   *Conversation `bun:"rel:belongs-to,join:conversation_id=id"`

	SenderID uuid.UUID `bun:",notnull,type:uuid"`
	// ReceiverID is derived server-side as "the other participant" at
	// creation time; it is never taken from the client.
	ReceiverID uuid.UUID `bun:",notnull,type:uuid"`

	// Payload: plaintext content, or an encrypted {nonce, ciphertext}
	// pair, or an image reference. At least one must be present.
	Content        string `bun:",nullzero"`
	Nonce          []byte `bun:",nullzero"` // 24 bytes, NaCl secretbox
	Ciphertext     []byte `bun:",nullzero"`
	ImageURL       string `bun:",nullzero"`
	ImageObjectKey string `bun:",nullzero"` // opaque object-storage id

	IsRead bool `bun:",notnull,default:false"`

	// CreatedAt defines the total order within a conversation; listing
	// breaks ties by id.
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// HasPayload reports whether at least one payload variant is present.
func (m *Message) HasPayload() bool {
	return m.Content != "" || len(m.Ciphertext) > 0 || m.ImageURL != ""
}
