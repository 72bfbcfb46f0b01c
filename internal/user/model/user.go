package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	// Username = unique @handle (used for login and identity)
	Username string `bun:",unique,notnull"`

	// Name = display name shown in chats (can be changed freely)
	Name string `bun:",notnull"`

	// Curve25519 public key uploaded by the client so peers can derive a
	// shared secret. The matching secret key never leaves the client.
	PublicKey []byte `bun:",nullzero"` // 32 bytes X25519

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
