package models

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party chat. The pair is stored normalized
// (UserAID sorts below UserBID) so the composite unique index guarantees
// at most one row per unordered pair, even under concurrent creation.
type Conversation struct {
	ID uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`

	UserAID uuid.UUID `bun:",notnull,type:uuid,unique:uq_conversation_pair"`
	UserBID uuid.UUID `bun:",notnull,type:uuid,unique:uq_conversation_pair"`

	// Last-message preview, denormalized for list rendering without a
	// history fetch. Exactly one of LastContent / LastCiphertext carries
	// the payload, mirroring the message it snapshots.
	LastContent    string     `bun:",nullzero"`
	LastNonce      []byte     `bun:",nullzero"`
	LastCiphertext []byte     `bun:",nullzero"`
	LastImageURL   string     `bun:",nullzero"`
	LastSenderID   *uuid.UUID `bun:",nullzero,type:uuid"`
	LastMessageAt  *time.Time `bun:",nullzero"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// NormalizePair orders two user ids byte-wise so (a,b) and (b,a) map to
// the same storage key.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}

func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// OtherParticipant derives the receiver for a message sent by userID.
// ok is false when userID is not a participant or the pair is corrupt.
func (c *Conversation) OtherParticipant(userID uuid.UUID) (uuid.UUID, bool) {
	switch userID {
	case c.UserAID:
		if c.UserBID == uuid.Nil || c.UserBID == userID {
			return uuid.Nil, false
		}
		return c.UserBID, true
	case c.UserBID:
		if c.UserAID == uuid.Nil {
			return uuid.Nil, false
		}
		return c.UserAID, true
	default:
		return uuid.Nil, false
	}
}
