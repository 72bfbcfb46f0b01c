// Package presence tracks ephemeral online/last-seen state per user.
// The state is per-process and intentionally lost on restart; clients
// reconnect and the transport repopulates it.
package presence

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	online   bool
	lastSeen time.Time
}

type Tracker struct {
	mu    sync.RWMutex
	users map[uuid.UUID]entry
}

func NewTracker() *Tracker {
	return &Tracker{users: make(map[uuid.UUID]entry)}
}

func (t *Tracker) SetOnline(userID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.users[userID]
	e.online = true
	t.users[userID] = e
}

func (t *Tracker) SetOffline(userID uuid.UUID) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now().UTC()
	t.users[userID] = entry{online: false, lastSeen: now}
	return now
}

// Get returns the live status of a user. A user never seen by this
// process reads as offline with a zero last-seen.
func (t *Tracker) Get(userID uuid.UUID) (online bool, lastSeen time.Time) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e := t.users[userID]
	return e.online, e.lastSeen
}
