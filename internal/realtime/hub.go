package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/presence"
	appErrors "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

const eventTimeout = 10 * time.Second

// Hub owns every live websocket connection and the conversation rooms
// they have joined. It is also the Broadcaster the chat usecase fans
// messages out through, which is why the usecase is attached after
// construction rather than passed to NewHub.
type Hub struct {
	presence *presence.Tracker
	logger   logger.Logger

	mu      sync.RWMutex
	chats   chat.ChatUsecase
	clients map[*Client]bool
	// connection count per user; presence flips only on 0<->1 transitions
	// so a second tab neither re-announces online nor marks offline on close
	conns map[uuid.UUID]int
	rooms map[uuid.UUID]map[*Client]bool
}

var _ chat.Broadcaster = (*Hub)(nil)

func NewHub(tracker *presence.Tracker, logger logger.Logger) *Hub {
	return &Hub{
		presence: tracker,
		logger:   logger,
		clients:  make(map[*Client]bool),
		conns:    make(map[uuid.UUID]int),
		rooms:    make(map[uuid.UUID]map[*Client]bool),
	}
}

// SetChatUsecase attaches the usecase the hub routes inbound events to.
// Must be called before the hub accepts connections.
func (h *Hub) SetChatUsecase(uc chat.ChatUsecase) {
	h.mu.Lock()
	h.chats = uc
	h.mu.Unlock()
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	h.conns[c.userID]++
	first := h.conns[c.userID] == 1
	h.mu.Unlock()

	if first {
		h.presence.SetOnline(c.userID)
		h.BroadcastPresence(chat.PresenceDTO{UserID: c.userID, Online: true})
	}
	h.logger.Debugf("realtime: user %s connected", c.userID)
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for convID := range c.rooms {
		h.dropFromRoomLocked(convID, c)
	}
	h.conns[c.userID]--
	last := h.conns[c.userID] == 0
	if last {
		delete(h.conns, c.userID)
	}
	close(c.send)
	h.mu.Unlock()

	if last {
		lastSeen := h.presence.SetOffline(c.userID)
		h.BroadcastPresence(chat.PresenceDTO{UserID: c.userID, Online: false, LastSeen: &lastSeen})
	}
	h.logger.Debugf("realtime: user %s disconnected", c.userID)
}

func (h *Hub) dropFromRoomLocked(conversationID uuid.UUID, c *Client) {
	room, ok := h.rooms[conversationID]
	if !ok {
		return
	}
	delete(room, c)
	delete(c.rooms, conversationID)
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
}

func (h *Hub) join(conversationID uuid.UUID, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[conversationID]
	if !ok {
		room = make(map[*Client]bool)
		h.rooms[conversationID] = room
	}
	room[c] = true
	c.rooms[conversationID] = true
}

// BroadcastMessage delivers a persisted message to every connection in
// the conversation's room, the sender's own connections included so a
// second tab stays in sync.
func (h *Hub) BroadcastMessage(conversationID uuid.UUID, msg *chat.MessageDTO) {
	payload, err := NewEvent(EventReceiveMessage, msg)
	if err != nil {
		h.logger.Errorf("realtime: encode message event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[conversationID] {
		h.deliverLocked(c, payload)
	}
}

// BroadcastPresence announces a status flip to every connected client.
func (h *Hub) BroadcastPresence(status chat.PresenceDTO) {
	payload, err := NewEvent(EventUserStatus, status)
	if err != nil {
		h.logger.Errorf("realtime: encode presence event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		h.deliverLocked(c, payload)
	}
}

// deliverLocked drops the payload instead of blocking when a client's
// send buffer is full; a slow consumer must not stall the hub.
func (h *Hub) deliverLocked(c *Client, payload []byte) {
	select {
	case c.send <- payload:
	default:
		h.logger.Warnf("realtime: dropping event for slow client %s", c.userID)
	}
}

func (h *Hub) handleEvent(c *Client, raw []byte) {
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		h.sendError(c, appErrors.Wrap(appErrors.CodeInvalidArgument, "malformed event", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	switch ev.Type {
	case EventJoinChat:
		h.handleJoinChat(ctx, c, ev.Data)
	case EventSendMessage:
		h.handleSendMessage(ctx, c, ev.Data)
	default:
		h.sendError(c, appErrors.InvalidArg("unknown event type: "+string(ev.Type)))
	}
}

func (h *Hub) handleJoinChat(ctx context.Context, c *Client, data json.RawMessage) {
	var join JoinChatData
	if err := json.Unmarshal(data, &join); err != nil {
		h.sendError(c, appErrors.Wrap(appErrors.CodeInvalidArgument, "malformed joinChat payload", err))
		return
	}

	ok, err := h.usecase().IsParticipant(ctx, join.ChatID, c.userID)
	if err != nil {
		h.sendError(c, err)
		return
	}
	if !ok {
		h.sendError(c, appErrors.ErrNotParticipant)
		return
	}

	h.join(join.ChatID, c)
	h.logger.Debugf("realtime: user %s joined room %s", c.userID, join.ChatID)
}

func (h *Hub) handleSendMessage(ctx context.Context, c *Client, data json.RawMessage) {
	var send SendMessageData
	if err := json.Unmarshal(data, &send); err != nil {
		h.sendError(c, appErrors.Wrap(appErrors.CodeInvalidArgument, "malformed sendMessage payload", err))
		return
	}

	// fan-out happens inside SendMessage via the Broadcaster port once
	// the message is persisted
	_, err := h.usecase().SendMessage(ctx, chat.SendMessageCommand{
		ConversationID: send.ChatID,
		SenderID:       c.userID,
		Content:        send.Content,
		Nonce:          send.Nonce,
		Ciphertext:     send.Ciphertext,
		ImageURL:       send.ImageURL,
	})
	if err != nil {
		h.sendError(c, err)
	}
}

func (h *Hub) usecase() chat.ChatUsecase {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.chats
}

func (h *Hub) sendError(c *Client, err error) {
	payload, encodeErr := NewEvent(EventError, ErrorData{
		Code:    string(appErrors.CodeOf(err)),
		Message: appErrors.MessageOf(err),
	})
	if encodeErr != nil {
		h.logger.Errorf("realtime: encode error event: %v", encodeErr)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.clients[c] {
		h.deliverLocked(c, payload)
	}
}
