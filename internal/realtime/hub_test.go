package realtime

import (
	"encoding/json"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/mocks"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/presence"
	appErrors "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

func newTestHub() *Hub {
	return NewHub(presence.NewTracker(), logger.Logger{})
}

// connect registers a connection-less client; pumps never run in tests,
// events are read straight off the send channel.
func connect(h *Hub, userID uuid.UUID) *Client {
	c := newClient(h, nil, userID, 8)
	h.register(c)
	return c
}

func takeEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.send:
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		return ev
	default:
		t.Fatal("expected a queued event")
		return Event{}
	}
}

func drain(c *Client) {
	for {
		select {
		case _, ok := <-c.send:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func encode(t *testing.T, eventType EventType, data any) []byte {
	t.Helper()
	raw, err := NewEvent(eventType, data)
	require.NoError(t, err)
	return raw
}

func Test_PresenceLifecycle(t *testing.T) {
	hub := newTestHub()
	alice, bob := uuid.New(), uuid.New()

	watcher := connect(hub, bob)
	drain(watcher)

	t.Run("first connection announces online", func(t *testing.T) {
		first := connect(hub, alice)

		ev := takeEvent(t, watcher)
		assert.Equal(t, EventUserStatus, ev.Type)

		var status chat.PresenceDTO
		require.NoError(t, json.Unmarshal(ev.Data, &status))
		assert.Equal(t, alice, status.UserID)
		assert.True(t, status.Online)

		t.Run("second tab is silent", func(t *testing.T) {
			second := connect(hub, alice)
			assert.Empty(t, watcher.send)

			t.Run("closing one tab keeps the user online", func(t *testing.T) {
				hub.unregister(second)
				assert.Empty(t, watcher.send)

				online, _ := hub.presence.Get(alice)
				assert.True(t, online)
			})

			t.Run("last close announces offline with lastSeen", func(t *testing.T) {
				hub.unregister(first)

				ev := takeEvent(t, watcher)
				assert.Equal(t, EventUserStatus, ev.Type)

				var status chat.PresenceDTO
				require.NoError(t, json.Unmarshal(ev.Data, &status))
				assert.Equal(t, alice, status.UserID)
				assert.False(t, status.Online)
				require.NotNil(t, status.LastSeen)

				online, _ := hub.presence.Get(alice)
				assert.False(t, online)
			})
		})
	})
}

func Test_BroadcastMessage_RoomIsolation(t *testing.T) {
	hub := newTestHub()
	convID := uuid.New()

	alice := connect(hub, uuid.New())
	bob := connect(hub, uuid.New())
	outsider := connect(hub, uuid.New())
	drain(alice)
	drain(bob)
	drain(outsider)

	hub.join(convID, alice)
	hub.join(convID, bob)

	msg := &chat.MessageDTO{ID: uuid.New(), ConversationID: convID, Content: "hello"}
	hub.BroadcastMessage(convID, msg)

	for _, member := range []*Client{alice, bob} {
		ev := takeEvent(t, member)
		assert.Equal(t, EventReceiveMessage, ev.Type)

		var got chat.MessageDTO
		require.NoError(t, json.Unmarshal(ev.Data, &got))
		assert.Equal(t, msg.ID, got.ID)
		assert.Equal(t, "hello", got.Content)
	}

	assert.Empty(t, outsider.send, "clients outside the room must not receive the message")
}

func Test_BroadcastMessage_SlowClientDropped(t *testing.T) {
	hub := newTestHub()
	convID := uuid.New()

	slow := newClient(hub, nil, uuid.New(), 1)
	hub.register(slow)
	hub.join(convID, slow)
	drain(slow)

	// fill the buffer, then broadcast again; the hub must not block
	hub.BroadcastMessage(convID, &chat.MessageDTO{ID: uuid.New(), ConversationID: convID})
	hub.BroadcastMessage(convID, &chat.MessageDTO{ID: uuid.New(), ConversationID: convID})

	assert.Len(t, slow.send, 1)
}

func Test_HandleEvent_JoinChat(t *testing.T) {
	convID := uuid.New()

	t.Run("participant joins the room", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUC := mocks.NewMockChatUsecase(ctrl)
		hub := newTestHub()
		hub.SetChatUsecase(mockUC)

		c := connect(hub, uuid.New())
		drain(c)

		mockUC.EXPECT().IsParticipant(gomock.Any(), convID, c.userID).Return(true, nil)

		hub.handleEvent(c, encode(t, EventJoinChat, JoinChatData{ChatID: convID}))

		assert.Empty(t, c.send)
		hub.mu.RLock()
		assert.True(t, hub.rooms[convID][c])
		hub.mu.RUnlock()
	})

	t.Run("outsider gets an error ack", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUC := mocks.NewMockChatUsecase(ctrl)
		hub := newTestHub()
		hub.SetChatUsecase(mockUC)

		c := connect(hub, uuid.New())
		drain(c)

		mockUC.EXPECT().IsParticipant(gomock.Any(), convID, c.userID).Return(false, nil)

		hub.handleEvent(c, encode(t, EventJoinChat, JoinChatData{ChatID: convID}))

		ev := takeEvent(t, c)
		assert.Equal(t, EventError, ev.Type)

		var ack ErrorData
		require.NoError(t, json.Unmarshal(ev.Data, &ack))
		assert.Equal(t, string(appErrors.CodePermissionDenied), ack.Code)

		hub.mu.RLock()
		assert.NotContains(t, hub.rooms[convID], c)
		hub.mu.RUnlock()
	})
}

func Test_HandleEvent_SendMessage(t *testing.T) {
	convID := uuid.New()

	t.Run("happy path delegates to the usecase", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUC := mocks.NewMockChatUsecase(ctrl)
		hub := newTestHub()
		hub.SetChatUsecase(mockUC)

		c := connect(hub, uuid.New())
		drain(c)

		mockUC.EXPECT().
			SendMessage(gomock.Any(), chat.SendMessageCommand{
				ConversationID: convID,
				SenderID:       c.userID,
				Content:        "hey",
			}).
			Return(&chat.MessageDTO{ID: uuid.New()}, nil)

		hub.handleEvent(c, encode(t, EventSendMessage, SendMessageData{ChatID: convID, Content: "hey"}))

		assert.Empty(t, c.send, "delivery happens via the broadcast, not a direct reply")
	})

	t.Run("usecase failure is acked to the sender", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockUC := mocks.NewMockChatUsecase(ctrl)
		hub := newTestHub()
		hub.SetChatUsecase(mockUC)

		c := connect(hub, uuid.New())
		drain(c)

		mockUC.EXPECT().
			SendMessage(gomock.Any(), gomock.Any()).
			Return(nil, appErrors.ErrEmptyPayload)

		hub.handleEvent(c, encode(t, EventSendMessage, SendMessageData{ChatID: convID}))

		ev := takeEvent(t, c)
		assert.Equal(t, EventError, ev.Type)

		var ack ErrorData
		require.NoError(t, json.Unmarshal(ev.Data, &ack))
		assert.Equal(t, string(appErrors.CodeInvalidArgument), ack.Code)
	})

	t.Run("malformed payload is acked", func(t *testing.T) {
		hub := newTestHub()
		hub.SetChatUsecase(mocks.NewMockChatUsecase(gomock.NewController(t)))

		c := connect(hub, uuid.New())
		drain(c)

		hub.handleEvent(c, []byte(`{"type":"sendMessage","data":"not an object"}`))

		ev := takeEvent(t, c)
		assert.Equal(t, EventError, ev.Type)
	})

	t.Run("unknown event type is acked", func(t *testing.T) {
		hub := newTestHub()
		hub.SetChatUsecase(mocks.NewMockChatUsecase(gomock.NewController(t)))

		c := connect(hub, uuid.New())
		drain(c)

		hub.handleEvent(c, []byte(`{"type":"typing","data":{}}`))

		ev := takeEvent(t, c)
		assert.Equal(t, EventError, ev.Type)
	})
}

func Test_Unregister_LeavesRooms(t *testing.T) {
	hub := newTestHub()
	convID := uuid.New()

	c := connect(hub, uuid.New())
	hub.join(convID, c)
	hub.unregister(c)

	hub.mu.RLock()
	_, roomExists := hub.rooms[convID]
	hub.mu.RUnlock()
	assert.False(t, roomExists, "empty rooms are reaped")

	// broadcasting to the gone room must be a no-op
	hub.BroadcastMessage(convID, &chat.MessageDTO{ID: uuid.New()})
}
