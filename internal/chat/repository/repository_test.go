package repository

import (
	"context"
	"database/sql"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	models "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/model"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

var testDB *bun.DB

func TestMain(m *testing.M) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("parley"),
		postgres.WithUsername("parley"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	defer func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}()

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		log.Printf("failed to get connection string, %v", err)
	}

	connector := pgdriver.NewConnector(pgdriver.WithDSN(connStr))
	sqlDB := sql.OpenDB(connector)
	testDB = bun.NewDB(sqlDB, pgdialect.New())

	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	tables := []any{
		(*models.Conversation)(nil),
		(*models.Message)(nil),
	}
	for _, t := range tables {
		if _, err := testDB.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			testDB.Close()
			log.Fatalf("failed to create table for %T: %v", t, err)
		}
	}

	code := m.Run()

	testDB.Close()

	os.Exit(code)
}

func truncate(t *testing.T) {
	t.Cleanup(func() {
		_, err := testDB.ExecContext(context.Background(), `TRUNCATE TABLE messages, conversations`)
		require.NoError(t, err)
	})
}

func Test_FindOrCreateConversation_Idempotent(t *testing.T) {
	truncate(t)
	repo := NewChatRepository(testDB, logger.Logger{})
	alice, bob := uuid.New(), uuid.New()

	first, err := repo.FindOrCreateConversation(context.Background(), alice, bob)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first.ID)

	// same pair, reversed order
	second, err := repo.FindOrCreateConversation(context.Background(), bob, alice)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	count, err := testDB.NewSelect().Model((*models.Conversation)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func Test_FindOrCreateConversation_ConcurrentRace(t *testing.T) {
	truncate(t)
	repo := NewChatRepository(testDB, logger.Logger{})
	alice, bob := uuid.New(), uuid.New()

	const callers = 8
	ids := make([]uuid.UUID, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conv, err := repo.FindOrCreateConversation(context.Background(), alice, bob)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = conv.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
	}

	for i := 1; i < callers; i++ {
		assert.Equal(t, ids[0], ids[i], "racing callers must converge on one conversation")
	}

	count, err := testDB.NewSelect().Model((*models.Conversation)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func Test_InsertMessage_UpdatesPreview(t *testing.T) {
	truncate(t)
	repo := NewChatRepository(testDB, logger.Logger{})
	alice, bob := uuid.New(), uuid.New()

	conv, err := repo.FindOrCreateConversation(context.Background(), alice, bob)
	require.NoError(t, err)

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       alice,
		ReceiverID:     bob,
		Content:        "hello",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.InsertMessage(context.Background(), msg))
	require.NotEqual(t, uuid.Nil, msg.ID)

	got, err := repo.GetConversation(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.LastContent)
	require.NotNil(t, got.LastSenderID)
	assert.Equal(t, alice, *got.LastSenderID)
	require.NotNil(t, got.LastMessageAt)
	assert.False(t, got.UpdatedAt.Before(conv.UpdatedAt))
}

func Test_ListMessages_Ordering(t *testing.T) {
	truncate(t)
	repo := NewChatRepository(testDB, logger.Logger{})
	alice, bob := uuid.New(), uuid.New()

	conv, err := repo.FindOrCreateConversation(context.Background(), alice, bob)
	require.NoError(t, err)

	base := time.Now().UTC().Truncate(time.Millisecond)
	for i := 0; i < 5; i++ {
		sender, receiver := alice, bob
		if i%2 == 1 {
			sender, receiver = bob, alice
		}
		msg := &models.Message{
			ConversationID: conv.ID,
			SenderID:       sender,
			ReceiverID:     receiver,
			Content:        string(rune('a' + i)),
			CreatedAt:      base.Add(time.Duration(i) * time.Millisecond),
		}
		require.NoError(t, repo.InsertMessage(context.Background(), msg))
	}

	msgs, err := repo.ListMessages(context.Background(), conv.ID, 0, nil)
	require.NoError(t, err)
	require.Len(t, msgs, 5)
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt))
	}
	assert.Equal(t, "a", msgs[0].Content)
	assert.Equal(t, "e", msgs[4].Content)

	// cursor pagination
	limited, err := repo.ListMessages(context.Background(), conv.ID, 2, nil)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "a", limited[0].Content)

	cutoff := base.Add(3 * time.Millisecond)
	before, err := repo.ListMessages(context.Background(), conv.ID, 0, &cutoff)
	require.NoError(t, err)
	require.Len(t, before, 3)
}

func Test_DeleteConversation_Cascades(t *testing.T) {
	truncate(t)
	repo := NewChatRepository(testDB, logger.Logger{})
	alice, bob := uuid.New(), uuid.New()

	conv, err := repo.FindOrCreateConversation(context.Background(), alice, bob)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		msg := &models.Message{
			ConversationID: conv.ID,
			SenderID:       alice,
			ReceiverID:     bob,
			Content:        "m",
			CreatedAt:      time.Now().UTC(),
		}
		if i == 0 {
			msg.Content = ""
			msg.ImageURL = "https://cdn.example/img"
			msg.ImageObjectKey = "obj-1"
		}
		require.NoError(t, repo.InsertMessage(context.Background(), msg))
	}

	keys, err := repo.ListImageObjects(context.Background(), conv.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"obj-1"}, keys)

	require.NoError(t, repo.DeleteConversation(context.Background(), conv.ID))

	_, err = repo.GetConversation(context.Background(), conv.ID)
	assert.ErrorIs(t, err, ErrConversationNotFound)

	msgs, err := repo.ListMessages(context.Background(), conv.ID, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	// deleting again reports NotFound
	assert.ErrorIs(t, repo.DeleteConversation(context.Background(), conv.ID), ErrConversationNotFound)
}

func Test_MessageEditAndDelete(t *testing.T) {
	truncate(t)
	repo := NewChatRepository(testDB, logger.Logger{})
	alice, bob := uuid.New(), uuid.New()

	conv, err := repo.FindOrCreateConversation(context.Background(), alice, bob)
	require.NoError(t, err)

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       alice,
		ReceiverID:     bob,
		Content:        "typo",
		CreatedAt:      time.Now().UTC(),
	}
	require.NoError(t, repo.InsertMessage(context.Background(), msg))

	updated, err := repo.UpdateMessageContent(context.Background(), conv.ID, msg.ID, "fixed")
	require.NoError(t, err)
	assert.Equal(t, "fixed", updated.Content)

	// a message id under the wrong conversation is NotFound
	_, err = repo.UpdateMessageContent(context.Background(), uuid.New(), msg.ID, "nope")
	assert.ErrorIs(t, err, ErrMessageNotFound)

	require.NoError(t, repo.DeleteMessage(context.Background(), conv.ID, msg.ID))
	assert.ErrorIs(t, repo.DeleteMessage(context.Background(), conv.ID, msg.ID), ErrMessageNotFound)
}

func Test_MarkMessagesRead(t *testing.T) {
	truncate(t)
	repo := NewChatRepository(testDB, logger.Logger{})
	alice, bob := uuid.New(), uuid.New()

	conv, err := repo.FindOrCreateConversation(context.Background(), alice, bob)
	require.NoError(t, err)

	inbound := &models.Message{ConversationID: conv.ID, SenderID: bob, ReceiverID: alice, Content: "hi", CreatedAt: time.Now().UTC()}
	outbound := &models.Message{ConversationID: conv.ID, SenderID: alice, ReceiverID: bob, Content: "yo", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.InsertMessage(context.Background(), inbound))
	require.NoError(t, repo.InsertMessage(context.Background(), outbound))

	require.NoError(t, repo.MarkMessagesRead(context.Background(), conv.ID, alice))

	msgs, err := repo.ListMessages(context.Background(), conv.ID, 0, nil)
	require.NoError(t, err)
	for _, m := range msgs {
		if m.ReceiverID == alice {
			assert.True(t, m.IsRead)
		} else {
			assert.False(t, m.IsRead)
		}
	}
}
