package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat"
	models "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/model"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat/repository"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/presence"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user"
	userModels "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user/model"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

type ChatUsecase struct {
	repo        chat.ChatRepository
	users       user.UserRepository
	images      chat.ImageStore
	broadcaster chat.Broadcaster
	presence    *presence.Tracker
	logger      logger.Logger
}

func NewChatUsecase(
	repo chat.ChatRepository,
	users user.UserRepository,
	images chat.ImageStore,
	broadcaster chat.Broadcaster,
	presence *presence.Tracker,
	logger logger.Logger,
) *ChatUsecase {
	return &ChatUsecase{
		repo:        repo,
		users:       users,
		images:      images,
		broadcaster: broadcaster,
		presence:    presence,
		logger:      logger,
	}
}

func (uc *ChatUsecase) StartConversation(ctx context.Context, userID, participantID uuid.UUID) (*chat.ConversationDTO, error) {
	if userID == participantID {
		return nil, errors.ErrSelfConversation
	}

	peer, err := uc.users.GetUserByID(ctx, participantID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	conv, err := uc.repo.FindOrCreateConversation(ctx, userID, participantID)
	if err != nil {
		uc.logger.Error("find-or-create conversation failed", "user_id", userID, "participant_id", participantID, "err", err)
		return nil, errors.Internal("failed to start conversation")
	}

	return uc.toConversationDTO(conv, peer), nil
}

func (uc *ChatUsecase) ListConversations(ctx context.Context, userID uuid.UUID) ([]chat.ConversationDTO, error) {
	convs, err := uc.repo.ListConversationsForUser(ctx, userID)
	if err != nil {
		uc.logger.Error("list conversations failed", "user_id", userID, "err", err)
		return nil, errors.Internal("failed to list conversations")
	}

	peerIDs := make([]uuid.UUID, 0, len(convs))
	for i := range convs {
		if peer, ok := convs[i].OtherParticipant(userID); ok {
			peerIDs = append(peerIDs, peer)
		}
	}

	peers, err := uc.users.GetUsersByIDs(ctx, peerIDs)
	if err != nil {
		uc.logger.Error("conversation enrichment failed", "user_id", userID, "err", err)
		return nil, errors.Internal("failed to list conversations")
	}
	byID := make(map[uuid.UUID]*userModels.User, len(peers))
	for i := range peers {
		byID[peers[i].ID] = &peers[i]
	}

	out := make([]chat.ConversationDTO, 0, len(convs))
	for i := range convs {
		peerID, ok := convs[i].OtherParticipant(userID)
		if !ok {
			uc.logger.Warn("conversation with corrupt participant pair", "conversation_id", convs[i].ID)
			continue
		}
		out = append(out, *uc.toConversationDTO(&convs[i], byID[peerID]))
	}
	return out, nil
}

func (uc *ChatUsecase) DeleteConversation(ctx context.Context, conversationID, userID uuid.UUID) (*chat.CleanupReport, error) {
	conv, err := uc.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, uc.conversationError(conversationID, err)
	}
	if !conv.HasParticipant(userID) {
		return nil, errors.ErrNotParticipant
	}

	keys, err := uc.repo.ListImageObjects(ctx, conversationID)
	if err != nil {
		// Losing the key list would orphan objects silently; better to
		// fail the delete than to leak without a trace.
		uc.logger.Error("image listing before cascade failed", "conversation_id", conversationID, "err", err)
		return nil, errors.ErrDeleteFailed(err)
	}

	msgs, err := uc.repo.ListMessages(ctx, conversationID, 0, nil)
	if err != nil {
		return nil, errors.ErrDeleteFailed(err)
	}

	report := &chat.CleanupReport{MessagesDeleted: len(msgs)}
	for _, key := range keys {
		outcome := chat.ImageCleanupOutcome{ObjectKey: key, Deleted: true}
		if err := uc.images.Remove(ctx, key); err != nil {
			uc.logger.Warn("image delete failed during cascade", "object_key", key, "err", err)
			outcome.Deleted = false
			outcome.Error = err.Error()
		}
		report.Images = append(report.Images, outcome)
	}

	if err := uc.repo.DeleteConversation(ctx, conversationID); err != nil {
		uc.logger.Error("conversation delete failed", "conversation_id", conversationID, "err", err)
		return nil, uc.conversationError(conversationID, err)
	}
	return report, nil
}

func (uc *ChatUsecase) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (*chat.MessageDTO, error) {
	if err := validatePayload(cmd); err != nil {
		return nil, err
	}

	conv, err := uc.repo.GetConversation(ctx, cmd.ConversationID)
	if err != nil {
		return nil, uc.conversationError(cmd.ConversationID, err)
	}
	if !conv.HasParticipant(cmd.SenderID) {
		return nil, errors.ErrNotParticipant
	}
	receiverID, ok := conv.OtherParticipant(cmd.SenderID)
	if !ok {
		return nil, errors.ErrCorruptParticipants
	}

	msg := &models.Message{
		ConversationID: cmd.ConversationID,
		SenderID:       cmd.SenderID,
		ReceiverID:     receiverID,
		Content:        cmd.Content,
		Nonce:          cmd.Nonce,
		Ciphertext:     cmd.Ciphertext,
		ImageURL:       cmd.ImageURL,
		ImageObjectKey: cmd.ImageObjectKey,
		CreatedAt:      time.Now().UTC(),
	}
	if err := uc.repo.InsertMessage(ctx, msg); err != nil {
		uc.logger.Error("message insert failed", "conversation_id", cmd.ConversationID, "sender_id", cmd.SenderID, "err", err)
		return nil, errors.ErrSendFailed(err)
	}

	dto := toMessageDTO(msg)

	// Fan-out is synchronous after persistence so room delivery order
	// matches store order.
	uc.broadcaster.BroadcastMessage(cmd.ConversationID, dto)

	return dto, nil
}

func (uc *ChatUsecase) SendImageMessage(ctx context.Context, cmd chat.SendImageCommand) (*chat.MessageDTO, error) {
	// authorization runs before the upload so a rejected send never
	// leaves an orphaned object behind
	conv, err := uc.repo.GetConversation(ctx, cmd.ConversationID)
	if err != nil {
		return nil, uc.conversationError(cmd.ConversationID, err)
	}
	if !conv.HasParticipant(cmd.SenderID) {
		return nil, errors.ErrNotParticipant
	}

	objectKey := uuid.New().String()
	url, err := uc.images.Put(ctx, objectKey, cmd.Reader, cmd.Size, cmd.ContentType)
	if err != nil {
		uc.logger.Error("image upload failed", "conversation_id", cmd.ConversationID, "err", err)
		return nil, errors.Internal("image upload failed")
	}

	return uc.SendMessage(ctx, chat.SendMessageCommand{
		ConversationID: cmd.ConversationID,
		SenderID:       cmd.SenderID,
		ImageURL:       url,
		ImageObjectKey: objectKey,
	})
}

func (uc *ChatUsecase) ListMessages(ctx context.Context, conversationID, userID uuid.UUID, page chat.Page) ([]chat.MessageDTO, error) {
	conv, err := uc.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, uc.conversationError(conversationID, err)
	}
	if !conv.HasParticipant(userID) {
		return nil, errors.ErrNotParticipant
	}

	msgs, err := uc.repo.ListMessages(ctx, conversationID, page.Limit, page.Before)
	if err != nil {
		uc.logger.Error("message listing failed", "conversation_id", conversationID, "err", err)
		return nil, errors.Internal("failed to list messages")
	}

	// Fetching history implies the reader has seen the peer's messages.
	if err := uc.repo.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		uc.logger.Warn("mark-read failed", "conversation_id", conversationID, "reader_id", userID, "err", err)
	}

	out := make([]chat.MessageDTO, 0, len(msgs))
	for i := range msgs {
		out = append(out, *toMessageDTO(&msgs[i]))
	}
	return out, nil
}

func (uc *ChatUsecase) EditMessage(ctx context.Context, conversationID, messageID, userID uuid.UUID, content string) (*chat.MessageDTO, error) {
	if content == "" {
		return nil, errors.InvalidArg("content is required")
	}

	msg, err := uc.repo.GetMessage(ctx, conversationID, messageID)
	if err != nil {
		return nil, uc.messageError(messageID, err)
	}
	if msg.SenderID != userID {
		return nil, errors.ErrNotMessageSender
	}

	updated, err := uc.repo.UpdateMessageContent(ctx, conversationID, messageID, content)
	if err != nil {
		uc.logger.Error("message edit failed", "message_id", messageID, "err", err)
		return nil, uc.messageError(messageID, err)
	}
	return toMessageDTO(updated), nil
}

func (uc *ChatUsecase) DeleteMessage(ctx context.Context, conversationID, messageID, userID uuid.UUID) error {
	conv, err := uc.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return uc.conversationError(conversationID, err)
	}
	if !conv.HasParticipant(userID) {
		return errors.ErrNotParticipant
	}

	msg, err := uc.repo.GetMessage(ctx, conversationID, messageID)
	if err != nil {
		return uc.messageError(messageID, err)
	}

	// Best-effort: an unreachable image store must not block the record
	// delete, but the orphaned object is logged.
	if msg.ImageObjectKey != "" {
		if err := uc.images.Remove(ctx, msg.ImageObjectKey); err != nil {
			uc.logger.Warn("image delete failed, record delete proceeds", "object_key", msg.ImageObjectKey, "err", err)
		}
	}

	if err := uc.repo.DeleteMessage(ctx, conversationID, messageID); err != nil {
		uc.logger.Error("message delete failed", "message_id", messageID, "err", err)
		return uc.messageError(messageID, err)
	}
	return nil
}

func (uc *ChatUsecase) IsParticipant(ctx context.Context, conversationID, userID uuid.UUID) (bool, error) {
	conv, err := uc.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return false, uc.conversationError(conversationID, err)
	}
	return conv.HasParticipant(userID), nil
}

func validatePayload(cmd chat.SendMessageCommand) error {
	if (len(cmd.Nonce) > 0) != (len(cmd.Ciphertext) > 0) {
		return errors.ErrPartialCipher
	}
	probe := models.Message{Content: cmd.Content, Ciphertext: cmd.Ciphertext, ImageURL: cmd.ImageURL}
	if !probe.HasPayload() {
		return errors.ErrEmptyPayload
	}
	return nil
}

func (uc *ChatUsecase) conversationError(id uuid.UUID, err error) error {
	if errors.Is(err, repository.ErrConversationNotFound) {
		return errors.ErrConversationNotFound
	}
	uc.logger.Error("conversation lookup failed", "conversation_id", id, "err", err)
	return errors.Internal("internal server error")
}

func (uc *ChatUsecase) messageError(id uuid.UUID, err error) error {
	if errors.Is(err, repository.ErrMessageNotFound) {
		return errors.ErrMessageNotFound
	}
	uc.logger.Error("message lookup failed", "message_id", id, "err", err)
	return errors.Internal("internal server error")
}

func (uc *ChatUsecase) toConversationDTO(conv *models.Conversation, peer *userModels.User) *chat.ConversationDTO {
	dto := &chat.ConversationDTO{
		ID:        conv.ID,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
	if peer != nil {
		online, lastSeen := uc.presence.Get(peer.ID)
		dto.Participant = &user.ProfileDTO{
			ID:          peer.ID,
			Username:    peer.Username,
			DisplayName: peer.Name,
			PublicKey:   peer.PublicKey,
			Online:      online,
			LastSeen:    lastSeen,
		}
	}
	if conv.LastMessageAt != nil {
		dto.LastMessage = &chat.LastMessageDTO{
			Content:    conv.LastContent,
			Nonce:      conv.LastNonce,
			Ciphertext: conv.LastCiphertext,
			ImageURL:   conv.LastImageURL,
			SenderID:   conv.LastSenderID,
			Timestamp:  conv.LastMessageAt,
		}
	}
	return dto
}

func toMessageDTO(m *models.Message) *chat.MessageDTO {
	return &chat.MessageDTO{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ReceiverID:     m.ReceiverID,
		Content:        m.Content,
		Nonce:          m.Nonce,
		Ciphertext:     m.Ciphertext,
		ImageURL:       m.ImageURL,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
