package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/chat"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/middleware"
	appErrors "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

// Handlers is the REST surface over conversations and messages. It is
// the fallback path for clients without a live websocket; sends landing
// here still fan out through the realtime hub.
type Handlers struct {
	chats  chat.ChatUsecase
	logger logger.Logger
}

func NewHandlers(chats chat.ChatUsecase, logger logger.Logger) *Handlers {
	return &Handlers{chats: chats, logger: logger}
}

func (h *Handlers) Register(r gin.IRouter) {
	r.POST("/chats/start", h.StartConversation)
	r.GET("/chats", h.ListConversations)
	r.DELETE("/chats/:chatId", h.DeleteConversation)
	r.GET("/chats/:chatId/messages", h.ListMessages)
	r.POST("/chats/:chatId/messages", h.SendMessage)
	r.POST("/chats/:chatId/images", h.SendImage)
	r.PUT("/chats/:chatId/messages/:messageId", h.EditMessage)
	r.DELETE("/chats/:chatId/messages/:messageId", h.DeleteMessage)
}

type startConversationRequest struct {
	ParticipantID uuid.UUID `json:"participantId" binding:"required"`
}

func (h *Handlers) StartConversation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}

	var req startConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, appErrors.InvalidArg("participantId is required"))
		return
	}

	conv, err := h.chats.StartConversation(c.Request.Context(), userID, req.ParticipantID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}

func (h *Handlers) ListConversations(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}

	convs, err := h.chats.ListConversations(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": convs})
}

func (h *Handlers) DeleteConversation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}
	chatID, err := uuid.Parse(c.Param("chatId"))
	if err != nil {
		abortWithError(c, appErrors.InvalidArg("invalid chat id"))
		return
	}

	report, err := h.chats.DeleteConversation(c.Request.Context(), chatID, userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if n := report.FailedImages(); n > 0 {
		h.logger.Warnf("chat delete %s left %d orphaned images", chatID, n)
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted", "cleanup": report})
}

type sendMessageRequest struct {
	Content    string `json:"content"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"data"`
	ImageURL   string `json:"imageUrl"`
}

func (h *Handlers) SendMessage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}
	chatID, err := uuid.Parse(c.Param("chatId"))
	if err != nil {
		abortWithError(c, appErrors.InvalidArg("invalid chat id"))
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, appErrors.InvalidArg("malformed message body"))
		return
	}

	msg, err := h.chats.SendMessage(c.Request.Context(), chat.SendMessageCommand{
		ConversationID: chatID,
		SenderID:       userID,
		Content:        req.Content,
		Nonce:          req.Nonce,
		Ciphertext:     req.Ciphertext,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handlers) SendImage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}
	chatID, err := uuid.Parse(c.Param("chatId"))
	if err != nil {
		abortWithError(c, appErrors.InvalidArg("invalid chat id"))
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		abortWithError(c, appErrors.InvalidArg("image file is required"))
		return
	}
	src, err := file.Open()
	if err != nil {
		abortWithError(c, appErrors.Wrap(appErrors.CodeInternal, "could not open upload", err))
		return
	}
	defer src.Close()

	msg, err := h.chats.SendImageMessage(c.Request.Context(), chat.SendImageCommand{
		ConversationID: chatID,
		SenderID:       userID,
		FileName:       file.Filename,
		ContentType:    file.Header.Get("Content-Type"),
		Size:           file.Size,
		Reader:         src,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handlers) ListMessages(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}
	chatID, err := uuid.Parse(c.Param("chatId"))
	if err != nil {
		abortWithError(c, appErrors.InvalidArg("invalid chat id"))
		return
	}

	page, err := parsePage(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	msgs, err := h.chats.ListMessages(c.Request.Context(), chatID, userID, page)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type editMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handlers) EditMessage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}
	chatID, err := uuid.Parse(c.Param("chatId"))
	if err != nil {
		abortWithError(c, appErrors.InvalidArg("invalid chat id"))
		return
	}
	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		abortWithError(c, appErrors.InvalidArg("invalid message id"))
		return
	}

	var req editMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, appErrors.InvalidArg("content is required"))
		return
	}

	msg, err := h.chats.EditMessage(c.Request.Context(), chatID, messageID, userID, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handlers) DeleteMessage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}
	chatID, err := uuid.Parse(c.Param("chatId"))
	if err != nil {
		abortWithError(c, appErrors.InvalidArg("invalid chat id"))
		return
	}
	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		abortWithError(c, appErrors.InvalidArg("invalid message id"))
		return
	}

	if err := h.chats.DeleteMessage(c.Request.Context(), chatID, messageID, userID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func parsePage(c *gin.Context) (chat.Page, error) {
	var page chat.Page
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return page, appErrors.InvalidArg("limit must be a non-negative integer")
		}
		page.Limit = limit
	}
	if raw := c.Query("before"); raw != "" {
		before, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return page, appErrors.InvalidArg("before must be an RFC3339 timestamp")
		}
		page.Before = &before
	}
	return page, nil
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(appErrors.HTTPStatus(err), gin.H{"error": appErrors.MessageOf(err)})
}
