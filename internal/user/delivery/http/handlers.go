package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/middleware"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/user"
	appErrors "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
)

// Handlers exposes the user directory: profile lookup for starting a
// chat, and the public-key upload peers need for key agreement.
type Handlers struct {
	users  user.UserUsecase
	logger logger.Logger
}

func NewHandlers(users user.UserUsecase, logger logger.Logger) *Handlers {
	return &Handlers{users: users, logger: logger}
}

func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/users/me", h.Me)
	r.GET("/users/:username", h.GetByUsername)
	r.PUT("/users/me/key", h.UploadPublicKey)
}

func (h *Handlers) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handlers) GetByUsername(c *gin.Context) {
	profile, err := h.users.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type uploadKeyRequest struct {
	PublicKey string `json:"publicKey" binding:"required"`
}

func (h *Handlers) UploadPublicKey(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		abortWithError(c, appErrors.ErrMissingToken)
		return
	}

	var req uploadKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, appErrors.InvalidArg("publicKey is required"))
		return
	}

	err := h.users.UploadPublicKey(c.Request.Context(), user.UploadPublicKeyCommand{
		UserID:    userID,
		PublicKey: req.PublicKey,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "public key stored"})
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(appErrors.HTTPStatus(err), gin.H{"error": appErrors.MessageOf(err)})
}
