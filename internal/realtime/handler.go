package realtime

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/config"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/internal/middleware"
	appErrors "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/logger"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/utils"
)

// Handler upgrades authenticated HTTP requests to websocket connections
// and hands them to the hub.
type Handler struct {
	hub      *Hub
	cfg      config.Config
	logger   logger.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, cfg config.Config, logger logger.Logger) *Handler {
	h := &Handler{hub: hub, cfg: cfg, logger: logger}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.cfg.Websocket.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// Serve handles GET /ws. Authentication happens before the upgrade so a
// bad token gets a proper 401 instead of a websocket close frame.
func (h *Handler) Serve(c *gin.Context) {
	token := middleware.ExtractToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": appErrors.MessageOf(appErrors.ErrMissingToken)})
		return
	}

	userID, err := utils.ParseJWTToken(token, h.cfg)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": appErrors.MessageOf(err)})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.logger.Warnf("realtime: upgrade failed for user %s: %v", userID, err)
		return
	}

	client := newClient(h.hub, conn, userID, h.cfg.Websocket.SendBufferSize)
	h.hub.register(client)

	go client.writePump()
	go client.readPump()
}
