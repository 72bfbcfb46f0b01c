package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/config"
	appErrors "github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/errors"
	"github.com/jasamansinghchaggar/freelancer-marketplace-sub000/pkg/utils"
)

const userIDKey = "auth.userID"

// AuthRequired verifies the session token and stashes the caller's
// identity in the request context. Handlers read it back with UserID.
func AuthRequired(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": appErrors.MessageOf(appErrors.ErrMissingToken)})
			return
		}

		userID, err := utils.ParseJWTToken(token, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": appErrors.MessageOf(err)})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated identity set by AuthRequired.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// ExtractToken checks the places clients put the session token: cookie
// for browsers, Authorization header for API clients, query param for
// websocket libraries that can set neither.
func ExtractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	if auth := c.GetHeader("Authorization"); auth != "" {
		if rest, found := strings.CutPrefix(auth, "Bearer "); found {
			return rest
		}
	}
	return c.Query("token")
}
