package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ContextKeyUserID is the gin context key holding the authenticated user id.
const ContextKeyUserID = "auth_user_id"

const (
	msgTokenRequired = "authorization token is required"
	msgTokenInvalid  = "invalid or expired token"
)

// Middleware gates routes behind a bearer token.
type Middleware struct {
	tokens *TokenManager
}

func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireToken rejects requests without a valid "Authorization: Bearer" token
// and stores the token's user id in the context otherwise.
func (m *Middleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, msgTokenRequired)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, msgTokenInvalid)
			return
		}

		claims, err := m.tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			logrus.WithError(err).WithField("path", c.Request.URL.Path).Debug("Rejected bearer token")
			abortUnauthorized(c, msgTokenInvalid)
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status": "failed",
		"msg":    msg,
	})
}

// GetUserID returns the authenticated user's id, or "" on unauthenticated routes.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}
