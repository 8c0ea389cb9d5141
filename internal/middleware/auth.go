package middleware

import (
	"net/http"
	"strings"

	"taskflow/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const contextKeyUserID = "user_id"

// RequireAuth extracts a token from the x-auth-token header or an
// Authorization Bearer header, verifies it, and attaches the resolved user id
// to the request context. Requests without a valid token are rejected with 401.
func RequireAuth(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("x-auth-token")
		if tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "No token, authorization denied",
			})
			return
		}

		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Token is not valid",
			})
			return
		}

		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}

// UserID returns the caller identity set by RequireAuth, or uuid.Nil if the
// request never passed the auth gate.
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
