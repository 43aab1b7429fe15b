package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/souma9830/travel-agency-website/internal/services"
)

// ContextUserID is the gin context key carrying the authenticated user id.
const ContextUserID = "user_id"

// UserAuth reads the session token from the custom `token` header (the
// frontend does not use an Authorization/Bearer scheme), verifies it and
// attaches the resolved user id to the request context.
func UserAuth(tokens services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := strings.TrimSpace(c.GetHeader("token"))
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized, login again",
			})
			return
		}

		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
