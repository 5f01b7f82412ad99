package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"geminid-connect/internal/auth"
)

const phoneContextKey = "phone"

func PhoneFromContext(c *gin.Context) (string, bool) {
	phone, ok := c.Get(phoneContextKey)
	if !ok {
		return "", false
	}
	value, ok := phone.(string)
	return value, ok && value != ""
}

// TokenFromRequest pulls the session token from the token cookie or, failing
// that, from a bearer Authorization header.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func RequireAuth(cfg auth.TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			c.Abort()
			return
		}

		claims, err := auth.VerifyToken(token, cfg)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(phoneContextKey, claims.Phone)
		c.Next()
	}
}
