package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/project-samarth/core/internal/pkg/jwt"
	"github.com/project-samarth/core/internal/pkg/response"
)

const ContextKeySubject = "auth_subject"

// Auth returns a middleware that enforces JWT authentication on admin routes.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.Parse(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeySubject, claims.Subject)
		c.Next()
	}
}

// CurrentSubject extracts the authenticated subject from context.
func CurrentSubject(c *gin.Context) string {
	v, _ := c.Get(ContextKeySubject)
	s, _ := v.(string)
	return s
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
