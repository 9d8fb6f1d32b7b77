// Package auth issues admin tokens for the cache management endpoints.
package auth

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/project-samarth/core/internal/pkg/jwt"
	"github.com/project-samarth/core/internal/pkg/response"
)

const tokenTTL = 7 * 24 * time.Hour

type Handler struct {
	adminPassword string
	logger        *zap.Logger
}

func NewHandler(adminPassword string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{adminPassword: adminPassword, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.login)
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		response.BadRequest(c, "password required")
		return
	}
	if h.adminPassword == "" || !h.verify(req.Password) {
		response.Unauthorized(c)
		return
	}

	token, err := jwt.Sign("admin", tokenTTL)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"token": token, "expires_in": int64(tokenTTL.Seconds())})
}

// verify accepts either a bcrypt hash or a plaintext password in config;
// plaintext is compared in constant time.
func (h *Handler) verify(password string) bool {
	if strings.HasPrefix(h.adminPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(h.adminPassword), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.adminPassword), []byte(password)) == 1
}
