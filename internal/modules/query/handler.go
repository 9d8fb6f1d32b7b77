package query

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/project-samarth/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/query", h.ask)
}

type askRequest struct {
	Question string `json:"question"`
	APIKey   string `json:"api_key"`
}

func (h *Handler) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		response.BadRequest(c, "No question provided")
		return
	}

	res, err := h.svc.Ask(c.Request.Context(), req.Question, req.APIKey)
	if err != nil {
		if errors.Is(err, ErrAINotConfigured) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, res)
}
