package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/middleware"
)

type chatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
}

// Chat relays an assistant conversation turn upstream and returns the
// assistant's reply.
func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("request body must be a JSON message list")
	}
	if len(req.Messages) == 0 {
		return apperr.Validation("at least one message is required")
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != domain.RoleUser || strings.TrimSpace(last.Content) == "" {
		return apperr.Validation("the last message must be a non-empty user turn")
	}

	reply, err := h.api.Chat(c.Request().Context(), middleware.GetToken(c), req.Messages)
	if err != nil {
		return attachRequestID(c, err)
	}
	return c.JSON(http.StatusOK, reply)
}

// ChatHistory returns the stored assistant transcript.
func (h *Handler) ChatHistory(c echo.Context) error {
	history, err := h.api.ChatHistory(c.Request().Context(), middleware.GetToken(c))
	if err != nil {
		return attachRequestID(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]domain.ChatMessage{"messages": history})
}
