package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the upstream API and hands the UI its token.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("request body must be JSON credentials")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperr.Validation("email and password are required")
	}

	result, err := h.api.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return attachRequestID(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Register creates a reviewer account upstream.
func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("request body must be JSON credentials")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperr.Validation("name, email and password are required")
	}

	if err := h.api.Register(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		return attachRequestID(c, err)
	}
	return c.NoContent(http.StatusCreated)
}

// Logout drops the cached gate entry for the caller's token. The token
// itself stays valid upstream until it expires; logout is a UI state
// change.
func (h *Handler) Logout(c echo.Context) error {
	h.sessions.Forget(middleware.BearerToken(c))
	return c.NoContent(http.StatusNoContent)
}

// sessionResponse is the gate check the UI polls to decide whether to show
// the login modal. User is null whenever the token is absent or lapsed.
type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
}

// Session answers the gate check. Unlike protected routes it never 401s;
// a dead session is data the modal renders, not an error.
func (h *Handler) Session(c echo.Context) error {
	s, err := h.sessions.Resolve(middleware.BearerToken(c))
	if err != nil {
		return c.JSON(http.StatusOK, sessionResponse{Authenticated: false, User: nil})
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Authenticated: true,
		User:          &s.User,
		ExpiresAt:     &s.ExpiresAt,
	})
}
