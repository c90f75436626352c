package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/middleware"
	"veritas-dashboard/internal/sanitize"
)

func auditID(e domain.AuditEntry) string { return e.ID }

// Audit lists the reviewer action trail.
func (h *Handler) Audit(c echo.Context) error {
	fetch := func(ctx context.Context, token string, _ domain.FilterSet, page, limit int) ([]domain.AuditEntry, domain.Pagination, error) {
		return h.api.ListAudit(ctx, token, page, limit)
	}
	return runList(c, "/v1/audit", fetch, auditID, h.cfg.FeedPageSize)
}

type auditInput struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
	Detail   string `json:"detail"`
}

// RecordAudit appends an entry to the audit trail. The acting user comes
// from the session, never from the request body.
func (h *Handler) RecordAudit(c echo.Context) error {
	var input auditInput
	if err := c.Bind(&input); err != nil {
		return apperr.Validation("request body must be a JSON audit entry")
	}
	if strings.TrimSpace(input.Action) == "" {
		return apperr.Validation("audit action is required")
	}

	s := middleware.GetSession(c)
	entry := domain.AuditEntry{
		UserID:    s.User.ID,
		Action:    sanitize.Text(input.Action),
		Resource:  sanitize.Text(input.Resource),
		Detail:    sanitize.Text(input.Detail),
		Timestamp: time.Now().UTC(),
	}

	if err := h.api.RecordAudit(c.Request().Context(), middleware.GetToken(c), entry); err != nil {
		return attachRequestID(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}
