package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"veritas-dashboard/internal/actions"
	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/middleware"
)

// feedActions builds the action handler set for one request. The HTTP
// action endpoints hold no page state, so no view is attached; the
// flagged counter is shared so the summary widget tracks flags across
// requests.
func (h *Handler) feedActions() *actions.Feed {
	return actions.NewFeed(h.api, nil, h.flaggedCount)
}

// FlagPost toggles the flag on a post. The response body is the upstream's
// authoritative flag state, not the caller's guess.
func (h *Handler) FlagPost(c echo.Context) error {
	result, err := h.feedActions().ToggleFlag(c.Request().Context(), middleware.GetToken(c), c.Param("id"))
	if err != nil {
		return attachRequestID(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// DismissPost removes a post from the active feed.
func (h *Handler) DismissPost(c echo.Context) error {
	if err := h.feedActions().Dismiss(c.Request().Context(), middleware.GetToken(c), c.Param("id")); err != nil {
		return attachRequestID(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeletePost permanently deletes a post.
func (h *Handler) DeletePost(c echo.Context) error {
	if err := h.feedActions().Delete(c.Request().Context(), middleware.GetToken(c), c.Param("id")); err != nil {
		return attachRequestID(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type statusUpdate struct {
	Status string `json:"status"`
}

// UpdatePostStatus moves a flagged item through the review workflow.
// Unknown statuses are rejected before any upstream call.
func (h *Handler) UpdatePostStatus(c echo.Context) error {
	var body statusUpdate
	if err := c.Bind(&body); err != nil {
		return apperr.Validation("request body must be JSON with a status field")
	}
	if !actions.ValidStatus(body.Status) {
		return apperr.Validation("status must be one of pending, escalated, reviewed")
	}

	review := actions.NewReview(h.api, nil)
	if err := review.UpdateStatus(c.Request().Context(), middleware.GetToken(c), c.Param("id"), body.Status); err != nil {
		return attachRequestID(c, err)
	}
	return c.JSON(http.StatusOK, body)
}
