package handler

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/middleware"
	"veritas-dashboard/internal/sanitize"
)

const maxTopicNameLength = 120

func topicID(t domain.Topic) string { return t.ID }

// Topics lists the saved tracking topics.
func (h *Handler) Topics(c echo.Context) error {
	fetch := func(ctx context.Context, token string, _ domain.FilterSet, page, limit int) ([]domain.Topic, domain.Pagination, error) {
		return h.api.ListTopics(ctx, token, page, limit)
	}
	return runList(c, "/v1/topics", fetch, topicID, h.cfg.FeedPageSize)
}

// CreateTopic saves a new tracking topic and triggers its first data
// refresh without making the caller wait for it.
func (h *Handler) CreateTopic(c echo.Context) error {
	input, err := bindTopicInput(c)
	if err != nil {
		return err
	}

	topic, err := h.api.CreateTopic(c.Request().Context(), middleware.GetToken(c), input)
	if err != nil {
		return attachRequestID(c, err)
	}

	h.triggerRefresh(c, topic.ID)
	return c.JSON(http.StatusCreated, topic)
}

// UpdateTopic updates a topic and re-triggers its refresh.
func (h *Handler) UpdateTopic(c echo.Context) error {
	input, err := bindTopicInput(c)
	if err != nil {
		return err
	}

	topic, err := h.api.UpdateTopic(c.Request().Context(), middleware.GetToken(c), c.Param("id"), input)
	if err != nil {
		return attachRequestID(c, err)
	}

	h.triggerRefresh(c, topic.ID)
	return c.JSON(http.StatusOK, topic)
}

// DeleteTopic removes a topic.
func (h *Handler) DeleteTopic(c echo.Context) error {
	if err := h.api.DeleteTopic(c.Request().Context(), middleware.GetToken(c), c.Param("id")); err != nil {
		return attachRequestID(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// triggerRefresh kicks off the topic's data collection in the background.
// The save already succeeded; a failed refresh is logged and the topic
// picks up data on its next scheduled pass.
func (h *Handler) triggerRefresh(c echo.Context, topicID string) {
	token := middleware.GetToken(c)
	ctx := context.WithoutCancel(c.Request().Context())

	go func() {
		ctx, cancel := context.WithTimeout(ctx, h.cfg.UpstreamTimeout)
		defer cancel()
		if err := h.api.RefreshTopic(ctx, token, topicID); err != nil {
			h.logger.Warn("topic refresh trigger failed", "topic_id", topicID, "error", err)
		}
	}()
}

// bindTopicInput decodes and validates a topic payload. Invalid input is
// rejected before any upstream call is issued.
func bindTopicInput(c echo.Context) (domain.TopicInput, error) {
	var input domain.TopicInput
	if err := c.Bind(&input); err != nil {
		return input, apperr.Validation("request body must be a JSON topic")
	}

	input.Name = sanitize.Text(input.Name)
	input.Description = sanitize.Text(input.Description)
	for i, tag := range input.Tags {
		input.Tags[i] = sanitize.Text(tag)
	}

	if strings.TrimSpace(input.Name) == "" {
		return input, apperr.Validation("topic name is required")
	}
	if utf8.RuneCountInString(input.Name) > maxTopicNameLength {
		return input, apperr.Validation("topic name is too long")
	}
	if input.AlertThreshold < 0 {
		return input, apperr.Validation("alert threshold must not be negative")
	}
	return input, nil
}
