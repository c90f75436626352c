package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/listview"
	"veritas-dashboard/internal/middleware"
	"veritas-dashboard/internal/query"
	"veritas-dashboard/internal/sanitize"
)

// fetchPosts wraps the upstream posts fetch with content sanitization.
// Upstream text is treated as untrusted; everything rendered by the UI
// passes through the strict policy first.
func (h *Handler) fetchPosts(ctx context.Context, token string, filters domain.FilterSet, page, limit int) ([]domain.Post, domain.Pagination, error) {
	posts, pagination, err := h.api.FetchPosts(ctx, token, filters, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	for i := range posts {
		posts[i].Content = sanitize.Text(posts[i].Content)
		posts[i].Author.Name = sanitize.Text(posts[i].Author.Name)
	}
	return posts, pagination, nil
}

func postID(p domain.Post) string { return p.ID }

// Feed serves one page of the media feed for the query's filters.
func (h *Handler) Feed(c echo.Context) error {
	return runList(c, "/v1/feed", h.fetchPosts, postID, h.cfg.FeedPageSize)
}

// feedSummary is the widget payload above the feed: totals under the
// current filters plus the service-wide flagged count.
type feedSummary struct {
	TotalItems int    `json:"totalItems"`
	TotalPages int    `json:"totalPages"`
	Flagged    int64  `json:"flagged"`
	Query      string `json:"query,omitempty"`
}

// FeedSummary answers the filtered summary widget without shipping a full
// page of posts.
func (h *Handler) FeedSummary(c echo.Context) error {
	q := query.Parse(c.QueryParams())
	token := middleware.GetToken(c)

	_, pagination, err := h.api.FetchPosts(c.Request().Context(), token, q.Filters, 1, 1)
	if err != nil {
		return attachRequestID(c, err)
	}

	if stats, statsErr := h.cachedStatistics(c.Request().Context(), token); statsErr == nil {
		h.flaggedCount.Set(int64(stats.FlaggedPosts))
	}

	return c.JSON(http.StatusOK, feedSummary{
		TotalItems: pagination.TotalItems,
		TotalPages: pagination.TotalPages,
		Flagged:    h.flaggedCount.Value(),
		Query:      q.String(),
	})
}

// FeedStream pushes feed snapshots over SSE until the client disconnects.
// Each connection owns its controller, so reload races resolve per-viewer.
func (h *Handler) FeedStream(c echo.Context) error {
	q := query.Parse(c.QueryParams())
	token := middleware.GetToken(c)

	view := listview.New(h.fetchPosts, postID, h.cfg.FeedPageSize)
	view.SetFilters(q.Filters)

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	if err := h.pushSnapshot(ctx, c, view, token, q.Page); err != nil {
		return nil
	}

	ticker := time.NewTicker(h.cfg.StreamInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := h.pushSnapshot(ctx, c, view, token, q.Page); err != nil {
				return nil
			}
		}
	}
}

// pushSnapshot reloads the view and writes one SSE event. Fetch errors are
// pushed as events too; the stream only ends when the write fails.
func (h *Handler) pushSnapshot(ctx context.Context, c echo.Context, view *listview.Controller[domain.Post], token string, page int) error {
	if err := view.Load(ctx, token, page); err != nil {
		h.logger.Warn("feed stream reload failed", "error", err)
	}

	state := view.State()
	payload, err := json.Marshal(map[string]any{
		"data":       state.Items,
		"pagination": state.Pagination,
		"error":      state.Err,
	})
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(c.Response(), "event: feed\ndata: %s\n\n", payload); err != nil {
		return err
	}
	c.Response().Flush()
	return nil
}
