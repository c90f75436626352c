package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/sanitize"
)

func flaggedID(p domain.FlaggedPost) string { return p.ID }

func (h *Handler) fetchFlagged(ctx context.Context, token string, filters domain.FilterSet, page, limit int) ([]domain.FlaggedPost, domain.Pagination, error) {
	posts, pagination, err := h.api.FetchFlagged(ctx, token, filters, page, limit)
	if err != nil {
		return nil, domain.Pagination{}, err
	}
	for i := range posts {
		posts[i].Content = sanitize.Text(posts[i].Content)
		posts[i].Author = sanitize.Text(posts[i].Author)
		posts[i].ModeratorNotes = sanitize.Text(posts[i].ModeratorNotes)
	}
	return posts, pagination, nil
}

// Flagged serves the review queue of flagged content, filterable by
// review status and date range.
func (h *Handler) Flagged(c echo.Context) error {
	return runList(c, "/v1/flagged", h.fetchFlagged, flaggedID, h.cfg.FeedPageSize)
}
