package handler

import (
	"github.com/labstack/echo/v4"

	"veritas-dashboard/internal/domain"
)

func authorID(a domain.Author) string { return a.ID }

// Authors serves the watchlist: tracked handles filterable by search,
// platform and flagged state.
func (h *Handler) Authors(c echo.Context) error {
	return runList(c, "/v1/authors", h.api.ListAuthors, authorID, h.cfg.AuthorsPageSize)
}
