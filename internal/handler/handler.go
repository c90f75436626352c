// Package handler exposes the dashboard's /v1 endpoints. Each view
// endpoint is a thin composition of the query codec, the list controller
// and the upstream client; handlers never talk to the upstream wire
// format directly.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"veritas-dashboard/config"
	"veritas-dashboard/internal/actions"
	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/cache"
	"veritas-dashboard/internal/client"
	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/listview"
	"veritas-dashboard/internal/middleware"
	"veritas-dashboard/internal/query"
	"veritas-dashboard/internal/session"
)

// Handler carries the shared dependencies of all /v1 endpoints.
type Handler struct {
	api          *client.Client
	cfg          *config.Config
	sessions     *session.Registry
	statsCache   *cache.TTLCache[domain.Statistics]
	flaggedCount *actions.Counter
	logger       *slog.Logger
}

// New wires the endpoint handlers.
func New(api *client.Client, cfg *config.Config, sessions *session.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		api:          api,
		cfg:          cfg,
		sessions:     sessions,
		statsCache:   cache.New[domain.Statistics](16, cfg.StatsCacheTTL),
		flaggedCount: &actions.Counter{},
		logger:       logger,
	}
}

// listResponse is the JSON shape of every paginated view.
type listResponse[T any] struct {
	Data       []T               `json:"data"`
	Pagination domain.Pagination `json:"pagination"`
	Links      links             `json:"links"`
}

// links are the canonical URLs the UI writes into the address bar.
type links struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// viewLinks builds canonical self/next/prev links for a list view. The
// query string is re-encoded from the parsed form so the UI always sees
// one canonical spelling per state.
func viewLinks(path string, q query.ViewQuery, p domain.Pagination) links {
	l := links{Self: canonicalURL(path, q)}
	if p.HasNextPage {
		l.Next = canonicalURL(path, q.WithPage(q.Page+1))
	}
	if p.HasPrevPage {
		l.Prev = canonicalURL(path, q.WithPage(q.Page-1))
	}
	return l
}

func canonicalURL(path string, q query.ViewQuery) string {
	encoded := q.String()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// runList builds a one-shot list controller, loads the requested page and
// renders the resulting state. The controller's sequencing rules do the
// token short-circuit and error normalization.
func runList[T any](c echo.Context, path string, fetch listview.Fetcher[T], idOf func(T) string, limit int) error {
	q := query.Parse(c.QueryParams())

	view := listview.New(fetch, idOf, limit)
	view.SetFilters(q.Filters)
	if err := view.Load(c.Request().Context(), middleware.GetToken(c), q.Page); err != nil {
		return attachRequestID(c, err)
	}

	state := view.State()
	if state.Items == nil {
		// the UI iterates data unconditionally
		state.Items = []T{}
	}
	return c.JSON(http.StatusOK, listResponse[T]{
		Data:       state.Items,
		Pagination: state.Pagination,
		Links:      viewLinks(path, q, state.Pagination),
	})
}

// attachRequestID stamps the correlation id onto a normalized error so the
// envelope the UI renders can be matched to the server logs.
func attachRequestID(c echo.Context, err error) error {
	appErr := apperr.From(err)
	if appErr.RequestID == "" {
		appErr.RequestID = middleware.GetRequestID(c)
	}
	return appErr
}

// ErrorHandler renders every error as the normalized envelope. It is
// installed as Echo's HTTPErrorHandler so handlers just return errors.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		appErr := apperr.From(err)
		if httpErr, ok := err.(*echo.HTTPError); ok {
			appErr = apperr.FromStatus(httpErr.Code, "")
			// routing errors (404/405) are local, not upstream
			appErr.Status = httpErr.Code
		}
		if appErr.RequestID == "" {
			appErr.RequestID = middleware.GetRequestID(c)
		}

		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"code", appErr.Code,
				"status", appErr.Status,
				"path", c.Path(),
				"request_id", appErr.RequestID,
			)
		}

		if writeErr := c.JSON(appErr.Status, map[string]*apperr.Error{"error": appErr}); writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}

// Health answers the liveness probe with a small runtime snapshot.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "ok",
		"stats_cache": h.statsCache.Stats(),
	})
}
