package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/metrics"
	"veritas-dashboard/internal/middleware"
)

const recentFlaggedLimit = 5

// overviewResponse aggregates the landing page's slices. Each slice fails
// independently; a missing one carries its error so the UI can render the
// rest.
type overviewResponse struct {
	Statistics    *domain.Statistics       `json:"statistics,omitempty"`
	Topics        []domain.Topic           `json:"topics,omitempty"`
	RecentFlagged []domain.FlaggedPost     `json:"recentFlagged,omitempty"`
	Errors        map[string]*apperr.Error `json:"errors,omitempty"`
}

// cachedStatistics serves the overview counters from the TTL cache,
// collapsing concurrent fills into one upstream call.
func (h *Handler) cachedStatistics(ctx context.Context, token string) (domain.Statistics, error) {
	if stats, ok := h.statsCache.Get("statistics"); ok {
		metrics.RecordCacheLookup(true)
		return stats, nil
	}
	metrics.RecordCacheLookup(false)

	return h.statsCache.GetOrFill(ctx, "statistics", func(ctx context.Context) (domain.Statistics, error) {
		return h.api.FetchStatistics(ctx, token)
	})
}

// Overview fans out to statistics, topics and the recent flagged queue in
// parallel and aggregates whatever came back.
func (h *Handler) Overview(c echo.Context) error {
	ctx := c.Request().Context()
	token := middleware.GetToken(c)

	var (
		stats   domain.Statistics
		topics  []domain.Topic
		flagged []domain.FlaggedPost
	)
	sliceErrs := make([]*apperr.Error, 3)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if stats, err = h.cachedStatistics(gctx, token); err != nil {
			sliceErrs[0] = apperr.From(err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if topics, _, err = h.api.ListTopics(gctx, token, 1, h.cfg.FeedPageSize); err != nil {
			sliceErrs[1] = apperr.From(err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if flagged, _, err = h.fetchFlagged(gctx, token, domain.FilterSet{}, 1, recentFlaggedLimit); err != nil {
			sliceErrs[2] = apperr.From(err)
		}
		return nil
	})
	_ = g.Wait() // goroutines record their own errors

	resp := overviewResponse{Topics: topics, RecentFlagged: flagged}
	if sliceErrs[0] == nil {
		resp.Statistics = &stats
		h.flaggedCount.Set(int64(stats.FlaggedPosts))
	}

	errs := make(map[string]*apperr.Error)
	for i, name := range []string{"statistics", "topics", "recentFlagged"} {
		if sliceErrs[i] != nil {
			errs[name] = sliceErrs[i]
		}
	}
	if len(errs) == 3 {
		// nothing survived; answer with the first failure instead of an
		// empty page
		return attachRequestID(c, errs["statistics"])
	}
	if len(errs) > 0 {
		resp.Errors = errs
	}

	return c.JSON(http.StatusOK, resp)
}
