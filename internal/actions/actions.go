// Package actions implements the per-item mutations of the dashboard list
// views: flag, dismiss, escalate, review and delete. Every action follows
// the same discipline: the upstream call is issued first, and local state
// is patched only from its result. Nothing is updated ahead of server
// confirmation, so there is no rollback path to get wrong.
package actions

import (
	"context"
	"sync/atomic"

	"veritas-dashboard/internal/client"
	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/listview"
	"veritas-dashboard/internal/metrics"
)

// PostService is the slice of the upstream client the actions need.
type PostService interface {
	ToggleFlag(ctx context.Context, token, postID string) (*client.ToggleFlagResult, error)
	DismissPost(ctx context.Context, token, postID string) error
	DeletePost(ctx context.Context, token, postID string) error
	UpdatePostStatus(ctx context.Context, token, postID, status string) error
}

// Counter is a locally tracked aggregate adjusted by item actions, such as
// the flagged-post count shown in the feed summary widget.
type Counter struct {
	n atomic.Int64
}

// Set replaces the counter value, typically from a fresh statistics fetch.
func (c *Counter) Set(n int64) { c.n.Store(n) }

// Add adjusts the counter by delta, clamping at zero.
func (c *Counter) Add(delta int64) {
	if c.n.Add(delta) < 0 {
		c.n.Store(0)
	}
}

// Value returns the current count.
func (c *Counter) Value() int64 { return c.n.Load() }

// Feed mutates items of the media feed view.
type Feed struct {
	api          PostService
	view         *listview.Controller[domain.Post]
	flaggedCount *Counter
}

// NewFeed creates the action set for a feed view. view may be nil for
// stateless callers that have no loaded page to patch, such as the plain
// HTTP action endpoints; flaggedCount may be nil when no summary widget
// tracks the flagged total.
func NewFeed(api PostService, view *listview.Controller[domain.Post], flaggedCount *Counter) *Feed {
	return &Feed{api: api, view: view, flaggedCount: flaggedCount}
}

// ToggleFlag flips the flag state of a post. The server response is
// authoritative: the local item takes the returned flag state and
// flaggedBy set, and the flagged counter follows the returned direction.
func (f *Feed) ToggleFlag(ctx context.Context, token, postID string) (*client.ToggleFlagResult, error) {
	result, err := f.api.ToggleFlag(ctx, token, postID)
	if err != nil {
		metrics.RecordItemAction("toggle_flag", metrics.OutcomeError)
		return nil, err
	}

	if f.view != nil {
		f.view.Patch(postID, func(p *domain.Post) {
			p.Flagged = result.Flagged
			p.FlaggedBy = result.FlaggedBy
		})
	}
	if f.flaggedCount != nil {
		if result.Flagged {
			f.flaggedCount.Add(1)
		} else {
			f.flaggedCount.Add(-1)
		}
	}

	metrics.RecordItemAction("toggle_flag", metrics.OutcomeSuccess)
	return result, nil
}

// Dismiss removes a post from the active feed. On success the item leaves
// the local page entirely; dismissed posts no longer belong in the view
// and waiting for a refetch would leave them lingering.
func (f *Feed) Dismiss(ctx context.Context, token, postID string) error {
	if err := f.api.DismissPost(ctx, token, postID); err != nil {
		metrics.RecordItemAction("dismiss", metrics.OutcomeError)
		return err
	}

	if f.view != nil {
		f.view.Remove(postID)
	}
	metrics.RecordItemAction("dismiss", metrics.OutcomeSuccess)
	return nil
}

// Delete deletes a post outright and drops it from the local page.
func (f *Feed) Delete(ctx context.Context, token, postID string) error {
	if err := f.api.DeletePost(ctx, token, postID); err != nil {
		metrics.RecordItemAction("delete", metrics.OutcomeError)
		return err
	}

	if f.view != nil {
		f.view.Remove(postID)
	}
	metrics.RecordItemAction("delete", metrics.OutcomeSuccess)
	return nil
}

// Review mutates items of the flagged review queue.
type Review struct {
	api  PostService
	view *listview.Controller[domain.FlaggedPost]
}

// NewReview creates the action set for a flagged-queue view. view may be
// nil for stateless callers.
func NewReview(api PostService, view *listview.Controller[domain.FlaggedPost]) *Review {
	return &Review{api: api, view: view}
}

// UpdateStatus moves a flagged item to a new review status (pending,
// escalated or reviewed) and patches the local item on success.
func (r *Review) UpdateStatus(ctx context.Context, token, postID, status string) error {
	if err := r.api.UpdatePostStatus(ctx, token, postID, status); err != nil {
		metrics.RecordItemAction("update_status", metrics.OutcomeError)
		return err
	}

	if r.view != nil {
		r.view.Patch(postID, func(p *domain.FlaggedPost) {
			p.Status = status
		})
	}
	metrics.RecordItemAction("update_status", metrics.OutcomeSuccess)
	return nil
}

// ValidStatus reports whether status is one of the review statuses.
func ValidStatus(status string) bool {
	switch status {
	case domain.ReviewPending, domain.ReviewEscalated, domain.ReviewReviewed:
		return true
	}
	return false
}
