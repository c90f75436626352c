package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"veritas-dashboard/internal/apperr"
	"veritas-dashboard/internal/client"
	"veritas-dashboard/internal/domain"
	"veritas-dashboard/internal/listview"
)

// MockPostService is a mock implementation of the upstream post operations.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) ToggleFlag(ctx context.Context, token, postID string) (*client.ToggleFlagResult, error) {
	args := m.Called(ctx, token, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.ToggleFlagResult), args.Error(1)
}

func (m *MockPostService) DismissPost(ctx context.Context, token, postID string) error {
	return m.Called(ctx, token, postID).Error(0)
}

func (m *MockPostService) DeletePost(ctx context.Context, token, postID string) error {
	return m.Called(ctx, token, postID).Error(0)
}

func (m *MockPostService) UpdatePostStatus(ctx context.Context, token, postID, status string) error {
	return m.Called(ctx, token, postID, status).Error(0)
}

func postID(p domain.Post) string        { return p.ID }
func flaggedID(p domain.FlaggedPost) string { return p.ID }

func loadedFeed(t *testing.T, posts []domain.Post) *listview.Controller[domain.Post] {
	t.Helper()
	fetcher := func(_ context.Context, _ string, _ domain.FilterSet, page, limit int) ([]domain.Post, domain.Pagination, error) {
		return posts, domain.NewPagination(page, limit, len(posts)), nil
	}
	view := listview.New(fetcher, postID, 10)
	require.NoError(t, view.Load(context.Background(), "token", 1))
	return view
}

func TestFeed_ToggleFlag_PatchesFromResponse(t *testing.T) {
	api := new(MockPostService)
	view := loadedFeed(t, []domain.Post{
		{ID: "p1", Flagged: false},
		{ID: "p2", Flagged: false},
	})
	counter := &Counter{}
	feed := NewFeed(api, view, counter)

	api.On("ToggleFlag", mock.Anything, "token", "p1").
		Return(&client.ToggleFlagResult{Flagged: true, FlaggedBy: []string{"u1"}}, nil).Once()

	result, err := feed.ToggleFlag(context.Background(), "token", "p1")

	require.NoError(t, err)
	assert.True(t, result.Flagged)

	state := view.State()
	assert.True(t, state.Items[0].Flagged)
	assert.Equal(t, []string{"u1"}, state.Items[0].FlaggedBy)
	assert.False(t, state.Items[1].Flagged, "other items untouched")
	assert.Equal(t, int64(1), counter.Value())

	// Toggling again reverts both the flag and the counter.
	api.On("ToggleFlag", mock.Anything, "token", "p1").
		Return(&client.ToggleFlagResult{Flagged: false, FlaggedBy: []string{}}, nil).Once()

	_, err = feed.ToggleFlag(context.Background(), "token", "p1")
	require.NoError(t, err)

	state = view.State()
	assert.False(t, state.Items[0].Flagged)
	assert.Empty(t, state.Items[0].FlaggedBy)
	assert.Equal(t, int64(0), counter.Value())
	api.AssertExpectations(t)
}

func TestFeed_ToggleFlag_FailureLeavesStateUnchanged(t *testing.T) {
	api := new(MockPostService)
	view := loadedFeed(t, []domain.Post{{ID: "p1", Flagged: false}})
	counter := &Counter{}
	feed := NewFeed(api, view, counter)

	api.On("ToggleFlag", mock.Anything, "token", "p1").
		Return(nil, apperr.Network()).Once()

	_, err := feed.ToggleFlag(context.Background(), "token", "p1")

	require.Error(t, err)
	assert.False(t, view.State().Items[0].Flagged)
	assert.Zero(t, counter.Value())
}

func TestFeed_Dismiss_RemovesExactlyOne(t *testing.T) {
	api := new(MockPostService)
	view := loadedFeed(t, []domain.Post{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}})
	feed := NewFeed(api, view, nil)

	api.On("DismissPost", mock.Anything, "token", "p2").Return(nil).Once()

	err := feed.Dismiss(context.Background(), "token", "p2")

	require.NoError(t, err)
	state := view.State()
	require.Len(t, state.Items, 2)
	assert.Equal(t, "p1", state.Items[0].ID)
	assert.Equal(t, "p3", state.Items[1].ID)
	assert.Equal(t, 2, state.Pagination.TotalItems)
}

func TestFeed_Dismiss_FailureKeepsItem(t *testing.T) {
	api := new(MockPostService)
	view := loadedFeed(t, []domain.Post{{ID: "p1"}})
	feed := NewFeed(api, view, nil)

	api.On("DismissPost", mock.Anything, "token", "p1").
		Return(apperr.FromStatus(500, "")).Once()

	err := feed.Dismiss(context.Background(), "token", "p1")

	require.Error(t, err)
	assert.Len(t, view.State().Items, 1, "item stays until the server confirms")
}

func TestReview_UpdateStatus(t *testing.T) {
	api := new(MockPostService)
	fetcher := func(_ context.Context, _ string, _ domain.FilterSet, page, limit int) ([]domain.FlaggedPost, domain.Pagination, error) {
		return []domain.FlaggedPost{{ID: "f1", Status: domain.ReviewPending}}, domain.NewPagination(page, limit, 1), nil
	}
	view := listview.New(fetcher, flaggedID, 10)
	require.NoError(t, view.Load(context.Background(), "token", 1))
	review := NewReview(api, view)

	api.On("UpdatePostStatus", mock.Anything, "token", "f1", domain.ReviewEscalated).Return(nil).Once()

	err := review.UpdateStatus(context.Background(), "token", "f1", domain.ReviewEscalated)

	require.NoError(t, err)
	assert.Equal(t, domain.ReviewEscalated, view.State().Items[0].Status)
}

func TestActions_WithoutView(t *testing.T) {
	// Stateless callers pass a nil view; the upstream call and the
	// counter still run, and nothing panics over the missing page.
	api := new(MockPostService)
	counter := &Counter{}
	feed := NewFeed(api, nil, counter)

	api.On("ToggleFlag", mock.Anything, "token", "p1").
		Return(&client.ToggleFlagResult{Flagged: true, FlaggedBy: []string{"u1"}}, nil).Once()
	api.On("DismissPost", mock.Anything, "token", "p2").Return(nil).Once()
	api.On("DeletePost", mock.Anything, "token", "p3").Return(nil).Once()

	result, err := feed.ToggleFlag(context.Background(), "token", "p1")
	require.NoError(t, err)
	assert.True(t, result.Flagged)
	assert.Equal(t, int64(1), counter.Value())

	require.NoError(t, feed.Dismiss(context.Background(), "token", "p2"))
	require.NoError(t, feed.Delete(context.Background(), "token", "p3"))

	review := NewReview(api, nil)
	api.On("UpdatePostStatus", mock.Anything, "token", "f1", domain.ReviewReviewed).Return(nil).Once()
	require.NoError(t, review.UpdateStatus(context.Background(), "token", "f1", domain.ReviewReviewed))

	api.AssertExpectations(t)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(domain.ReviewPending))
	assert.True(t, ValidStatus(domain.ReviewEscalated))
	assert.True(t, ValidStatus(domain.ReviewReviewed))
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}

func TestCounter_ClampsAtZero(t *testing.T) {
	c := &Counter{}
	c.Add(-5)
	assert.Zero(t, c.Value())

	c.Set(10)
	c.Add(-3)
	assert.Equal(t, int64(7), c.Value())
}
