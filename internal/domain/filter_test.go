package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterSet_IsZero(t *testing.T) {
	assert.True(t, FilterSet{}.IsZero())
	assert.True(t, FilterSet{SortBy: SortRecent}.IsZero())
	assert.False(t, FilterSet{Keyword: "vaccine"}.IsZero())
	assert.False(t, FilterSet{Platforms: []string{"Facebook"}}.IsZero())
	assert.False(t, FilterSet{SortBy: SortEngagement}.IsZero())
}

func TestFilterSet_Normalize_SortsAndDeduplicatesPlatforms(t *testing.T) {
	f := FilterSet{Platforms: []string{"YouTube", "Facebook", "YouTube"}}

	n := f.Normalize()

	assert.Equal(t, []string{"Facebook", "YouTube"}, n.Platforms)
	// Input is not mutated.
	assert.Equal(t, []string{"YouTube", "Facebook", "YouTube"}, f.Platforms)
}

func TestFilterSet_Normalize_DropsHalfOpenDateRange(t *testing.T) {
	f := FilterSet{DateRange: &DateRange{Start: time.Now()}}

	assert.Nil(t, f.Normalize().DateRange)
}

func TestFilterSet_Normalize_CollapsesDefaultSort(t *testing.T) {
	assert.Empty(t, FilterSet{SortBy: SortRecent}.Normalize().SortBy)
	assert.Equal(t, SortOldest, FilterSet{SortBy: SortOldest}.Normalize().SortBy)
}

func TestFilterSet_Equal(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	a := FilterSet{
		Platforms: []string{"Reddit", "Facebook"},
		DateRange: &DateRange{Start: start, End: end},
		SortBy:    SortRecent,
	}
	b := FilterSet{
		Platforms: []string{"Facebook", "Reddit"},
		DateRange: &DateRange{Start: start, End: end},
	}

	assert.True(t, a.Equal(b))

	b.Keyword = "election"
	assert.False(t, a.Equal(b))
}
