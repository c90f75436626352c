// Package domain defines the data shapes the dashboard exchanges with the
// upstream review API and the view-state types built on top of them.
package domain

import (
	"slices"
	"time"
)

// Sort orders accepted by the upstream posts endpoints.
const (
	SortRecent     = "recent"
	SortOldest     = "oldest"
	SortEngagement = "engagement"
)

// FlagStatusFlagged restricts a list view to flagged items.
const FlagStatusFlagged = "flagged"

// DateRange is an inclusive [Start, End] constraint. A range is only
// meaningful when both ends are present; a half-open range is treated as
// no constraint at all.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FilterSet holds the active filter selections for a list view. The zero
// value means "no filters" and sorts by most recent.
type FilterSet struct {
	Platforms  []string   `json:"platforms,omitempty"`
	DateRange  *DateRange `json:"dateRange,omitempty"`
	Language   string     `json:"language,omitempty"`
	FlagStatus string     `json:"flagStatus,omitempty"`
	SortBy     string     `json:"sortBy,omitempty"`
	Keyword    string     `json:"keyword,omitempty"`
	Search     string     `json:"search,omitempty"`
	Status     string     `json:"status,omitempty"`
}

// IsZero reports whether no filter is active and the sort order is the default.
func (f FilterSet) IsZero() bool {
	return len(f.Platforms) == 0 &&
		f.DateRange == nil &&
		f.Language == "" &&
		f.FlagStatus == "" &&
		(f.SortBy == "" || f.SortBy == SortRecent) &&
		f.Keyword == "" &&
		f.Search == "" &&
		f.Status == ""
}

// Normalize returns a canonical copy: platforms sorted and deduplicated,
// the default sort order collapsed to empty, and half-open date ranges
// dropped.
func (f FilterSet) Normalize() FilterSet {
	out := f
	if len(f.Platforms) > 0 {
		platforms := slices.Clone(f.Platforms)
		slices.Sort(platforms)
		out.Platforms = slices.Compact(platforms)
	}
	if f.SortBy == SortRecent {
		out.SortBy = ""
	}
	if f.DateRange != nil && (f.DateRange.Start.IsZero() || f.DateRange.End.IsZero()) {
		out.DateRange = nil
	}
	return out
}

// Equal reports whether two filter sets select the same data.
func (f FilterSet) Equal(other FilterSet) bool {
	a, b := f.Normalize(), other.Normalize()
	if !slices.Equal(a.Platforms, b.Platforms) {
		return false
	}
	if (a.DateRange == nil) != (b.DateRange == nil) {
		return false
	}
	if a.DateRange != nil {
		if !a.DateRange.Start.Equal(b.DateRange.Start) || !a.DateRange.End.Equal(b.DateRange.End) {
			return false
		}
	}
	return a.Language == b.Language &&
		a.FlagStatus == b.FlagStatus &&
		a.SortBy == b.SortBy &&
		a.Keyword == b.Keyword &&
		a.Search == b.Search &&
		a.Status == b.Status
}
