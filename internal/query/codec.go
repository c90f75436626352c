// Package query maps list-view state (filters plus page number) to and from
// URL query strings. Every list view shares this one codec so the address
// bar, the links embedded in responses, and the upstream fetch all agree on
// what a given URL means.
package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"veritas-dashboard/internal/domain"
)

// Recognized query keys. Anything else in the query string is ignored on
// parse and never emitted on encode.
const (
	keyPage       = "page"
	keyPlatforms  = "platforms"
	keyStartDate  = "startDate"
	keyEndDate    = "endDate"
	keyLanguage   = "language"
	keyFlagStatus = "flagStatus"
	keySortBy     = "sortBy"
	keyKeyword    = "keyword"
	keySearch     = "search"
	keyStatus     = "status"
)

// dateLayout is the wire format for startDate/endDate values.
const dateLayout = time.DateOnly

// ViewQuery is the URL-visible state of one list view.
type ViewQuery struct {
	Filters domain.FilterSet
	Page    int
}

// Parse reads the recognized keys from a query string into a ViewQuery.
// Missing or malformed values fall back to defaults: page 1, empty filters,
// most-recent sort. A date range with only one end present is treated as no
// range.
func Parse(values url.Values) ViewQuery {
	q := ViewQuery{Page: 1}

	if raw := values.Get(keyPage); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page >= 1 {
			q.Page = page
		}
	}

	if raw := values.Get(keyPlatforms); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				q.Filters.Platforms = append(q.Filters.Platforms, p)
			}
		}
	}

	start, startOK := parseDate(values.Get(keyStartDate))
	end, endOK := parseDate(values.Get(keyEndDate))
	if startOK && endOK {
		q.Filters.DateRange = &domain.DateRange{Start: start, End: end}
	}

	q.Filters.Language = values.Get(keyLanguage)
	q.Filters.FlagStatus = values.Get(keyFlagStatus)
	q.Filters.SortBy = values.Get(keySortBy)
	q.Filters.Keyword = values.Get(keyKeyword)
	q.Filters.Search = values.Get(keySearch)
	q.Filters.Status = values.Get(keyStatus)

	q.Filters = q.Filters.Normalize()
	return q
}

// ParseString parses a raw query string, ignoring anything unparseable.
func ParseString(rawQuery string) ViewQuery {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return ViewQuery{Page: 1}
	}
	return Parse(values)
}

// Encode serializes the ViewQuery to query values, omitting keys whose
// value is the default so URLs stay minimal: page is omitted at 1 and
// sortBy is omitted for the most-recent default.
func (q ViewQuery) Encode() url.Values {
	values := url.Values{}
	f := q.Filters.Normalize()

	if q.Page > 1 {
		values.Set(keyPage, strconv.Itoa(q.Page))
	}
	if len(f.Platforms) > 0 {
		values.Set(keyPlatforms, strings.Join(f.Platforms, ","))
	}
	if f.DateRange != nil {
		values.Set(keyStartDate, f.DateRange.Start.Format(dateLayout))
		values.Set(keyEndDate, f.DateRange.End.Format(dateLayout))
	}
	if f.Language != "" {
		values.Set(keyLanguage, f.Language)
	}
	if f.FlagStatus != "" {
		values.Set(keyFlagStatus, f.FlagStatus)
	}
	if f.SortBy != "" {
		values.Set(keySortBy, f.SortBy)
	}
	if f.Keyword != "" {
		values.Set(keyKeyword, f.Keyword)
	}
	if f.Search != "" {
		values.Set(keySearch, f.Search)
	}
	if f.Status != "" {
		values.Set(keyStatus, f.Status)
	}
	return values
}

// String returns the canonical query string. url.Values.Encode sorts keys,
// so equal ViewQueries always produce byte-identical strings.
func (q ViewQuery) String() string {
	return q.Encode().Encode()
}

// WithPage returns a copy positioned on the given page, filters unchanged.
func (q ViewQuery) WithPage(page int) ViewQuery {
	if page < 1 {
		page = 1
	}
	q.Page = page
	return q
}

// WithFilters returns a copy with the given filters applied. Any filter
// change resets the page to 1 so the view cannot land on a page that no
// longer exists under the new filter set.
func (q ViewQuery) WithFilters(filters domain.FilterSet) ViewQuery {
	if !q.Filters.Equal(filters) {
		q.Page = 1
	}
	q.Filters = filters.Normalize()
	return q
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true
	}
	// Accept full timestamps as well; only the calendar date in the
	// timestamp's own zone is round-tripped.
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}
