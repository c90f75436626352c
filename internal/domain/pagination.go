package domain

// Pagination describes one page of a list response. It is derived entirely
// from the most recent fetch; CurrentPage is the only field a view may set
// ahead of a fetch completing.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPagination computes pagination metadata for a page of totalItems
// records at the given limit. TotalPages is never below 1 so an empty
// result still renders as a single page.
func NewPagination(page, limit, totalItems int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	totalPages := (totalItems + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		Limit:       limit,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}

// WithTotal returns the pagination recomputed for a new total item count,
// keeping the current page and limit. Used when an item is removed locally
// without a refetch.
func (p Pagination) WithTotal(totalItems int) Pagination {
	if totalItems < 0 {
		totalItems = 0
	}
	return NewPagination(p.CurrentPage, p.Limit, totalItems)
}
