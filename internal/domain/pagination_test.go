package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination_TotalPages(t *testing.T) {
	p := NewPagination(1, 30, 100)

	assert.Equal(t, 4, p.TotalPages)
	assert.Equal(t, 100, p.TotalItems)
	assert.Equal(t, 30, p.Limit)
}

func TestNewPagination_HasNextPage(t *testing.T) {
	for page := 1; page <= 3; page++ {
		p := NewPagination(page, 30, 100)
		assert.True(t, p.HasNextPage, "page %d of 4 should have a next page", page)
	}

	last := NewPagination(4, 30, 100)
	assert.False(t, last.HasNextPage)
	assert.True(t, last.HasPrevPage)
}

func TestNewPagination_EmptyResult(t *testing.T) {
	p := NewPagination(1, 10, 0)

	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNextPage)
	assert.False(t, p.HasPrevPage)
}

func TestNewPagination_ClampsInvalidInputs(t *testing.T) {
	p := NewPagination(0, 0, 5)

	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 1, p.Limit)
	assert.Equal(t, 5, p.TotalPages)
}

func TestPagination_WithTotal(t *testing.T) {
	p := NewPagination(2, 10, 21)
	assert.Equal(t, 3, p.TotalPages)

	// Dismissing an item shrinks the total without a refetch.
	p = p.WithTotal(20)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 20, p.TotalItems)
	assert.Equal(t, 2, p.CurrentPage)

	p = p.WithTotal(-1)
	assert.Equal(t, 0, p.TotalItems)
	assert.Equal(t, 1, p.TotalPages)
}
