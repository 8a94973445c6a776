package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParamsValidate(t *testing.T) {
	t.Run("Zero Values Get Defaults", func(t *testing.T) {
		p := PaginationParams{}
		p.Validate()

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, "createdAt", p.SortBy)
		assert.Equal(t, "desc", p.SortOrder)
	})

	t.Run("Limit Capped At 100", func(t *testing.T) {
		p := PaginationParams{Page: 2, Limit: 500}
		p.Validate()

		assert.Equal(t, 100, p.Limit)
	})

	t.Run("Negative Page Reset", func(t *testing.T) {
		p := PaginationParams{Page: -3, Limit: 20}
		p.Validate()

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.Limit)
	})

	t.Run("Only Asc Accepted As Ascending", func(t *testing.T) {
		p := PaginationParams{SortOrder: "ASC"}
		p.Validate()

		assert.Equal(t, "desc", p.SortOrder)

		p.SortOrder = "asc"
		p.Validate()
		assert.Equal(t, "asc", p.SortOrder)
	})
}

func TestPaginationOffset(t *testing.T) {
	p := PaginationParams{Page: 3, Limit: 25}
	assert.Equal(t, 50, p.Offset())

	p = PaginationParams{Page: 1, Limit: 10}
	assert.Equal(t, 0, p.Offset())
}

func TestNewPaginatedResponse(t *testing.T) {
	t.Run("Nil Items Serialized As Empty Slice", func(t *testing.T) {
		resp := NewPaginatedResponse[string](nil, 1, 10, 0)

		assert.NotNil(t, resp.Items)
		assert.Len(t, resp.Items, 0)
		assert.Equal(t, 0, resp.Pagination.TotalPages)
	})

	t.Run("Total Pages Rounds Up", func(t *testing.T) {
		resp := NewPaginatedResponse([]int{1, 2, 3}, 1, 10, 21)

		assert.Equal(t, int64(21), resp.Pagination.Total)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
	})

	t.Run("Exact Division", func(t *testing.T) {
		resp := NewPaginatedResponse([]int{1}, 2, 10, 20)

		assert.Equal(t, 2, resp.Pagination.TotalPages)
		assert.Equal(t, 2, resp.Pagination.Page)
	})
}
