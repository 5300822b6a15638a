package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name       string
		total      int64
		page       int
		limit      int
		totalPages int64
	}{
		{"exact multiple", 100, 1, 10, 10},
		{"partial last page", 101, 1, 10, 11},
		{"single short page", 3, 1, 10, 1},
		{"empty result", 0, 1, 10, 0},
		{"limit one", 7, 3, 1, 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.total, tc.page, tc.limit)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.totalPages, p.TotalPages)
		})
	}
}

func TestCustomerStatus_IsValid(t *testing.T) {
	assert.True(t, CustomerActive.IsValid())
	assert.True(t, CustomerInactive.IsValid())
	assert.False(t, CustomerStatus("active").IsValid())
	assert.False(t, CustomerStatus("").IsValid())
	assert.False(t, CustomerStatus("Deleted").IsValid())
}
