package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(45, 2, 20)
	assert.Equal(t, int64(45), p.TotalRecords)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 3, p.TotalPages)
}

func TestNewPaginationExactMultiple(t *testing.T) {
	p := NewPagination(40, 1, 20)
	assert.Equal(t, 2, p.TotalPages)
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(0, 1, 20)
	assert.Equal(t, 0, p.TotalPages)
}

func TestNewPaginationGuardsBadInput(t *testing.T) {
	p := NewPagination(10, 0, 0)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 1, p.PerPage)
	assert.Equal(t, 10, p.TotalPages)
}
