package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	t.Parallel()

	p := Pagination{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)

	p = Pagination{Page: -3, PageSize: 500}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize, "page size caps at 100")

	p = Pagination{Page: 4, PageSize: 25}
	p.Normalize()
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 25, p.PageSize)
	assert.Equal(t, 75, p.Offset())
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2024-01-05", NormalizeDate("2024-01-05T00:00:00Z"))
	assert.Equal(t, "2024-01-05", NormalizeDate("2024-01-05T13:45:00+03:00"))
	assert.Equal(t, "2024-01-05", NormalizeDate("2024-01-05"))
	assert.Equal(t, "2024-01-05", NormalizeDate("  2024-01-05  "))
	assert.Equal(t, "", NormalizeDate(""))
	// Unparseable input passes through untouched.
	assert.Equal(t, "05/01/2024", NormalizeDate("05/01/2024"))
}
