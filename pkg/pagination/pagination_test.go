package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var sortColumns = map[string]string{
	"name":       "products.name",
	"created_at": "products.created_at",
}

func TestParseDefaults(t *testing.T) {
	p := Parse("", "", "", "", sortColumns, "products.name", "asc")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, "products.name", p.SortBy)
	assert.Equal(t, "asc", p.Order)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, "products.name ASC", p.OrderClause())
}

func TestParseRejectsGarbage(t *testing.T) {
	p := Parse("-2", "abc", "robert'); DROP TABLE", "sideways", sortColumns, "products.name", "asc")

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, "products.name", p.SortBy, "unknown sort keys fall back to default")
	assert.Equal(t, "asc", p.Order)
}

func TestParseCapsLimit(t *testing.T) {
	p := Parse("3", "5000", "created_at", "desc", sortColumns, "products.name", "asc")

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, "products.created_at DESC", p.OrderClause())
	assert.Equal(t, 2*MaxLimit, p.Offset())
}

func TestNewResultMeta(t *testing.T) {
	p := Params{Page: 2, Limit: 10}
	result := NewResult([]string{"a", "b"}, 21, p)

	assert.EqualValues(t, 21, result.Pagination.TotalItems)
	assert.Equal(t, 2, result.Pagination.CurrentPage)
	assert.Equal(t, 3, result.Pagination.TotalPages, "ceil(21/10)")
	assert.Equal(t, 10, result.Pagination.Limit)
}

func TestNewResultNeverNilData(t *testing.T) {
	p := Params{Page: 1, Limit: 10}
	result := NewResult[string](nil, 0, p)

	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.Equal(t, 0, result.Pagination.TotalPages)
}
