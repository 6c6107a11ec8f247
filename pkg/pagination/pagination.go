// Package pagination holds the list envelope and query-side parsing shared
// by every paginated read endpoint.
package pagination

import "strconv"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params are the normalized list options after parsing. SortBy is already
// checked against the caller's whitelist; Order is "asc" or "desc".
type Params struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// OrderClause renders the SQL ORDER BY expression. SortBy must come from a
// whitelist; it is interpolated, not bound.
func (p Params) OrderClause() string {
	dir := "ASC"
	if p.Order == "desc" {
		dir = "DESC"
	}
	return p.SortBy + " " + dir
}

// Meta is the pagination block every list response carries.
type Meta struct {
	TotalItems  int64 `json:"totalItems"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	Limit       int   `json:"limit"`
}

// Result pairs a page of items with its meta block.
type Result[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

func NewResult[T any](items []T, total int64, p Params) Result[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Result[T]{
		Data: items,
		Pagination: Meta{
			TotalItems:  total,
			CurrentPage: p.Page,
			TotalPages:  totalPages,
			Limit:       p.Limit,
		},
	}
}

// Parse normalizes raw query values. sortWhitelist maps the caller-facing
// sort key to the SQL column it projects to; unknown keys fall back to
// defaultSort. Page and limit fall back to sane values instead of erroring,
// matching how list screens actually call these endpoints.
func Parse(rawPage, rawLimit, rawSort, rawOrder string, sortWhitelist map[string]string, defaultSort, defaultOrder string) Params {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	sortBy, ok := sortWhitelist[rawSort]
	if !ok {
		sortBy = defaultSort
	}

	order := rawOrder
	if order != "asc" && order != "desc" {
		order = defaultOrder
	}

	return Params{Page: page, Limit: limit, SortBy: sortBy, Order: order}
}
