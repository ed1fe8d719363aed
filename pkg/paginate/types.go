package paginate

import "context"

// Meta describes the position of a page within a collection. TotalPages is
// computed upstream and never re-derived.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is the paginated collection envelope returned by every list endpoint
type Page[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// Fetcher loads one page of a collection
type Fetcher[T any] func(ctx context.Context, page, limit int) (*Page[T], error)

// State is a point-in-time copy of a Resource
type State[T any] struct {
	Page    int
	Limit   int
	Data    []T
	Meta    Meta
	Loading bool
	// Err is the message of the last failed fetch, or "" after a successful
	// or in-progress one
	Err string
}

// TotalPages is a shorthand for Meta.TotalPages
func (s State[T]) TotalPages() int {
	return s.Meta.TotalPages
}
