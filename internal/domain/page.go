package domain

// SortDirection represents ordering direction for sortable fields.
type SortDirection string

const (
	SortDirectionAsc  SortDirection = "asc"
	SortDirectionDesc SortDirection = "desc"
)

// SortOrder is one ordering clause of a page request.
type SortOrder struct {
	Field     string
	Direction SortDirection
}

// Pagination bounds. Requests beyond MaxPageSize are clamped rather than
// rejected.
const (
	DefaultPageSize = 20
	MaxPageSize     = 1000
)

// PageRequest selects a window of a result set. Page numbers are zero-based.
type PageRequest struct {
	Page int
	Size int
	Sort []SortOrder
}

// Limit returns the effective page size.
func (p PageRequest) Limit() int {
	switch {
	case p.Size <= 0:
		return DefaultPageSize
	case p.Size > MaxPageSize:
		return MaxPageSize
	default:
		return p.Size
	}
}

// Offset returns the row offset of the window.
func (p PageRequest) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return p.Page * p.Limit()
}

// Page is one window of a result set together with the total count the same
// predicate produced at the same instant.
type Page[T any] struct {
	Content    []T
	TotalCount int64
	Number     int
	Size       int
}

// TotalPages returns the number of windows the full result set spans.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := int(p.TotalCount) / p.Size
	if int(p.TotalCount)%p.Size != 0 {
		pages++
	}
	return pages
}
