package models

// Page sizes used by the listing endpoints
const (
	ProductsPerPage = 8
	OrdersPerPage   = 8
	UsersPerPage    = 10
	CouponsPerPage  = 10
	ReviewsPerPage  = 5
)

// Pagination describes one page of a listing
type Pagination struct {
	Page int
	Take int
}

// NewPagination normalizes a 1-based page number
func NewPagination(page, take int) Pagination {
	if page < 1 {
		page = 1
	}
	return Pagination{Page: page, Take: take}
}

// Offset returns the number of rows to skip
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Take
}

// NumOfPages returns how many pages total rows span
func (p Pagination) NumOfPages(total int) int {
	if p.Take <= 0 {
		return 0
	}
	return (total + p.Take - 1) / p.Take
}

// SortDirection is an ORDER BY direction
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)
