package entities

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page selects a 1-based page of Limit records.
type Page struct {
	Number int
	Limit  int
}

// NewPage normalizes raw page/limit values: anything below 1 falls back to
// the defaults and the limit is capped at MaxLimit.
func NewPage(number, limit int) Page {
	if number < 1 {
		number = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: number, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// BookFilter narrows book listings. Author and Genre are case-insensitive
// substring matches, Year is exact. Zero values are unconstrained.
type BookFilter struct {
	Author string
	Genre  string
	Year   *int
}

// PageResult is one page of a listing together with the total match count.
type PageResult[T any] struct {
	Items []T
	Page  Page
	Total int64
}

func (r PageResult[T]) TotalPages() int {
	if r.Page.Limit <= 0 {
		return 0
	}
	return int((r.Total + int64(r.Page.Limit) - 1) / int64(r.Page.Limit))
}
