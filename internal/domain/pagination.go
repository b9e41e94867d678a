package domain

// Pagination describes one page of a listing
type Pagination struct {
	Total int
	Page  int
	Limit int
	Pages int
}

// NormalizePage clamps page and limit to sane values and returns the row offset.
// page < 1 becomes 1, limit < 1 becomes DefaultPageSize, limit > MaxPageSize is capped.
func NormalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, (page - 1) * limit
}

// NewPagination builds page metadata; Pages is ceil(total/limit)
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}
