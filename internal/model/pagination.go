package model

// Pagination describes the page window of a list response.
type Pagination struct {
	TotalRecords int64 `json:"total_records"`
	CurrentPage  int   `json:"current_page"`
	PerPage      int   `json:"per_page"`
	TotalPages   int   `json:"total_pages"`
}

// NewPagination computes total_pages = ceil(total/perPage). A zero or
// negative perPage is treated as one row per page to avoid division by zero.
func NewPagination(total int64, page, perPage int) Pagination {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{
		TotalRecords: total,
		CurrentPage:  page,
		PerPage:      perPage,
		TotalPages:   pages,
	}
}
