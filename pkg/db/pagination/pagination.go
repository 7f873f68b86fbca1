package pagination

// Pagination carries the common list-query paging fields.
type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
}

// PageInfo is embedded in list responses.
type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	TotalSize     int64  `json:"total_size"`
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Limit normalizes the requested page size.
func (p Pagination) Limit() int {
	if p.PageSize <= 0 {
		return defaultPageSize
	}
	if p.PageSize > maxPageSize {
		return maxPageSize
	}
	return p.PageSize
}
