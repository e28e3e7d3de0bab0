package models

type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// DefaultPageSize matches the fixed page length of every paginated listing.
const DefaultPageSize = 20
