package utils

import (
	"math"
	"net/http"
	"strconv"
)

// PaginationParams contains pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// Pagination is the metadata block returned with paged results
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// DefaultPageSize is the default number of items per page
const DefaultPageSize = 25

// MaxPageSize is the maximum number of items per page
const MaxPageSize = 100

// ParsePaginationParams reads page and limit from the query string
func ParsePaginationParams(r *http.Request, defaultLimit, maxLimit int) PaginationParams {
	q := r.URL.Query()
	page := ParseIntQuery(q.Get("page"), 1)
	limit := ParseIntQuery(q.Get("limit"), defaultLimit)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// keep (page-1)*limit inside int so far pages stay past the end
	if page > math.MaxInt/limit {
		page = math.MaxInt / limit
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// TotalPages returns ceil(total/limit)
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}

// NewPaginatedResponse creates a new paginated response
func NewPaginatedResponse(items interface{}, params PaginationParams, total int64) PaginatedResponse {
	return PaginatedResponse{
		Items: items,
		Pagination: Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: TotalPages(total, params.Limit),
		},
	}
}

// ParseIntQuery parses an integer query value, falling back to defaultValue
func ParseIntQuery(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}
