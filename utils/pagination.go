package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination holds the parsed page window for list endpoints.
type Pagination struct {
	Page  int
	Limit int
}

// GetPagination reads page/limit query parameters with sane defaults.
func GetPagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return Pagination{Page: page, Limit: limit}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}
