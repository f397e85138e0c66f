package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListParams bundles the standard list-endpoint query parameters.
type ListParams struct {
	Filters map[string]string `json:"filters"`
	Sort    SortParams        `json:"sort"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
	Search  string            `json:"search"`
}

// SortParams represents sorting parameters
type SortParams struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// PaginationResponse represents pagination metadata
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ParseListParams extracts standardized query parameters from a Gin
// context. Filters use the filters[field]=value form, sorting uses
// sort[field] / sort[order]. Default sort is created_at desc so lists
// read most-recent-first.
func ParseListParams(c *gin.Context) ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	filters := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if strings.HasPrefix(key, "filters[") && strings.HasSuffix(key, "]") {
			fieldName := key[8 : len(key)-1]
			if len(values) > 0 && values[0] != "" {
				filters[fieldName] = values[0]
			}
		}
	}

	sortField := c.Query("sort[field]")
	sortOrder := c.Query("sort[order]")
	if sortField == "" {
		sortField = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return ListParams{
		Filters: filters,
		Sort:    SortParams{Field: sortField, Order: sortOrder},
		Page:    page,
		Limit:   limit,
		Search:  c.Query("search"),
	}
}

// ApplyFilters adds WHERE clauses for whitelisted filter fields.
func ApplyFilters(db *gorm.DB, filters map[string]string, allowed map[string]string) *gorm.DB {
	for field, value := range filters {
		if column, ok := allowed[field]; ok {
			db = db.Where(fmt.Sprintf("%s = ?", column), value)
		}
	}
	return db
}

// ApplySearch adds a case-insensitive LIKE across the given columns.
func ApplySearch(db *gorm.DB, search string, columns []string) *gorm.DB {
	if search == "" || len(columns) == 0 {
		return db
	}

	var clauses []string
	var args []interface{}
	for _, column := range columns {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", column))
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	return db.Where(strings.Join(clauses, " OR "), args...)
}

// ApplySort orders by a whitelisted column, falling back to created_at.
func ApplySort(db *gorm.DB, sort SortParams, allowed map[string]string) *gorm.DB {
	column, ok := allowed[sort.Field]
	if !ok {
		column = "created_at"
	}
	return db.Order(fmt.Sprintf("%s %s", column, strings.ToUpper(sort.Order)))
}

// ApplyPagination adds LIMIT/OFFSET for the given page.
func ApplyPagination(db *gorm.DB, page, limit int) *gorm.DB {
	return db.Offset((page - 1) * limit).Limit(limit)
}

// BuildPaginationResponse builds the pagination metadata block.
func BuildPaginationResponse(page, limit int, total int64) PaginationResponse {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return PaginationResponse{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(page) < totalPages,
		HasPrev:    page > 1,
	}
}
