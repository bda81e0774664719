package handlers

import (
	"net/http"
	"strconv"
	"time"

	"busbooking/internal/domain"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape for every endpoint.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Timestamp: now()})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data, Timestamp: now()})
}

func respondError(c *gin.Context, status int, message string, err error) {
	env := Envelope{Success: false, Message: message, Timestamp: now()}
	// 500 details go to logs only, never to clients.
	if err != nil && status != http.StatusInternalServerError {
		env.Error = err.Error()
	}
	c.JSON(status, env)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// PageMeta is the pagination block returned alongside list data.
type PageMeta struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

func NewPageMeta(p domain.PageParams, total int) PageMeta {
	pages := total / p.Limit
	if total%p.Limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return PageMeta{
		CurrentPage:  p.Page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: p.Limit,
		HasNextPage:  p.Page < pages,
		HasPrevPage:  p.Page > 1,
	}
}

func parsePage(c *gin.Context) domain.PageParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return domain.NormalizePage(page, limit)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}

// listPayload wraps items with their pagination meta.
func listPayload(key string, items any, meta PageMeta) gin.H {
	return gin.H{key: items, "pagination": meta}
}
