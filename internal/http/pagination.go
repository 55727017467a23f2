package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pointdigital/manager-api/internal/model"
	"github.com/pointdigital/manager-api/internal/service"
)

// page reads ?page=N. Without the parameter lists are returned whole.
func (h *Handler) page(c *gin.Context) (*model.Page, error) {
	raw, ok := c.GetQuery("page")
	if !ok {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n-1 > model.MaxOffset/h.pageSize {
		return nil, service.ErrInvalidInput
	}
	return &model.Page{Number: n, Size: h.pageSize}, nil
}

func pageURL(c *gin.Context, number int) *string {
	u := *c.Request.URL
	q := u.Query()
	if number <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(number))
	}
	u.RawQuery = q.Encode()
	u.Host = c.Request.Host
	u.Scheme = "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		u.Scheme = "https"
	}
	s := u.String()
	return &s
}

// writeList renders results as a bare array, or as a page envelope when a page was requested.
func writeList[T any](c *gin.Context, page *model.Page, total int64, results []T) {
	if page == nil {
		c.JSON(http.StatusOK, results)
		return
	}
	if page.Number > 1 && int64(page.Offset()) >= total {
		c.JSON(http.StatusNotFound, errorBody("Invalid page.", "NOT_FOUND"))
		return
	}
	var next, previous *string
	if int64(page.Offset()+len(results)) < total {
		next = pageURL(c, page.Number+1)
	}
	if page.Number > 1 {
		previous = pageURL(c, page.Number-1)
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    total,
		"next":     next,
		"previous": previous,
		"results":  results,
	})
}
