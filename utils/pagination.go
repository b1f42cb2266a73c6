package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 15
	MaxPageSize     = 100
)

// Page is the envelope every list endpoint responds with.
type Page struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  any     `json:"results"`
}

// PageParams reads ?page= and ?page_size= with defaults applied and the
// size capped at MaxPageSize. Unparseable values fall back to defaults.
func PageParams(c *gin.Context) (page, size int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	size = DefaultPageSize
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 {
		size = v
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// NewPage builds the response envelope, deriving next/previous links
// from the request URL.
func NewPage(c *gin.Context, count int64, page, size int, results any) Page {
	p := Page{Count: count, Results: results}
	if int64(page*size) < count {
		p.Next = pageLink(c, page+1)
	}
	if page > 1 {
		p.Previous = pageLink(c, page-1)
	}
	return p
}

func pageLink(c *gin.Context, page int) *string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := scheme + "://" + c.Request.Host + u.String()
	return &link
}
