package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/config"
	"gorm.io/gorm"
)

const msgInvalidPage = "Invalid page."

// Paginator implements page-number pagination with an optional page_size
// query parameter capped at MaxPageSize.
type Paginator struct {
	DefaultPageSize int
	MaxPageSize     int
}

func NewPaginator(cfg config.APIConfig) Paginator {
	return Paginator{DefaultPageSize: cfg.DefaultPageSize, MaxPageSize: cfg.MaxPageSize}
}

type page struct {
	Count    int64
	Next     *string
	Previous *string
}

func (p Paginator) pageSize(c *gin.Context) int {
	size := p.DefaultPageSize
	if size <= 0 {
		size = 10
	}
	if raw := c.Query("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			size = n
		}
	}
	if p.MaxPageSize > 0 && size > p.MaxPageSize {
		size = p.MaxPageSize
	}
	return size
}

// Paginate counts q, loads the requested page into dest in the given order
// with the named associations preloaded, and returns the envelope metadata.
// It writes the error response itself and returns false when the page is out
// of range or the query fails.
func (p Paginator) Paginate(c *gin.Context, q *gorm.DB, order string, dest interface{}, preloads ...string) (*page, bool) {
	base := q.Session(&gorm.Session{})
	size := p.pageSize(c)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		respondInternal(c, err, "count page")
		return nil, false
	}

	numPages := int((count + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}

	number := 1
	switch raw := c.Query("page"); raw {
	case "":
	case "last":
		number = numPages
	default:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > numPages {
			respondDetail(c, http.StatusNotFound, msgInvalidPage)
			return nil, false
		}
		number = n
	}

	find := base.Order(order).Offset((number - 1) * size).Limit(size)
	for _, assoc := range preloads {
		find = find.Preload(assoc)
	}
	if err := find.Find(dest).Error; err != nil {
		respondInternal(c, err, "load page")
		return nil, false
	}

	meta := &page{Count: count}
	if number < numPages {
		meta.Next = pageURL(c, number+1)
	}
	if number > 1 {
		meta.Previous = pageURL(c, number-1)
	}
	return meta, true
}

// pageURL rebuilds the absolute request URL pointing at page n. Page 1 drops
// the parameter.
func pageURL(c *gin.Context, n int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path}
	query := c.Request.URL.Query()
	if n <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(n))
	}
	u.RawQuery = query.Encode()

	s := u.String()
	return &s
}

func (pg *page) response(results interface{}) PaginatedResponse {
	return PaginatedResponse{
		Count:    pg.Count,
		Next:     pg.Next,
		Previous: pg.Previous,
		Results:  results,
	}
}

// escapeLike escapes LIKE wildcards so filters match literally.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// containsPattern returns a lowercased LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return fmt.Sprintf("%%%s%%", escapeLike(strings.ToLower(s)))
}
