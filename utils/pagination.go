package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

type Page struct {
	Page    int
	PerPage int
}

type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ParsePage reads page and per_page from the query string, falling back to
// page 1 and defaultPer, and capping per_page at maxPer.
func ParsePage(c *gin.Context, defaultPer, maxPer int) Page {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	per, err := strconv.Atoi(c.Query("per_page"))
	if err != nil || per < 1 {
		per = defaultPer
	}
	if per > maxPer {
		per = maxPer
	}
	return Page{Page: page, PerPage: per}
}

// Paginate slices an in-memory list. Pages past the end are empty.
func Paginate[T any](items []T, p Page) ([]T, PageMeta) {
	total := len(items)
	meta := PageMeta{Page: p.Page, PerPage: p.PerPage, Total: total}
	if p.PerPage > 0 {
		meta.TotalPages = (total + p.PerPage - 1) / p.PerPage
	}

	start := (p.Page - 1) * p.PerPage
	if start >= total {
		return []T{}, meta
	}
	end := start + p.PerPage
	if end > total {
		end = total
	}
	return items[start:end], meta
}
