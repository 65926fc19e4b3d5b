package server

import (
	"strconv"
	"strings"

	"prized-pic/internal/web"

	"github.com/gin-gonic/gin"
)

const (
	maxPhotosPerPage = 96
	maxPage          = 1 << 20
)

type pageWindow struct {
	Page    int
	PerPage int
}

func (w pageWindow) Offset() int {
	return (w.Page - 1) * w.PerPage
}

// clamp moves a page past the end back onto the last page for total items.
func (w pageWindow) clamp(total int64) pageWindow {
	last := max(int((total+int64(w.PerPage)-1)/int64(w.PerPage)), 1)
	if w.Page > last {
		w.Page = last
	}
	return w
}

func parsePagination(c *gin.Context, defaultPerPage int) pageWindow {
	window := pageWindow{Page: 1, PerPage: defaultPerPage}
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			window.Page = min(value, maxPage)
		}
	}
	if raw := strings.TrimSpace(c.Query("per_page")); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			window.PerPage = value
		}
	}
	if window.PerPage <= 0 {
		window.PerPage = 1
	}
	if window.PerPage > maxPhotosPerPage {
		window.PerPage = maxPhotosPerPage
	}
	return window
}

// buildPaginationData clamps the requested page into range for the given total.
func buildPaginationData(basePath string, window pageWindow, total int64) web.PaginationData {
	perPage := window.PerPage
	if perPage <= 0 {
		perPage = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages == 0 {
		totalPages = 1
	}
	page := min(max(window.Page, 1), totalPages)
	data := web.PaginationData{
		BasePath:   basePath,
		Page:       page,
		PerPage:    perPage,
		Total:      int(total),
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
	if data.HasPrev {
		data.PrevPage = page - 1
	}
	if data.HasNext {
		data.NextPage = page + 1
	}
	return data
}
