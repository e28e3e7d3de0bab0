package handlers

import (
	"net/http"
	"strconv"

	"github.com/pahanaedu/pos-platform/internal/models"
)

// pathID parses the {id} segment of the route.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// pagination reads ?page= and ?pageSize=, falling back to the defaults the
// terminal screens assume.
func pagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = models.DefaultPageSize
	}

	return page, pageSize
}

func paginated(data any, total, page, pageSize int) *models.PaginatedResponse {
	return &models.PaginatedResponse{
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
