package handlers

import (
	"net/http"

	service "github.com/pahanaedu/pos-platform/internal/services"
	"github.com/pahanaedu/pos-platform/internal/utils/response"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) GetDashboardStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		stats, err := h.analyticsService.GetDashboardStats(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, stats)
	}
}
