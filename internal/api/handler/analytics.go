package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bikescope/bikescope/internal/analytics"
	"github.com/bikescope/bikescope/internal/api/models"
	"github.com/bikescope/bikescope/internal/api/response"
	"github.com/bikescope/bikescope/internal/station"
)

// AnalyticsHandler handles analytics endpoints.
type AnalyticsHandler struct {
	aggregator *analytics.Aggregator
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(aggregator *analytics.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{aggregator: aggregator}
}

// GetAnalytics handles GET /v1/analytics/{tenantID} - aggregate trip
// analytics for a tenant.
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	tenantID, err := station.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, r, "unknown tenant", nil)
		return
	}

	result, err := h.aggregator.TenantAnalytics(r.Context(), tenantID)
	if err != nil {
		response.InternalError(w, r, "failed to aggregate analytics")
		return
	}

	response.JSON(w, r, http.StatusOK, models.AnalyticsReport{
		TenantID:    string(tenantID),
		Analytics:   *result,
		GeneratedAt: models.Timestamp(time.Now()),
	})
}
