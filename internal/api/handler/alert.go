package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bikescope/bikescope/internal/alert"
	"github.com/bikescope/bikescope/internal/api/models"
	"github.com/bikescope/bikescope/internal/api/response"
	"github.com/bikescope/bikescope/internal/station"
)

// AlertHandler handles alert endpoints.
type AlertHandler struct {
	alerts alert.Repository
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts alert.Repository) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// ListAlerts handles GET /v1/alerts/{tenantID} - list a tenant's unresolved
// alerts, newest first. The limit query parameter is clamped to [1, 100]
// and defaults to 50.
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	tenantID, err := station.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, r, "unknown tenant", nil)
		return
	}

	limit := alert.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, r, "limit must be an integer", []models.FieldError{
				{Field: "limit", Message: "must be an integer"},
			})
			return
		}
	}

	alerts, err := h.alerts.ListUnresolved(r.Context(), tenantID, limit)
	if err != nil {
		response.InternalError(w, r, "failed to list alerts")
		return
	}

	views := make([]models.AlertView, 0, len(alerts))
	for _, a := range alerts {
		views = append(views, models.NewAlertView(a))
	}

	response.JSON(w, r, http.StatusOK, models.AlertList{
		TenantID: string(tenantID),
		Count:    len(views),
		Alerts:   views,
	})
}
