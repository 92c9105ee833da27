package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bikescope/bikescope/internal/api/models"
	"github.com/bikescope/bikescope/internal/api/response"
	"github.com/bikescope/bikescope/internal/station"
)

// CycleRunner triggers one synchronous ingestion cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// StationHandler handles station endpoints.
type StationHandler struct {
	stations  station.Repository
	refresher CycleRunner
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(stations station.Repository, refresher CycleRunner) *StationHandler {
	return &StationHandler{
		stations:  stations,
		refresher: refresher,
	}
}

// ListStations handles GET /v1/stations/{tenantID} - list a tenant's stations.
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	tenantID, err := station.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		response.BadRequest(w, r, "unknown tenant", nil)
		return
	}

	stations, err := h.stations.ListByTenant(r.Context(), tenantID)
	if err != nil {
		response.InternalError(w, r, "failed to list stations")
		return
	}

	views := make([]models.StationView, 0, len(stations))
	for _, s := range stations {
		views = append(views, models.NewStationView(s))
	}

	response.JSON(w, r, http.StatusOK, models.StationList{
		TenantID: string(tenantID),
		Count:    len(views),
		Stations: views,
	})
}

// RefreshStations handles POST /v1/stations/refresh - run one ingestion
// cycle synchronously. The request blocks while any in-flight cycle
// finishes, then runs its own.
func (h *StationHandler) RefreshStations(w http.ResponseWriter, r *http.Request) {
	if err := h.refresher.RunCycle(r.Context()); err != nil {
		response.InternalError(w, r, "ingestion cycle failed")
		return
	}

	response.JSON(w, r, http.StatusOK, models.RefreshResult{
		Status:      "completed",
		CompletedAt: models.Timestamp(time.Now()),
	})
}
