package models

import "github.com/bikescope/bikescope/internal/alert"

// AlertView is the API representation of a detected alert.
type AlertView struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	StationID   string    `json:"station_id"`
	StationName string    `json:"station_name"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	Timestamp   Timestamp `json:"timestamp"`
	Resolved    bool      `json:"resolved"`
}

// AlertList is the response for a tenant's unresolved alert listing.
type AlertList struct {
	TenantID string      `json:"tenant_id"`
	Count    int         `json:"count"`
	Alerts   []AlertView `json:"alerts"`
}

// NewAlertView maps a stored alert to its API view.
func NewAlertView(a *alert.Alert) AlertView {
	return AlertView{
		ID:          a.ID,
		TenantID:    string(a.TenantID),
		StationID:   a.StationID,
		StationName: a.StationName,
		Type:        string(a.Type),
		Severity:    string(a.Severity),
		Timestamp:   Timestamp(a.Timestamp),
		Resolved:    a.Resolved,
	}
}
