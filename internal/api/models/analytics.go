package models

import "github.com/bikescope/bikescope/internal/analytics"

// AnalyticsReport is the API representation of a tenant's trip analytics.
type AnalyticsReport struct {
	TenantID    string              `json:"tenant_id"`
	Analytics   analytics.Analytics `json:"analytics"`
	GeneratedAt Timestamp           `json:"generated_at"`
}
