package models

// Health represents the health status of the service.
type Health struct {
	Status  HealthStatus           `json:"status"`
	Time    Timestamp              `json:"timestamp"`
	Details map[string]interface{} `json:"details,omitempty"`
}
