package models

// Alert severities.
const (
	AlertInfo     = "info"
	AlertWarning  = "warning"
	AlertCritical = "critical"
)

// Alert is an admin announcement visible only within its region.
type Alert struct {
	ID        string `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Message   string `json:"message" db:"message"`
	Type      string `json:"type" db:"type"` // info, warning or critical
	CreatedBy string `json:"created_by" db:"created_by"`
	Region    string `json:"region" db:"region"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

// CreateAlertRequest is the request body for POST /api/alerts
type CreateAlertRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// UpdateAlertRequest enumerates the editable alert fields.
type UpdateAlertRequest struct {
	Title   *string `json:"title,omitempty"`
	Message *string `json:"message,omitempty"`
	Type    *string `json:"type,omitempty"`
}
