package models

// Waste types for schedules and collection points.
const (
	WasteRecyclable = "Reciclável"
	WasteOrganic    = "Orgânico"
	WasteGlass      = "Vidro"
	WasteGeneral    = "Geral"
)

// CollectionSchedule is a recurring weekly collection window for a region.
type CollectionSchedule struct {
	ID        string `json:"id" db:"id"`
	DayOfWeek string `json:"day_of_week" db:"day_of_week"` // "Segunda-feira" .. "Domingo"
	StartTime string `json:"start_time" db:"start_time"`   // "08:00"
	EndTime   string `json:"end_time" db:"end_time"`
	WasteType string `json:"waste_type" db:"waste_type"`
	Sector    string `json:"sector" db:"sector"`
	Region    string `json:"region" db:"region"`
}

// CreateScheduleRequest is the request body for POST /api/schedules.
// Region is stamped from the acting admin, never taken from the body.
type CreateScheduleRequest struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	WasteType string `json:"waste_type"`
	Sector    string `json:"sector"`
}

// UpdateScheduleRequest enumerates the editable schedule fields.
type UpdateScheduleRequest struct {
	DayOfWeek *string `json:"day_of_week,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	WasteType *string `json:"waste_type,omitempty"`
	Sector    *string `json:"sector,omitempty"`
}

// NextCollectionInfo describes the next upcoming collection window.
type NextCollectionInfo struct {
	DayLabel  string `json:"day_label"` // "Hoje", "Amanhã" or the weekday name
	TimeRange string `json:"time_range"`
	WasteType string `json:"waste_type"`
	Sector    string `json:"sector"`
}
