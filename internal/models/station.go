package models

// StationStatus represents a station's operational status
type StationStatus string

const (
	StationStatusActive   StationStatus = "active"
	StationStatusInactive StationStatus = "inactive"
)

// Station is the fleet backend's station record
type Station struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Address         string        `json:"address,omitempty"`
	Status          StationStatus `json:"status"`
	MaxCapacity     int           `json:"maxCapacity"`
	CurrentVehicles int           `json:"currentVehicles"`
}

// StationList is a paginated station listing
type StationList struct {
	Stations   []Station  `json:"stations"`
	Pagination Pagination `json:"pagination"`
}
