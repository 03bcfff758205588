package models

// VehicleStatus represents a vehicle lifecycle status
type VehicleStatus string

const (
	VehicleStatusDraft       VehicleStatus = "draft"
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusReserved    VehicleStatus = "reserved"
	VehicleStatusRented      VehicleStatus = "rented"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// Vehicle is the fleet backend's vehicle record. The console never owns
// these; every copy it holds is transient and non-authoritative.
type Vehicle struct {
	ID           string        `json:"id"`
	Model        string        `json:"model"`
	Color        string        `json:"color"`
	Brand        string        `json:"brand,omitempty"`
	Type         string        `json:"type,omitempty"`
	Status       VehicleStatus `json:"status"`
	LicensePlate string        `json:"licensePlate,omitempty"`
	BatteryLevel int           `json:"batteryLevel,omitempty"`

	// The backend is inconsistent about the station field name; both
	// spellings are accepted and Station() resolves them.
	StationID    string `json:"stationId,omitempty"`
	StationIDAlt string `json:"station_id,omitempty"`
}

// Station returns the owning station ID regardless of which field name the
// backend used. Empty means unassigned (depot).
func (v Vehicle) Station() string {
	if v.StationID != "" {
		return v.StationID
	}
	return v.StationIDAlt
}

// Pagination mirrors the backend's list envelope
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// VehicleList is a paginated vehicle listing
type VehicleList struct {
	Vehicles   []Vehicle  `json:"vehicles"`
	Pagination Pagination `json:"pagination"`
}
