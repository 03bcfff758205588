package service

import (
	"fmt"

	"github.com/volt-ev/fleet-console/internal/models"
)

// CheckCapacity returns a warning when assigning quantity vehicles would push
// the station over its capacity. Advisory only: callers surface it alongside
// a successful submission, never instead of one.
func CheckCapacity(station *models.Station, quantity int) *models.CapacityWarning {
	if station == nil {
		return nil
	}
	projected := station.CurrentVehicles + quantity
	if projected <= station.MaxCapacity {
		return nil
	}
	return &models.CapacityWarning{
		CurrentVehicles: station.CurrentVehicles,
		MaxCapacity:     station.MaxCapacity,
		Requested:       quantity,
		Projected:       projected,
		Message: fmt.Sprintf("station holds %d of %d vehicles; assigning %d more would exceed capacity by %d",
			station.CurrentVehicles, station.MaxCapacity, quantity, projected-station.MaxCapacity),
	}
}

// zeroCountHints is the troubleshooting checklist shown when a known count is
// exactly zero.
var zeroCountHints = []string{
	"recheck the model and color filters",
	"verify the vehicles have real license plates (placeholders are excluded)",
	"verify the color string matches exactly, accents aside",
}

// Badge renders an estimate as the inventory badge: ok for a positive count,
// error with hints at known zero, neutral when the count is unknown.
func Badge(est models.LocalEstimate) models.InventoryBadge {
	switch {
	case !est.Known:
		return models.InventoryBadge{Tone: models.BadgeToneUnknown, Label: "inventory unknown"}
	case est.Count == 0:
		return models.InventoryBadge{
			Tone:  models.BadgeToneError,
			Label: "no eligible vehicles",
			Hints: zeroCountHints,
		}
	default:
		return models.InventoryBadge{
			Tone:  models.BadgeToneOK,
			Label: fmt.Sprintf("%d eligible vehicles", est.Count),
		}
	}
}
