package service

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/volt-ev/fleet-console/internal/fleetapi"
	"github.com/volt-ev/fleet-console/internal/models"
)

// The assign-by-quantity response shape is not contractually fixed: the
// backend may return the vehicle list, only a count, or only a message with
// the number buried in it. All of that ambiguity is contained here; the rest
// of the workflow sees one canonical total + list.

var errUnreadableResponse = errors.New("assignment response carried no recognizable total")

var firstInteger = regexp.MustCompile(`\d+`)

func normalizeAssignResponse(resp *fleetapi.AssignByQuantityResponse) (int, []models.Vehicle, error) {
	if resp.TotalAssigned != nil {
		return *resp.TotalAssigned, resp.AssignedVehicles, nil
	}
	if len(resp.AssignedVehicles) > 0 {
		return len(resp.AssignedVehicles), resp.AssignedVehicles, nil
	}
	if digits := firstInteger.FindString(resp.Message); digits != "" {
		total, err := strconv.Atoi(digits)
		if err == nil {
			return total, nil, nil
		}
	}
	return 0, nil, errUnreadableResponse
}
