package service

import (
	"errors"
	"fmt"

	"github.com/volt-ev/fleet-console/internal/fleetapi"
	"github.com/volt-ev/fleet-console/internal/models"
)

// WorkflowCode classifies a terminal workflow failure for presentation.
type WorkflowCode string

const (
	CodeValidation            WorkflowCode = "validation"
	CodeInsufficientInventory WorkflowCode = "insufficient_inventory"
	CodePermissionDenied      WorkflowCode = "permission_denied"
	CodeStationNotFound       WorkflowCode = "station_not_found"
	CodeSessionExpired        WorkflowCode = "session_expired"
	CodeNetwork               WorkflowCode = "network"
	CodeUnknown               WorkflowCode = "unknown"
)

// WorkflowError is a terminal failure of one submission. Errors of this type
// are never retried automatically; the operator re-submits.
type WorkflowError struct {
	Code     WorkflowCode
	Message  string
	Mismatch *models.InventoryMismatch
	Err      error
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *WorkflowError) Unwrap() error { return e.Err }

func validationErr(format string, args ...any) *WorkflowError {
	return &WorkflowError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// mapMutationError translates a fleet backend failure on a mutation call into
// the workflow taxonomy. estimate is the console's own count at submission
// time; when a 400 comes back despite a positive local count, the discrepancy
// is surfaced as a structured mismatch rather than hidden.
func mapMutationError(err error, estimate models.LocalEstimate) *WorkflowError {
	var apiErr *fleetapi.APIError
	if !errors.As(err, &apiErr) {
		return &WorkflowError{Code: CodeUnknown, Message: err.Error(), Err: err}
	}

	switch apiErr.Kind {
	case fleetapi.KindValidation:
		we := &WorkflowError{
			Code:    CodeInsufficientInventory,
			Message: apiErr.Message,
			Err:     err,
		}
		if estimate.Known && estimate.Count > 0 {
			we.Mismatch = &models.InventoryMismatch{
				ClientCount:    estimate.Count,
				ClientKnown:    true,
				BackendMessage: apiErr.Message,
			}
		}
		return we
	case fleetapi.KindUnauthorized:
		return &WorkflowError{Code: CodeSessionExpired, Message: "session expired, sign in again", Err: err}
	case fleetapi.KindPermission:
		return &WorkflowError{Code: CodePermissionDenied, Message: "you do not have permission for this operation", Err: err}
	case fleetapi.KindNotFound:
		return &WorkflowError{Code: CodeStationNotFound, Message: "the selected station no longer exists, pick another", Err: err}
	case fleetapi.KindNetwork:
		return &WorkflowError{Code: CodeNetwork, Message: "could not reach the fleet backend, check connectivity", Err: err}
	default:
		return &WorkflowError{Code: CodeUnknown, Message: apiErr.Message, Err: err}
	}
}
