package fleetapi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fleet backend failure the way the console reacts to
// it, independent of the exact endpoint that produced it.
type ErrorKind string

const (
	// KindValidation: 400, malformed or inventory-insufficient request
	KindValidation ErrorKind = "validation"
	// KindUnauthorized: 401, token missing/expired; surfaced as session-expired
	KindUnauthorized ErrorKind = "unauthorized"
	// KindPermission: 403, operator lacks the permission
	KindPermission ErrorKind = "permission"
	// KindNotFound: 404, referenced resource no longer exists
	KindNotFound ErrorKind = "not_found"
	// KindServer: 5xx
	KindServer ErrorKind = "server"
	// KindNetwork: no HTTP response at all (timeout, connection failure)
	KindNetwork ErrorKind = "network"
)

// APIError is a classified fleet backend failure.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fleet api: %s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("fleet api: %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func classifyStatus(status int) ErrorKind {
	switch {
	case status == 400:
		return KindValidation
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindPermission
	case status == 404:
		return KindNotFound
	default:
		return KindServer
	}
}
