package skyops

import (
	"errors"
	"fmt"
	"net/http"
)

// SettlementError carries the HTTP status a settlement failure maps to,
// following the taxonomy: security violations and blacklists are 403,
// unknown pilots are 404, persistence failures of the must-succeed stages
// are 500.
type SettlementError struct {
	Status  int
	Message string
	Err     error
}

func (e *SettlementError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *SettlementError) Unwrap() error {
	return e.Err
}

func securityViolation(message string) *SettlementError {
	return &SettlementError{Status: http.StatusForbidden, Message: message}
}

func persistenceFailure(message string, err error) *SettlementError {
	return &SettlementError{Status: http.StatusInternalServerError, Message: message, Err: err}
}

var (
	ErrPilotNotFound    = &SettlementError{Status: http.StatusNotFound, Message: "Pilot not found"}
	ErrBlacklisted      = &SettlementError{Status: http.StatusForbidden, Message: "Account blacklisted"}
	ErrUnsignedData     = securityViolation("Security Violation: Unsigned Data")
	ErrBadSignature     = securityViolation("Security Violation: Data Integrity Failed")
	ErrStaleSubmission  = securityViolation("Data is expired (Replay Protection)")
	ErrNoActiveAircraft = errors.New("no fleet aircraft could be resolved for this flight")
)
