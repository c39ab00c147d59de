package consensus

import (
	"errors"
	"fmt"
)

var (
	// ErrGasComponentNotFound is returned when the fee schedule is structurally
	// valid but carries no entry for the functionality needed to price gas.
	// A missing entry must never silently default to a zero fee.
	ErrGasComponentNotFound = errors.New("gas component not found in fee schedule")

	// ErrFunctionalityNotFound is surfaced by gas price retrieval when the
	// contract-call functionality code is absent from the fetched schedule.
	ErrFunctionalityNotFound = errors.New("contract call functionality not present in fee schedule")

	// ErrInvalidFeeScheduleFormat is returned when the bytes fetched from the
	// fee schedule or exchange rate file do not decode into the expected
	// structure, or the decoded schedule lacks a current section.
	ErrInvalidFeeScheduleFormat = errors.New("invalid fee schedule format")

	// ErrInvalidResponseFormat flags a programming-contract violation: a record
	// was requested from a value that cannot supply one. It is a defect in the
	// caller, not a network failure.
	ErrInvalidResponseFormat = errors.New("response format is invalid for record retrieval")
)

// statusUnknown is the sentinel status attached to failures that carry no
// native status code, e.g. transport-level errors.
const statusUnknown = "UNKNOWN"

// NativeOperationError reports a non-success status returned by the consensus
// network for a query or transaction. Only the native status name and message
// survive normalization; the native error type and internals are discarded at
// the executor boundary.
type NativeOperationError struct {
	// Status is the native status name (e.g. "INSUFFICIENT_PAYER_BALANCE"),
	// or "UNKNOWN" when the failure carried none.
	Status string

	// Message is the native error message.
	Message string
}

// Error implements the error interface.
func (e *NativeOperationError) Error() string {
	return fmt.Sprintf("consensus network returned %s: %s", e.Status, e.Message)
}
