package order

import (
	"errors"
	"fmt"

	"ordering/internal/pkg/errs"
)

// ErrOrderAlreadyProcessed is returned when Process is called on an order
// that has already reached Processed.
var ErrOrderAlreadyProcessed = errors.New("order is already processed")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Processed
//
// Processed is final.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status; the order waits for its processing signal.
	Pending

	// Processed means the receipt is stored and the order is finalized.
	Processed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Processed: "PROCESSED",
	}
}

// ParseStatus converts the persisted/wire name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is Pending or Processed.
func (s Status) Validate() error {
	if s != Pending && s != Processed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name: "PENDING", "PROCESSED" or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Process transitions the status to Processed.
//
// Valid transitions:
//   - Pending -> Processed
//
// Processed returns ErrOrderAlreadyProcessed; Unknown returns a validation error.
func (s Status) Process() (Status, error) {
	switch s {
	case Pending:
		return Processed, nil
	case Processed:
		return 0, ErrOrderAlreadyProcessed
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to process", s.String()),
		)
	}
}
