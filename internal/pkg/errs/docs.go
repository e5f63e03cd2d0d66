// Package errs provides standardized error types for the ordering service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes the error types behind every failure the service reports:
//   - ValueIsRequiredError and ValueIsInvalidError: a request or command failed validation
//   - ObjectNotFoundError: an order or receipt does not exist
//   - InfrastructureError: a storage, queue or artifact store collaborator failed
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels and map them
// to transport codes (HTTP status, ack/nack) at the boundary.
package errs
