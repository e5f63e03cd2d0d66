// Package order provides the Order aggregate of the restaurant ordering
// pipeline and its status state machine.
//
// The package includes:
//   - Order: the aggregate root holding customer, items, table and status
//   - Status: the lifecycle state machine (Pending -> Processed)
//   - PlacedEvent and ProcessedEvent: domain events raised on creation and on processing
//
// Key business rules:
//   - Orders must have a valid identifier, a customer, at least one item and a table
//   - Free text is trimmed and NFC-normalized before it is stored
//   - Status only moves forward: Pending -> Processed
//   - Processing an already processed order reports ErrOrderAlreadyProcessed
//     so redelivered signals can be acknowledged without side effects
package order
