// Package services provides domain services of the ordering pipeline:
// behavior that works on an aggregate but does not belong inside it.
//
// The package includes:
//   - ReceiptRenderer: turns an Order into its receipt document
package services
