// Package kernel provides the shared value objects of the ordering domain.
//
// The package includes:
//   - UUID: the identifier for orders and receipts, with validation and comparison
//   - NormalizeText: the canonical form for free text captured at intake
//
// Values are immutable and safe for concurrent use.
package kernel
