package commands

import (
	"errors"
	"slices"

	"ordering/internal/pkg/guard"
)

var ErrProcessOrderSignalsCommandIsNotConstructed = errors.New(
	"ProcessOrderSignalsCommand must be created via NewProcessOrderSignalsCommand constructor",
)

// SignalRecord is one delivered queue message. MessageID identifies the
// record in the batch result; Body holds the JSON signal {"id": "..."}.
type SignalRecord struct {
	MessageID string
	Body      []byte
}

// ProcessOrderSignalsCommand is a batch of signals delivered together.
// An empty batch is valid and produces no failures.
type ProcessOrderSignalsCommand struct { //nolint:recvcheck //using for validation
	records []SignalRecord

	guard guard.ConstructorGuard
}

func NewProcessOrderSignalsCommand(records []SignalRecord) ProcessOrderSignalsCommand {
	return ProcessOrderSignalsCommand{
		records: slices.Clone(records),
		guard:   guard.NewConstructorGuard(),
	}
}

func (c ProcessOrderSignalsCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderSignalsCommandIsNotConstructed)
}

func (c ProcessOrderSignalsCommand) Records() []SignalRecord {
	return slices.Clone(c.records)
}
