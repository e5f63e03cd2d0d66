package commands

import (
	"context"

	"ordering/internal/core/domain/model/outbox"
)

// SignalFailure names a record of the batch that was not processed.
type SignalFailure struct {
	MessageID string
	Err       error
}

// ProcessOrderSignalsResult lists the failed records in delivery order.
// Records that are not listed succeeded.
type ProcessOrderSignalsResult struct {
	Failures []SignalFailure
}

// FailedMessageIDs returns the identifiers of the failed records.
func (r ProcessOrderSignalsResult) FailedMessageIDs() []string {
	ids := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		ids = append(ids, f.MessageID)
	}
	return ids
}

// ProcessOrderSignalsCommandHandler processes a batch of signals one by one
// in delivery order. A failing record never stops the rest of the batch;
// it is reported in the result so the transport can redeliver only it.
type ProcessOrderSignalsCommandHandler struct {
	processor OrderProcessor
}

func NewProcessOrderSignalsCommandHandler(processor OrderProcessor) ProcessOrderSignalsCommandHandler {
	return ProcessOrderSignalsCommandHandler{
		processor: processor,
	}
}

func (h *ProcessOrderSignalsCommandHandler) Handle(
	ctx context.Context,
	cmd ProcessOrderSignalsCommand,
) (ProcessOrderSignalsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ProcessOrderSignalsResult{}, err
	}

	var result ProcessOrderSignalsResult
	for _, record := range cmd.Records() {
		if err := h.processRecord(ctx, record); err != nil {
			result.Failures = append(result.Failures, SignalFailure{
				MessageID: record.MessageID,
				Err:       err,
			})
		}
	}

	return result, nil
}

func (h *ProcessOrderSignalsCommandHandler) processRecord(ctx context.Context, record SignalRecord) error {
	orderID, err := outbox.DecodeSignal(record.Body)
	if err != nil {
		return err
	}

	cmd, err := NewProcessOrderCommand(orderID)
	if err != nil {
		return err
	}

	return h.processor.Handle(ctx, cmd)
}
