package commands

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
)

// OrderProcessor handles a single processing signal.
type OrderProcessor interface {
	Handle(ctx context.Context, cmd ProcessOrderCommand) error
}

// ProcessOrderCommandHandler renders and stores the receipt of a Pending
// order and moves it to Processed.
//
// The order row stays locked from lookup to commit, so two deliveries of the
// same signal are serialised: the second one sees a Processed order and
// returns without writing anything. A receipt that is already stored is
// kept as is; only the status transition is retried.
type ProcessOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	receipts   ports.ReceiptStore
	renderer   services.ReceiptRenderer
}

func NewProcessOrderCommandHandler(
	uowFactory OrderUoWFactory,
	receipts ports.ReceiptStore,
	renderer services.ReceiptRenderer,
) ProcessOrderCommandHandler {
	return ProcessOrderCommandHandler{
		uowFactory: uowFactory,
		receipts:   receipts,
		renderer:   renderer,
	}
}

func (h *ProcessOrderCommandHandler) Handle(ctx context.Context, cmd ProcessOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if o.Status() == order.Processed {
		return nil
	}

	if err = h.ensureReceipt(ctx, o); err != nil {
		return err
	}

	if err = o.Process(); err != nil {
		if errors.Is(err, order.ErrOrderAlreadyProcessed) {
			return nil
		}
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ProcessOrderCommandHandler) ensureReceipt(ctx context.Context, o *order.Order) error {
	exists, err := h.receipts.Exists(ctx, o.ID())
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	r, err := h.renderer.Render(o)
	if err != nil {
		return err
	}

	return h.receipts.Put(ctx, r)
}
