package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerIsRequired = errs.NewValueIsRequiredError("cliente")
	ErrItemsAreRequired   = errs.NewValueIsRequiredError("itens")
	ErrTableIsRequired    = errs.NewValueIsRequiredError("mesa")
)

// CreateOrderCommand represents a request to place a new order at a table.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "Ana", []string{"Coffee", "Cake"}, "5")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	customer string
	items    []string
	table    string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the intake request. Parameter names in the
// errors are the request field names so they can be shown to the caller.
func NewCreateOrderCommand(orderID kernel.UUID, customer string, items []string, table string) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setItems(items),
		cmd.setTable(table),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Customer() string {
	return c.customer
}

func (c CreateOrderCommand) Items() []string {
	return append([]string(nil), c.items...)
}

func (c CreateOrderCommand) Table() string {
	return c.table
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer string) error {
	customer = kernel.NormalizeText(customer)
	if customer == "" {
		return ErrCustomerIsRequired
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setItems(items []string) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	normalized := make([]string, 0, len(items))
	for _, item := range items {
		item = kernel.NormalizeText(item)
		if item == "" {
			return errs.NewValueIsInvalidErrorWithCause("itens", errors.New("every item must be non-blank text"))
		}
		normalized = append(normalized, item)
	}

	c.items = normalized
	return nil
}

func (c *CreateOrderCommand) setTable(table string) error {
	table = kernel.NormalizeText(table)
	if table == "" {
		return ErrTableIsRequired
	}

	c.table = table
	return nil
}
