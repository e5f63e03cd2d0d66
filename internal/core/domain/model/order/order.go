package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/samber/lo"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the ordering pipeline: a customer's request
// for items at a table, tracked from Pending to Processed.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, never reassigned
//   - Customer and table are non-blank
//   - Items hold at least one non-blank entry, in the order given
//   - Status only moves forward
type Order struct {
	id        kernel.UUID
	customer  string
	items     []string
	table     string
	status    Status
	createdAt time.Time
	updatedAt time.Time

	// events raised since the aggregate was loaded or created
	events []kernel.DomainEvent

	isConstructed bool
}

// NewOrder creates a Pending order and raises PlacedEvent.
//
// Customer, items and table are normalized with kernel.NormalizeText before
// validation, so "  Ana " is stored as "Ana".
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "Ana", []string{"Coffee", "Cake"}, "5")
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, customer string, items []string, table string) (*Order, error) {
	now := time.Now().UTC()
	order := &Order{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomer(customer),
		order.setItems(items),
		order.setTable(table),
	); err != nil {
		return nil, err
	}

	order.raise(PlacedEvent{OrderID: order.id})
	return order, nil
}

// RestoreOrder rebuilds an order from persisted state without raising events.
func RestoreOrder(
	id kernel.UUID,
	customer string,
	items []string,
	table string,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	order := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomer(customer),
		order.setItems(items),
		order.setTable(table),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	order.status = status
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the purchaser's name.
func (o *Order) Customer() string {
	return o.customer
}

// Items returns a copy of the line items in the order they were placed.
func (o *Order) Items() []string {
	return slices.Clone(o.items)
}

// Table returns the table the order is served at.
func (o *Order) Table() string {
	return o.table
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed (UTC).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed status (UTC).
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Process moves the order to Processed and raises ProcessedEvent.
//
// Returns ErrOrderAlreadyProcessed when the order is already Processed; the
// order is left untouched in that case.
func (o *Order) Process() error {
	newStatus, err := o.status.Process()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = time.Now().UTC()
	o.raise(ProcessedEvent{OrderID: o.id})
	return nil
}

// PullEvents returns the events raised so far and clears them.
func (o *Order) PullEvents() []kernel.DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) raise(event kernel.DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	o.id = id
	return nil
}

func (o *Order) setCustomer(customer string) error {
	customer = kernel.NormalizeText(customer)
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}

	o.customer = customer
	return nil
}

func (o *Order) setItems(items []string) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("at least one item is required"))
	}

	normalized := lo.Map(items, func(item string, _ int) string {
		return kernel.NormalizeText(item)
	})
	if i := slices.Index(normalized, ""); i >= 0 {
		return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d is blank", i))
	}

	o.items = normalized
	return nil
}

func (o *Order) setTable(table string) error {
	table = kernel.NormalizeText(table)
	if table == "" {
		return errs.NewValueIsRequiredError("table")
	}

	o.table = table
	return nil
}
