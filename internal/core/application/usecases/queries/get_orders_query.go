package queries

import (
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const (
	DefaultOrdersLimit = 50
	MaxOrdersLimit     = 500
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery lists orders, newest first, optionally filtered by status.
// Operators use it to spot orders stuck in PENDING.
type GetOrdersQuery struct {
	status *order.Status
	limit  int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery builds a listing query. status may be nil for all
// orders; limit 0 selects DefaultOrdersLimit.
func NewGetOrdersQuery(status *order.Status, limit int) (GetOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	switch {
	case limit == 0:
		limit = DefaultOrdersLimit
	case limit < 0 || limit > MaxOrdersLimit:
		return GetOrdersQuery{}, errs.NewValueIsInvalidError("limit")
	}

	return GetOrdersQuery{
		status: status,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the filter, or nil when every status is listed.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

func (q GetOrdersQuery) Limit() int {
	return q.limit
}
