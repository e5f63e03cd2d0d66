package guard_test

import (
	"errors"
	"testing"

	"ordering/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errTicketNotConstructed := errors.New("Ticket must be created via NewTicket")

	type Ticket struct {
		table string
		guard guard.ConstructorGuard
	}

	newTicket := func(table string) (Ticket, error) {
		if table == "" {
			return Ticket{}, errors.New("table is required")
		}
		return Ticket{table: table, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes", func(t *testing.T) {
		ticket, err := newTicket("5")
		require.NoError(t, err)
		require.NoError(t, ticket.guard.Validate(errTicketNotConstructed))
		assert.Equal(t, "5", ticket.table)
	})

	t.Run("zero_value_fails", func(t *testing.T) {
		var ticket Ticket
		assert.Equal(t, errTicketNotConstructed, ticket.guard.Validate(errTicketNotConstructed))
	})

	t.Run("copies_keep_state", func(t *testing.T) {
		ticket, err := newTicket("7")
		require.NoError(t, err)
		ticketCopy := ticket
		require.NoError(t, ticketCopy.guard.Validate(errTicketNotConstructed))
	})
}

func BenchmarkConstructorGuard(b *testing.B) {
	g := guard.NewConstructorGuard()
	err := errors.New("not constructed")
	b.ResetTimer()
	for range b.N {
		_ = g.Validate(err)
	}
}
