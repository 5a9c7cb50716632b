package queries_test

import (
	"testing"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPaymentsByOrderQuery_Valid(t *testing.T) {
	orderID := kernel.NewUUID()
	query, err := queries.NewGetPaymentsByOrderQuery(orderID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	assert.Equal(t, orderID, query.OrderID())
}

func TestNewGetPaymentsByOrderQuery_EmptyOrderID(t *testing.T) {
	_, err := queries.NewGetPaymentsByOrderQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetPaymentsByOrderQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPaymentsByOrderQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPaymentsByOrderQueryIsNotConstructed)
}
