package order

import (
	"testing"

	"github.com/juniper-commerce/marketplace-backend/internal/servererrors"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancellationRequested, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusDelivered, false},
		{StatusCancellationRequested, StatusCancelled, true},
		{StatusCancellationRequested, StatusProcessing, true},
		{StatusCancellationRequested, StatusShipped, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusPartiallyDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusPartiallyDelivered, StatusDelivered, true},
		{StatusPartiallyDelivered, StatusCancelled, false},
		{StatusDelivered, StatusProcessing, false},
		{StatusCancelled, StatusProcessing, false},
	}

	for _, c := range cases {
		require.Equal(t, c.allowed, c.from.CanTransitionTo(c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("Partially Delivered")
	require.NoError(t, err)
	require.Equal(t, StatusPartiallyDelivered, status)

	_, err = ParseStatus("Lost In Transit")
	require.ErrorIs(t, err, servererrors.ErrInvalidStatus)
}

func TestParseCancellationAction(t *testing.T) {
	action, err := ParseCancellationAction("Approve")
	require.NoError(t, err)
	require.Equal(t, ActionApprove, action)

	_, err = ParseCancellationAction("approve")
	require.ErrorIs(t, err, servererrors.ErrInvalidAction)
}

func TestAggregateDeliveryStatus(t *testing.T) {
	pending := Item{DeliveryStatus: DeliveryStatusPending}
	delivered := Item{DeliveryStatus: DeliveryStatusDelivered}

	_, changed := aggregateDeliveryStatus([]Item{pending, pending})
	require.False(t, changed)

	status, changed := aggregateDeliveryStatus([]Item{delivered, pending})
	require.True(t, changed)
	require.Equal(t, StatusPartiallyDelivered, status)

	status, changed = aggregateDeliveryStatus([]Item{delivered, delivered})
	require.True(t, changed)
	require.Equal(t, StatusDelivered, status)
}
