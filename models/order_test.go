package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{StatusPlaced, StatusOutForDelivery, true},
		{StatusPlaced, StatusDelivered, true},
		{StatusPlaced, StatusCancelled, true},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusOutForDelivery, StatusCancelled, true},
		{StatusOutForDelivery, StatusPlaced, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusDelivered, StatusDelivered, false},
		{StatusCancelled, StatusPlaced, false},
		{OrderStatus("Shipped"), StatusDelivered, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.ok, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	require.True(t, StatusOutForDelivery.Valid())
	require.False(t, OrderStatus("pending").Valid())
}
