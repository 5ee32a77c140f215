package payment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

func TestMinorUnits(t *testing.T) {
	require.Equal(t, int64(44910), MinorUnits(449.1))
	require.Equal(t, int64(1999), MinorUnits(19.99))
	require.Equal(t, int64(50000), MinorUnits(500))
}

func TestFromStripe_ParsesMetadata(t *testing.T) {
	s, err := fromStripe(&stripe.CheckoutSession{
		ID:            "cs_test_1",
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		Metadata: map[string]string{
			"userId":    "u1",
			"cartItems": `["b1","b2"]`,
		},
	})
	require.NoError(t, err)
	require.True(t, s.Paid())
	require.Equal(t, "u1", s.UserID)
	require.Equal(t, []string{"b1", "b2"}, s.CartItems)
}

func TestFromStripe_BadCartMetadata(t *testing.T) {
	_, err := fromStripe(&stripe.CheckoutSession{
		ID:       "cs_test_2",
		Metadata: map[string]string{"cartItems": "b1,b2"},
	})
	require.True(t, errors.Is(err, ErrInvalidSession))
}
