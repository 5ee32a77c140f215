package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	base := New(EmptyOrder, "No books found in this order")
	wrapped := fmt.Errorf("send invoice: %w", base)

	require.Equal(t, EmptyOrder, CodeOf(base))
	require.Equal(t, EmptyOrder, CodeOf(wrapped))
	require.Equal(t, Code(""), CodeOf(errors.New("plain")))
	require.Equal(t, Code(""), CodeOf(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("smtp: 535 auth failed")
	err := Wrap(NotificationFailed, "Failed to send invoice", cause)

	require.ErrorIs(t, err, cause)
	require.Equal(t, "Failed to send invoice", Message(err))
	require.Contains(t, err.Error(), "535")
}
