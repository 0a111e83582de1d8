package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGatewayError(t *testing.T) {
	rawBody := map[string]any{"name": "VALIDATION_ERROR"}
	err := NewGatewayError(400, rawBody)

	assert.Equal(t, "Response Status : 400", err.Message)
	assert.Equal(t, "Response Status : 400", err.Error())
	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, rawBody, err.RawError)
}

func TestAsGatewayError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		gwErr, ok := AsGatewayError(NewGatewayError(500, nil))
		require.True(t, ok)
		assert.Equal(t, 500, gwErr.StatusCode)
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("paypal: %w", NewGatewayError(402, "declined"))
		gwErr, ok := AsGatewayError(wrapped)
		require.True(t, ok)
		assert.Equal(t, 402, gwErr.StatusCode)
		assert.Equal(t, "declined", gwErr.RawError)
	})

	t.Run("unrelated error", func(t *testing.T) {
		_, ok := AsGatewayError(errors.New("connection refused"))
		assert.False(t, ok)
	})
}
