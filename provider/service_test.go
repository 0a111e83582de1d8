package provider

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceWithStub(t *testing.T) (*GatewayService, *stubGateway) {
	t.Helper()

	stub := &stubGateway{}
	DefaultRegistry.Register("svc-stub", func() Gateway { return stub })

	service := NewGatewayService()
	require.NoError(t, service.AddGateway("svc-stub", map[string]string{"key": "value"}))
	return service, stub
}

func TestGatewayServiceAddGateway(t *testing.T) {
	service, stub := newServiceWithStub(t)

	assert.Equal(t, map[string]string{"key": "value"}, stub.initConfig)
	assert.Contains(t, service.GatewayNames(), "svc-stub")

	t.Run("unknown gateway", func(t *testing.T) {
		err := service.AddGateway("unregistered", nil)
		assert.Error(t, err)
	})
}

func TestGatewayServiceDefaultResolution(t *testing.T) {
	service, _ := newServiceWithStub(t)

	t.Run("no default configured", func(t *testing.T) {
		_, err := service.Gateway("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no default gateway")
	})

	t.Run("empty name resolves to default", func(t *testing.T) {
		require.NoError(t, service.SetDefaultGateway("svc-stub"))
		gateway, err := service.Gateway("")
		require.NoError(t, err)
		assert.NotNil(t, gateway)
	})

	t.Run("default must be added first", func(t *testing.T) {
		err := service.SetDefaultGateway("missing")
		assert.Error(t, err)
	})
}

func TestGatewayServiceRouting(t *testing.T) {
	service, stub := newServiceWithStub(t)
	require.NoError(t, service.SetDefaultGateway("svc-stub"))

	ctx := context.Background()
	order := Order{Amount: decimal.RequireFromString("12.99"), Currency: "USD"}
	card := CreditCard{Number: "4111111111111111"}
	prospect := Prospect{BillingFirstName: "Ada"}

	result, err := service.SubmitTransaction(ctx, "", order, card, prospect)
	require.NoError(t, err)
	assert.Equal(t, "txn-1", result.TransactionID)
	assert.Equal(t, order, stub.lastOrder)
	assert.Equal(t, card, stub.lastCard)

	refund, err := service.RefundTransaction(ctx, "svc-stub", "SALE-9", nil)
	require.NoError(t, err)
	assert.NotNil(t, refund)
	assert.Equal(t, "SALE-9", stub.lastTransactionID)

	_, err = service.SubmitTransaction(ctx, "missing", order, card, prospect)
	assert.Error(t, err)
}
