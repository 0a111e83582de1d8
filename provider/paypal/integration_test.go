package paypal

import (
	"context"
	"os"
	"testing"

	"github.com/centpay/paygate/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSandboxSaleAndRefund exercises the real PayPal sandbox. It only
// runs when sandbox credentials are present in the environment.
func TestSandboxSaleAndRefund(t *testing.T) {
	clientID := os.Getenv("PAYPAL_CLIENT_ID")
	clientSecret := os.Getenv("PAYPAL_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		t.Skip("PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET not set, skipping sandbox test")
	}

	p := NewGateway()
	require.NoError(t, p.Initialize(map[string]string{
		"clientId":     clientID,
		"clientSecret": clientSecret,
		"environment":  "sandbox",
	}))

	ctx := context.Background()
	order := provider.Order{Amount: decimal.RequireFromString("1.00"), Currency: "USD"}
	card := provider.CreditCard{
		Number:      "4020025472997829",
		ExpireMonth: "12",
		ExpireYear:  "2030",
		CVV:         "123",
		CardHolder:  "John Doe",
	}
	prospect := provider.Prospect{
		BillingAddress1:   "5th Avenue",
		BillingCity:       "New York",
		BillingState:      "NY",
		BillingPostalCode: "10118",
		BillingCountry:    "US",
	}

	sale, err := p.SubmitTransaction(ctx, order, card, prospect)
	require.NoError(t, err)
	assert.NotEmpty(t, sale.TransactionID)

	refund, err := p.RefundTransaction(ctx, sale.TransactionID, nil)
	require.NoError(t, err)
	assert.NotNil(t, refund.RawResponse)
}
