package paypal

import "github.com/centpay/paygate/provider"

// Register the PayPal gateway with the default registry
func init() {
	provider.Register("paypal", NewGateway)
}
