package provider

import (
	"context"

	"github.com/shopspring/decimal"
)

// Order describes the monetary part of a single gateway operation.
type Order struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

// CreditCard carries raw card data for card-present operations.
type CreditCard struct {
	Number      string `json:"number"`
	ExpireMonth string `json:"expireMonth"`
	ExpireYear  string `json:"expireYear"`
	CVV         string `json:"cvv"`
	CardHolder  string `json:"cardHolder,omitempty"`
}

// Prospect carries billing and shipping contact details for the buyer.
// Once a stored-card profile has been created, the caller attaches the
// returned ProfileID here to enable instrument-free repeat charges; the
// gateway itself never persists it.
type Prospect struct {
	BillingFirstName   string `json:"billingFirstName,omitempty"`
	BillingLastName    string `json:"billingLastName,omitempty"`
	BillingEmail       string `json:"billingEmail,omitempty"`
	BillingPhone       string `json:"billingPhone,omitempty"`
	BillingAddress1    string `json:"billingAddress1,omitempty"`
	BillingAddress2    string `json:"billingAddress2,omitempty"`
	BillingCity        string `json:"billingCity,omitempty"`
	BillingState       string `json:"billingState,omitempty"`
	BillingPostalCode  string `json:"billingPostalCode,omitempty"`
	BillingCountry     string `json:"billingCountry,omitempty"`
	ShippingFirstName  string `json:"shippingFirstName,omitempty"`
	ShippingLastName   string `json:"shippingLastName,omitempty"`
	ShippingAddress1   string `json:"shippingAddress1,omitempty"`
	ShippingAddress2   string `json:"shippingAddress2,omitempty"`
	ShippingCity       string `json:"shippingCity,omitempty"`
	ShippingState      string `json:"shippingState,omitempty"`
	ShippingPostalCode string `json:"shippingPostalCode,omitempty"`
	ShippingCountry    string `json:"shippingCountry,omitempty"`
	ProfileID          string `json:"profileId,omitempty"`
}

// TransactionResult is the normalized outcome of a sale or authorization.
// RawResponse retains the processor's full response body.
type TransactionResult struct {
	TransactionID string `json:"transactionId"`
	RawResponse   any    `json:"rawResponse,omitempty"`
}

// CustomerProfileResult is the outcome of storing a payment instrument
// with the processor.
type CustomerProfileResult struct {
	ProfileID   string `json:"profileId"`
	RawResponse any    `json:"rawResponse,omitempty"`
}

// RawResult wraps operations whose success payload has no normalized
// shape of its own. The response body stays opaque; its schema belongs
// to the processor.
type RawResult struct {
	RawResponse any `json:"rawResponse,omitempty"`
}

// RefundOptions narrows a refund to part of the original charge. A nil
// Amount requests a full refund under the processor's own semantics.
type RefundOptions struct {
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	Currency string           `json:"currency,omitempty"`
}

// VoidOptions is reserved for processor-specific void parameters. The
// PayPal void endpoint takes none.
type VoidOptions struct{}

// Gateway defines the operations every payment gateway adapter must
// implement. Each operation is a single request/response round trip to
// the remote processor; there is no retry, no cross-call ordering and no
// shared mutable state beyond the configured client handle.
type Gateway interface {
	// Initialize sets up the gateway with credentials and execution mode.
	// It performs no network call.
	Initialize(config map[string]string) error

	// ValidateConfig checks the provided configuration against the
	// gateway's requirements without initializing it.
	ValidateConfig(config map[string]string) error

	// SubmitTransaction charges the card immediately (sale intent).
	SubmitTransaction(ctx context.Context, order Order, card CreditCard, prospect Prospect) (*TransactionResult, error)

	// AuthorizeTransaction places a hold on the card (authorize intent).
	AuthorizeTransaction(ctx context.Context, order Order, card CreditCard, prospect Prospect) (*TransactionResult, error)

	// RefundTransaction refunds a settled sale, fully or partially.
	RefundTransaction(ctx context.Context, transactionID string, opts *RefundOptions) (*RawResult, error)

	// VoidTransaction releases a previous authorization.
	VoidTransaction(ctx context.Context, authorizationID string, opts *VoidOptions) (*RawResult, error)

	// CreateCustomerProfile stores the card with the processor and returns
	// the assigned profile identifier.
	CreateCustomerProfile(ctx context.Context, card CreditCard, prospect Prospect, opts map[string]any) (*CustomerProfileResult, error)

	// ChargeCustomer charges a previously stored instrument. The prospect
	// must carry a ProfileID.
	ChargeCustomer(ctx context.Context, order Order, prospect Prospect) (*TransactionResult, error)
}

// GatewayFactory is a function type that creates a new Gateway
type GatewayFactory func() Gateway
