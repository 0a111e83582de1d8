package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/centpay/paygate/provider"
	"github.com/centpay/paygate/provider/cardscheme"
)

const (
	// API URLs
	apiSandboxURL    = "https://api.sandbox.paypal.com"
	apiProductionURL = "https://api.paypal.com"

	// API Endpoints
	endpointOAuthToken = "/v1/oauth2/token"
	endpointPayment    = "/v1/payments/payment"
	endpointRefund     = "/v1/payments/sale/%s/refund"        // %s will be replaced with the sale ID
	endpointVoid       = "/v1/payments/authorization/%s/void" // %s will be replaced with the authorization ID
	endpointVault      = "/v1/vault/credit-cards"

	// Payment intents
	intentSale      = "sale"
	intentAuthorize = "authorize"

	// Default Values
	defaultCurrency = "USD"
	defaultTimeout  = 30 * time.Second
)

// creditCardSchema maps the merged card/prospect fields into PayPal's
// credit_card wire schema.
var creditCardSchema = provider.FieldSchema{
	{Source: "number", Dest: "number"},
	{Source: "expireMonth", Dest: "expire_month"},
	{Source: "expireYear", Dest: "expire_year"},
	{Source: "cvv", Dest: "cvv2"},
	{Source: "firstName", Dest: "first_name"},
	{Source: "lastName", Dest: "last_name"},
}

// billingAddressSchema maps the prospect's billing fields into PayPal's
// address wire schema. Absent fields are omitted, never defaulted.
var billingAddressSchema = provider.FieldSchema{
	{Source: "billingPhone", Dest: "phone"},
	{Source: "billingAddress1", Dest: "line1"},
	{Source: "billingAddress2", Dest: "line2"},
	{Source: "billingCity", Dest: "city"},
	{Source: "billingState", Dest: "state"},
	{Source: "billingPostalCode", Dest: "postal_code"},
	{Source: "billingCountry", Dest: "country_code"},
}

// PayPalProvider implements the provider.Gateway interface against the
// PayPal REST v1 payments and vault APIs.
type PayPalProvider struct {
	clientID     string
	clientSecret string
	baseURL      string
	isSandbox    bool
	httpClient   *provider.ProviderHTTPClient
	tokens       *tokenSource
}

// NewGateway creates a new PayPal gateway adapter
func NewGateway() provider.Gateway {
	return &PayPalProvider{}
}

// ValidateConfig checks the configuration for the required credentials
func (p *PayPalProvider) ValidateConfig(config map[string]string) error {
	if config["clientId"] == "" {
		return errors.New("paypal: clientId is required")
	}
	if config["clientSecret"] == "" {
		return errors.New("paypal: clientSecret is required")
	}
	return nil
}

// Initialize sets up the PayPal gateway with authentication credentials.
// Sandbox mode must be requested explicitly; the default is live. No
// network call happens here.
func (p *PayPalProvider) Initialize(config map[string]string) error {
	if err := p.ValidateConfig(config); err != nil {
		return err
	}

	p.clientID = config["clientId"]
	p.clientSecret = config["clientSecret"]

	p.isSandbox = config["environment"] == "sandbox"
	if p.isSandbox {
		p.baseURL = apiSandboxURL
	} else {
		p.baseURL = apiProductionURL
	}

	p.httpClient = provider.NewProviderHTTPClient(
		provider.CreateHTTPClientConfig(p.baseURL, !p.isSandbox, defaultTimeout),
	)
	p.tokens = newTokenSource(p.clientID, p.clientSecret, p.httpClient)

	return nil
}

// SubmitTransaction charges the card immediately (sale intent)
func (p *PayPalProvider) SubmitTransaction(ctx context.Context, order provider.Order, card provider.CreditCard, prospect provider.Prospect) (*provider.TransactionResult, error) {
	return p.createPayment(ctx, intentSale, order, card, prospect)
}

// AuthorizeTransaction places a hold on the card (authorize intent)
func (p *PayPalProvider) AuthorizeTransaction(ctx context.Context, order provider.Order, card provider.CreditCard, prospect provider.Prospect) (*provider.TransactionResult, error) {
	return p.createPayment(ctx, intentAuthorize, order, card, prospect)
}

// RefundTransaction refunds a settled sale. With nil or empty options the
// payload is an empty object, which PayPal treats as a full refund of the
// remaining amount.
func (p *PayPalProvider) RefundTransaction(ctx context.Context, transactionID string, opts *provider.RefundOptions) (*provider.RawResult, error) {
	if transactionID == "" {
		return nil, errors.New("paypal: transactionID is required for refund")
	}

	payload := map[string]any{}
	if opts != nil && opts.Amount != nil {
		amount := amountPayload{Total: provider.FormatAmount(*opts.Amount)}
		if opts.Currency != "" {
			amount.Currency = opts.Currency
		}
		payload["amount"] = amount
	}

	raw, err := p.sendRequest(ctx, http.MethodPost, fmt.Sprintf(endpointRefund, transactionID), payload)
	if err != nil {
		return nil, err
	}

	return &provider.RawResult{RawResponse: raw}, nil
}

// VoidTransaction releases a previous authorization. The PayPal void
// endpoint takes no request body.
func (p *PayPalProvider) VoidTransaction(ctx context.Context, authorizationID string, _ *provider.VoidOptions) (*provider.RawResult, error) {
	if authorizationID == "" {
		return nil, errors.New("paypal: authorizationID is required for void")
	}

	raw, err := p.sendRequest(ctx, http.MethodPost, fmt.Sprintf(endpointVoid, authorizationID), nil)
	if err != nil {
		return nil, err
	}

	return &provider.RawResult{RawResponse: raw}, nil
}

// CreateCustomerProfile stores the card in the PayPal vault. Caller
// supplied options override the derived card fields on key collision.
func (p *PayPalProvider) CreateCustomerProfile(ctx context.Context, card provider.CreditCard, prospect provider.Prospect, opts map[string]any) (*provider.CustomerProfileResult, error) {
	cc, err := p.shapeCard(card, prospect)
	if err != nil {
		return nil, err
	}
	for k, v := range opts {
		cc[k] = v
	}

	raw, err := p.sendRequest(ctx, http.MethodPost, endpointVault, cc)
	if err != nil {
		return nil, err
	}

	profileID, ok := raw["id"].(string)
	if !ok || profileID == "" {
		return nil, errors.New("paypal: vault response carries no credit card id")
	}

	return &provider.CustomerProfileResult{
		ProfileID:   profileID,
		RawResponse: raw,
	}, nil
}

// ChargeCustomer charges a previously stored instrument. Charging by
// token is always a sale intent.
func (p *PayPalProvider) ChargeCustomer(ctx context.Context, order provider.Order, prospect provider.Prospect) (*provider.TransactionResult, error) {
	if prospect.ProfileID == "" {
		return nil, fmt.Errorf("paypal: %w", provider.ErrProfileIDRequired)
	}

	payload := paymentPayload{
		Intent: intentSale,
		Payer: payerPayload{
			PaymentMethod: "credit_card",
			FundingInstruments: []map[string]any{
				{"credit_card_token": map[string]any{"credit_card_id": prospect.ProfileID}},
			},
		},
		Transactions: []transactionPayload{
			{Amount: amountPayload{
				Total:    provider.FormatAmount(order.Amount),
				Currency: orderCurrency(order),
			}},
		},
	}

	raw, err := p.sendRequest(ctx, http.MethodPost, endpointPayment, payload)
	if err != nil {
		return nil, err
	}

	transactionID, err := relatedResourceID(raw, intentSale)
	if err != nil {
		return nil, err
	}

	return &provider.TransactionResult{
		TransactionID: transactionID,
		RawResponse:   raw,
	}, nil
}

// createPayment is the shared card-present path behind submit and
// authorize: shape, invoke, reshape.
func (p *PayPalProvider) createPayment(ctx context.Context, intent string, order provider.Order, card provider.CreditCard, prospect provider.Prospect) (*provider.TransactionResult, error) {
	cc, err := p.shapeCard(card, prospect)
	if err != nil {
		return nil, err
	}

	payload := paymentPayload{
		Intent: intent,
		Payer: payerPayload{
			PaymentMethod: "credit_card",
			FundingInstruments: []map[string]any{
				{"credit_card": cc},
			},
		},
		Transactions: []transactionPayload{
			{Amount: amountPayload{
				Total:    provider.FormatAmount(order.Amount),
				Currency: orderCurrency(order),
			}},
		},
	}

	raw, err := p.sendRequest(ctx, http.MethodPost, endpointPayment, payload)
	if err != nil {
		return nil, err
	}

	transactionID, err := relatedResourceID(raw, intent)
	if err != nil {
		return nil, err
	}

	return &provider.TransactionResult{
		TransactionID: transactionID,
		RawResponse:   raw,
	}, nil
}

// shapeCard merges the card and prospect into PayPal's credit_card
// object: remapped card fields, a billing_address sub-object and the
// detected scheme as type.
func (p *PayPalProvider) shapeCard(card provider.CreditCard, prospect provider.Prospect) (map[string]any, error) {
	cc := provider.MapKeys(creditCardSchema, mergeInstrumentFields(card, prospect))
	cc["billing_address"] = provider.MapKeys(billingAddressSchema, prospectBillingFields(prospect))

	candidates, err := cardscheme.Detect(card.Number)
	if err != nil {
		return nil, fmt.Errorf("paypal: %w", err)
	}
	cc["type"] = schemeCode(candidates[0])

	return cc, nil
}

// mergeInstrumentFields flattens a card and prospect into the source
// keys creditCardSchema maps from. Card fields win on collision: the
// card holder name, when present, overrides the prospect's billing name.
func mergeInstrumentFields(card provider.CreditCard, prospect provider.Prospect) map[string]string {
	firstName := prospect.BillingFirstName
	lastName := prospect.BillingLastName
	if card.CardHolder != "" {
		firstName, lastName = splitCardHolder(card.CardHolder)
	}

	return map[string]string{
		"number":      card.Number,
		"expireMonth": card.ExpireMonth,
		"expireYear":  card.ExpireYear,
		"cvv":         card.CVV,
		"firstName":   firstName,
		"lastName":    lastName,
	}
}

func prospectBillingFields(p provider.Prospect) map[string]string {
	return map[string]string{
		"billingPhone":      p.BillingPhone,
		"billingAddress1":   p.BillingAddress1,
		"billingAddress2":   p.BillingAddress2,
		"billingCity":       p.BillingCity,
		"billingState":      p.BillingState,
		"billingPostalCode": p.BillingPostalCode,
		"billingCountry":    p.BillingCountry,
	}
}

// splitCardHolder splits a card holder into first and last name on the
// last space. A single-word holder becomes the first name.
func splitCardHolder(holder string) (string, string) {
	holder = strings.TrimSpace(holder)
	idx := strings.LastIndex(holder, " ")
	if idx < 0 {
		return holder, ""
	}
	return holder[:idx], strings.TrimSpace(holder[idx+1:])
}

// schemeCode normalizes a scheme candidate into PayPal's short brand
// code. American Express is encoded as "amex".
func schemeCode(c cardscheme.Candidate) string {
	code := strings.ToLower(c.Name)
	if code == "american express" {
		code = "amex"
	}
	return code
}

func orderCurrency(order provider.Order) string {
	if order.Currency == "" {
		return defaultCurrency
	}
	return order.Currency
}

// sendRequest performs one authenticated round trip and normalizes the
// outcome: a status of 400 or greater becomes a GatewayError carrying
// the decoded error body, transport failures propagate unchanged.
func (p *PayPalProvider) sendRequest(ctx context.Context, method, endpoint string, body any) (map[string]any, error) {
	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.SendJSON(ctx, &provider.HTTPRequest{
		Method:   method,
		Endpoint: endpoint,
		Headers:  map[string]string{"Authorization": "Bearer " + token},
		Body:     body,
	})
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &raw); err != nil {
			raw = map[string]any{"body": string(resp.Body)}
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, provider.NewGatewayError(resp.StatusCode, raw)
	}

	return raw, nil
}

// relatedResourceID digs the transaction identifier out of a payment
// response: transactions[0].related_resources[0].<sale|authorization>.id.
func relatedResourceID(raw map[string]any, intent string) (string, error) {
	key := "sale"
	if intent == intentAuthorize {
		key = "authorization"
	}

	transactions, ok := raw["transactions"].([]any)
	if !ok || len(transactions) == 0 {
		return "", fmt.Errorf("paypal: payment response carries no transactions")
	}
	transaction, ok := transactions[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("paypal: malformed transaction in payment response")
	}
	resources, ok := transaction["related_resources"].([]any)
	if !ok || len(resources) == 0 {
		return "", fmt.Errorf("paypal: payment response carries no related resources")
	}
	resource, ok := resources[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("paypal: malformed related resource in payment response")
	}
	nested, ok := resource[key].(map[string]any)
	if !ok {
		return "", fmt.Errorf("paypal: payment response carries no %s resource", key)
	}
	id, ok := nested["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("paypal: %s resource carries no id", key)
	}

	return id, nil
}

// paymentPayload is PayPal's create-payment request shape
type paymentPayload struct {
	Intent       string               `json:"intent"`
	Payer        payerPayload         `json:"payer"`
	Transactions []transactionPayload `json:"transactions"`
}

type payerPayload struct {
	PaymentMethod      string           `json:"payment_method"`
	FundingInstruments []map[string]any `json:"funding_instruments"`
}

type transactionPayload struct {
	Amount amountPayload `json:"amount"`
}

type amountPayload struct {
	Total    string `json:"total"`
	Currency string `json:"currency,omitempty"`
}
