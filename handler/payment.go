package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/centpay/paygate/infra/response"
	"github.com/centpay/paygate/provider"
	"github.com/centpay/paygate/provider/cardscheme"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// GatewayServiceInterface defines the gateway operations the handlers
// depend on
type GatewayServiceInterface interface {
	SubmitTransaction(ctx context.Context, gatewayName string, order provider.Order, card provider.CreditCard, prospect provider.Prospect) (*provider.TransactionResult, error)
	AuthorizeTransaction(ctx context.Context, gatewayName string, order provider.Order, card provider.CreditCard, prospect provider.Prospect) (*provider.TransactionResult, error)
	RefundTransaction(ctx context.Context, gatewayName, transactionID string, opts *provider.RefundOptions) (*provider.RawResult, error)
	VoidTransaction(ctx context.Context, gatewayName, authorizationID string, opts *provider.VoidOptions) (*provider.RawResult, error)
	CreateCustomerProfile(ctx context.Context, gatewayName string, card provider.CreditCard, prospect provider.Prospect, opts map[string]any) (*provider.CustomerProfileResult, error)
	ChargeCustomer(ctx context.Context, gatewayName string, order provider.Order, prospect provider.Prospect) (*provider.TransactionResult, error)
}

// PaymentHandler handles payment related HTTP requests
type PaymentHandler struct {
	gatewayService GatewayServiceInterface
	validate       *validator.Validate
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(gatewayService GatewayServiceInterface, validate *validator.Validate) *PaymentHandler {
	return &PaymentHandler{
		gatewayService: gatewayService,
		validate:       validate,
	}
}

type cardRequest struct {
	Number      string `json:"number" validate:"required"`
	ExpireMonth string `json:"expireMonth" validate:"required"`
	ExpireYear  string `json:"expireYear" validate:"required"`
	CVV         string `json:"cvv" validate:"required"`
	CardHolder  string `json:"cardHolder"`
}

func (c cardRequest) toCreditCard() provider.CreditCard {
	return provider.CreditCard{
		Number:      c.Number,
		ExpireMonth: c.ExpireMonth,
		ExpireYear:  c.ExpireYear,
		CVV:         c.CVV,
		CardHolder:  c.CardHolder,
	}
}

type prospectRequest struct {
	BillingFirstName   string `json:"billingFirstName"`
	BillingLastName    string `json:"billingLastName"`
	BillingEmail       string `json:"billingEmail"`
	BillingPhone       string `json:"billingPhone"`
	BillingAddress1    string `json:"billingAddress1"`
	BillingAddress2    string `json:"billingAddress2"`
	BillingCity        string `json:"billingCity"`
	BillingState       string `json:"billingState"`
	BillingPostalCode  string `json:"billingPostalCode"`
	BillingCountry     string `json:"billingCountry"`
	ShippingFirstName  string `json:"shippingFirstName"`
	ShippingLastName   string `json:"shippingLastName"`
	ShippingAddress1   string `json:"shippingAddress1"`
	ShippingAddress2   string `json:"shippingAddress2"`
	ShippingCity       string `json:"shippingCity"`
	ShippingState      string `json:"shippingState"`
	ShippingPostalCode string `json:"shippingPostalCode"`
	ShippingCountry    string `json:"shippingCountry"`
	ProfileID          string `json:"profileId"`
}

func (p prospectRequest) toProspect() provider.Prospect {
	return provider.Prospect{
		BillingFirstName:   p.BillingFirstName,
		BillingLastName:    p.BillingLastName,
		BillingEmail:       p.BillingEmail,
		BillingPhone:       p.BillingPhone,
		BillingAddress1:    p.BillingAddress1,
		BillingAddress2:    p.BillingAddress2,
		BillingCity:        p.BillingCity,
		BillingState:       p.BillingState,
		BillingPostalCode:  p.BillingPostalCode,
		BillingCountry:     p.BillingCountry,
		ShippingFirstName:  p.ShippingFirstName,
		ShippingLastName:   p.ShippingLastName,
		ShippingAddress1:   p.ShippingAddress1,
		ShippingAddress2:   p.ShippingAddress2,
		ShippingCity:       p.ShippingCity,
		ShippingState:      p.ShippingState,
		ShippingPostalCode: p.ShippingPostalCode,
		ShippingCountry:    p.ShippingCountry,
		ProfileID:          p.ProfileID,
	}
}

// Amount fields are decoded as any so both JSON numbers and numeric
// text are accepted; ParseAmount does the validation.
type paymentRequest struct {
	Amount   any             `json:"amount" validate:"required"`
	Currency string          `json:"currency"`
	Card     cardRequest     `json:"card" validate:"required"`
	Prospect prospectRequest `json:"prospect"`
}

type refundRequest struct {
	Amount   any    `json:"amount"`
	Currency string `json:"currency"`
}

type profileRequest struct {
	Card     cardRequest     `json:"card" validate:"required"`
	Prospect prospectRequest `json:"prospect"`
	Options  map[string]any  `json:"options"`
}

type chargeRequest struct {
	Amount   any             `json:"amount" validate:"required"`
	Currency string          `json:"currency"`
	Prospect prospectRequest `json:"prospect" validate:"required"`
}

// decodeJSON decodes a request body with number preservation so amounts
// never pass through float64.
func decodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(target)
}

// ProcessPayment handles sale requests
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	h.createPayment(w, r, false)
}

// AuthorizePayment handles authorization requests
func (h *PaymentHandler) AuthorizePayment(w http.ResponseWriter, r *http.Request) {
	h.createPayment(w, r, true)
}

func (h *PaymentHandler) createPayment(w http.ResponseWriter, r *http.Request, authorizeOnly bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation error", err)
		return
	}

	amount, err := provider.ParseAmount(req.Amount)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	order := provider.Order{Amount: amount, Currency: req.Currency}
	gatewayName := r.URL.Query().Get("gateway")

	var result *provider.TransactionResult
	if authorizeOnly {
		result, err = h.gatewayService.AuthorizeTransaction(ctx, gatewayName, order, req.Card.toCreditCard(), req.Prospect.toProspect())
	} else {
		result, err = h.gatewayService.SubmitTransaction(ctx, gatewayName, order, req.Card.toCreditCard(), req.Prospect.toProspect())
	}
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Payment processed", result)
}

// RefundPayment handles refund requests
func (h *PaymentHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	transactionID := chi.URLParam(r, "transactionID")
	if transactionID == "" {
		response.Error(w, http.StatusBadRequest, "Missing transaction ID", nil)
		return
	}

	// An empty body requests a full refund of the remaining amount
	var req refundRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	var opts *provider.RefundOptions
	if req.Amount != nil {
		amount, err := provider.ParseAmount(req.Amount)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid amount", err)
			return
		}
		opts = &provider.RefundOptions{Amount: &amount, Currency: req.Currency}
	}

	result, err := h.gatewayService.RefundTransaction(ctx, r.URL.Query().Get("gateway"), transactionID, opts)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Refund processed", result)
}

// VoidPayment handles void requests
func (h *PaymentHandler) VoidPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	authorizationID := chi.URLParam(r, "authorizationID")
	if authorizationID == "" {
		response.Error(w, http.StatusBadRequest, "Missing authorization ID", nil)
		return
	}

	result, err := h.gatewayService.VoidTransaction(ctx, r.URL.Query().Get("gateway"), authorizationID, nil)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Authorization voided", result)
}

// CreateProfile stores a card with the processor
func (h *PaymentHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation error", err)
		return
	}

	result, err := h.gatewayService.CreateCustomerProfile(ctx, r.URL.Query().Get("gateway"), req.Card.toCreditCard(), req.Prospect.toProspect(), req.Options)
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Profile created", result)
}

// ChargeProfile charges a previously stored instrument
func (h *PaymentHandler) ChargeProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var req chargeRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation error", err)
		return
	}

	amount, err := provider.ParseAmount(req.Amount)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	order := provider.Order{Amount: amount, Currency: req.Currency}
	result, err := h.gatewayService.ChargeCustomer(ctx, r.URL.Query().Get("gateway"), order, req.Prospect.toProspect())
	if err != nil {
		writeGatewayError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Customer charged", result)
}

// writeGatewayError maps adapter failures onto the HTTP surface: gateway
// errors keep the processor's message and raw body, precondition
// failures become 400s, anything else is a bad gateway.
func writeGatewayError(w http.ResponseWriter, err error) {
	if gwErr, ok := provider.AsGatewayError(err); ok {
		_ = response.WriteJSON(w, http.StatusPaymentRequired, response.Response{
			Code:    http.StatusPaymentRequired,
			Success: false,
			Message: gwErr.Message,
			Data:    gwErr.RawError,
		})
		return
	}

	if errors.Is(err, provider.ErrProfileIDRequired) || errors.Is(err, cardscheme.ErrUnknownScheme) {
		response.Error(w, http.StatusBadRequest, "Invalid payment request", err)
		return
	}

	response.Error(w, http.StatusBadGateway, "Gateway request failed", err)
}
