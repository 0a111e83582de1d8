package router

import (
	"github.com/centpay/paygate/handler"
	"github.com/go-chi/chi/v5"

	_ "github.com/centpay/paygate/provider/paypal"
)

// Routes registers the v1 payment API on the given router
func Routes(r chi.Router, paymentHandler *handler.PaymentHandler) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", paymentHandler.ProcessPayment)
		r.Post("/authorize", paymentHandler.AuthorizePayment)
		r.Post("/{transactionID}/refund", paymentHandler.RefundPayment)
		r.Post("/{authorizationID}/void", paymentHandler.VoidPayment)
	})

	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", paymentHandler.CreateProfile)
		r.Post("/charge", paymentHandler.ChargeProfile)
	})
}
