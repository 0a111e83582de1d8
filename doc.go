// Package paygate translates normalized payment values into the REST
// schema of a remote payment processor. Orders, credit cards and
// prospects go in; the processor's wire format, authentication and
// error conventions stay hidden behind one gateway interface.
//
// # Architecture
//
// Adapters implement the provider.Gateway interface and register
// themselves with the default registry in their package init. The HTTP
// layer in handler and router exposes the gateway operations as a REST
// API; provider.GatewayService routes each request to a configured
// adapter by name.
//
// # Operations
//
// Every gateway supports the same six operations:
//   - SubmitTransaction: immediate charge (sale)
//   - AuthorizeTransaction: place a hold for later capture
//   - RefundTransaction: full or partial refund of a settled sale
//   - VoidTransaction: release a previous authorization
//   - CreateCustomerProfile: store a card with the processor
//   - ChargeCustomer: charge a previously stored instrument
//
// # Quick Start
//
// Using an adapter directly:
//
//	gateway, err := provider.CreateGateway("paypal")
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = gateway.Initialize(map[string]string{
//		"clientId":     os.Getenv("PAYPAL_CLIENT_ID"),
//		"clientSecret": os.Getenv("PAYPAL_CLIENT_SECRET"),
//		"environment":  "sandbox",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	amount, _ := provider.ParseAmount("12.90")
//	result, err := gateway.SubmitTransaction(ctx,
//		provider.Order{Amount: amount, Currency: "USD"},
//		provider.CreditCard{Number: "4020025472997829", ExpireMonth: "12", ExpireYear: "2030", CVV: "123"},
//		provider.Prospect{BillingFirstName: "John", BillingLastName: "Doe"},
//	)
//
// Failures the processor reported with an HTTP status of 400 or greater
// surface as *provider.GatewayError carrying the status code and the
// decoded error body. Transport failures propagate as plain errors.
package paygate
