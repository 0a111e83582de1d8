// Package provider defines the normalized payment gateway abstraction:
// the value objects exchanged with adapters, the Gateway interface every
// processor adapter implements, a registry for adapter factories and the
// shared HTTP client adapters build on.
//
// Adapters live in subpackages (see provider/paypal) and self-register
// with the default registry from their register.go init functions.
package provider
