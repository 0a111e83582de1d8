package provider

import (
	"errors"
	"fmt"
)

// ErrProfileIDRequired signals a charge attempt against a prospect that
// has no stored-card profile. It is surfaced before any network call.
var ErrProfileIDRequired = errors.New("prospect must carry a profileId")

// GatewayError is the normalized shape for failures the remote processor
// reported with an HTTP status of 400 or greater. Anything else, such
// as a transport failure or an error alongside a sub-400 status, is
// propagated untouched.
type GatewayError struct {
	Message    string
	StatusCode int
	RawError   any
}

func (e *GatewayError) Error() string {
	return e.Message
}

// NewGatewayError builds a GatewayError from the processor's reported
// status code and decoded error body.
func NewGatewayError(statusCode int, rawError any) *GatewayError {
	return &GatewayError{
		Message:    fmt.Sprintf("Response Status : %d", statusCode),
		StatusCode: statusCode,
		RawError:   rawError,
	}
}

// AsGatewayError unwraps err into a GatewayError if one is present in
// its chain.
func AsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}
