package cardscheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected string
	}{
		{name: "visa 16 digits", number: "4020025472997829", expected: "Visa"},
		{name: "visa 13 digits", number: "4222222222222", expected: "Visa"},
		{name: "mastercard classic range", number: "5555555555554444", expected: "Mastercard"},
		{name: "mastercard 2-series", number: "2221000000000009", expected: "Mastercard"},
		{name: "american express", number: "378282246310005", expected: "American Express"},
		{name: "diners club", number: "30569309025904", expected: "Diners Club"},
		{name: "discover", number: "6011111111111117", expected: "Discover"},
		{name: "jcb", number: "3530111333300000", expected: "JCB"},
		{name: "unionpay", number: "6200000000000005", expected: "UnionPay"},
		{name: "maestro", number: "6759649826438453", expected: "Maestro"},
		{name: "spaces tolerated", number: "4020 0254 7299 7829", expected: "Visa"},
		{name: "dashes tolerated", number: "4020-0254-7299-7829", expected: "Visa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := Detect(tt.number)
			require.NoError(t, err)
			require.NotEmpty(t, candidates)
			assert.Equal(t, tt.expected, candidates[0].Name)
		})
	}
}

func TestDetectUnknownScheme(t *testing.T) {
	tests := []struct {
		name   string
		number string
	}{
		{name: "unrecognized prefix", number: "1234567890123456"},
		{name: "too short for any scheme", number: "41111"},
		{name: "letters rejected", number: "4111x11111111111"},
		{name: "empty", number: ""},
		{name: "only separators", number: "- - -"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := Detect(tt.number)
			assert.ErrorIs(t, err, ErrUnknownScheme)
			assert.Nil(t, candidates)
		})
	}
}

func TestDetectCandidateOrder(t *testing.T) {
	// A 16 digit number starting with 50 sits only in maestro ranges,
	// while 5100 hits mastercard first even though maestro never matches
	// it. The stronger network must come first when ranges overlap.
	candidates, err := Detect("5018000000000009")
	require.NoError(t, err)
	assert.Equal(t, "Maestro", candidates[0].Name)

	candidates, err = Detect("5105105105105100")
	require.NoError(t, err)
	assert.Equal(t, "Mastercard", candidates[0].Name)
}
