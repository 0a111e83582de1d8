package provider

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a numeric value or numeric text into a decimal
// amount. Malformed text is a parse error, never a silent zero, and
// negative amounts are rejected.
func ParseAmount(v any) (decimal.Decimal, error) {
	var d decimal.Decimal

	switch n := v.(type) {
	case decimal.Decimal:
		d = n
	case float64:
		d = decimal.NewFromFloat(n)
	case float32:
		d = decimal.NewFromFloat32(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	case json.Number:
		parsed, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid amount %q: %w", n.String(), err)
		}
		d = parsed
	case string:
		parsed, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid amount %q: %w", n, err)
		}
		d = parsed
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount type %T", v)
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative, got %s", d)
	}

	return d, nil
}

// FormatAmount renders an amount as a fixed-point string with exactly
// two fraction digits, the form the processor's wire schema expects.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
