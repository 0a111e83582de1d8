package provider

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
		wantErr  bool
	}{
		{
			name:     "integer",
			input:    12,
			expected: "12.00",
		},
		{
			name:     "int64",
			input:    int64(250),
			expected: "250.00",
		},
		{
			name:     "float",
			input:    9.5,
			expected: "9.50",
		},
		{
			name:     "numeric text",
			input:    "9.5",
			expected: "9.50",
		},
		{
			name:     "json number",
			input:    json.Number("10.25"),
			expected: "10.25",
		},
		{
			name:     "decimal passthrough",
			input:    decimal.RequireFromString("3.14"),
			expected: "3.14",
		},
		{
			name:     "zero",
			input:    0,
			expected: "0.00",
		},
		{
			name:    "malformed text",
			input:   "12,50",
			wantErr: true,
		},
		{
			name:    "non numeric text",
			input:   "ten dollars",
			wantErr: true,
		},
		{
			name:    "empty text",
			input:   "",
			wantErr: true,
		},
		{
			name:    "negative amount",
			input:   "-5.00",
			wantErr: true,
		},
		{
			name:    "unsupported type",
			input:   true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, FormatAmount(amount))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "whole number gains cents", input: "12", expected: "12.00"},
		{name: "single fraction digit padded", input: "9.5", expected: "9.50"},
		{name: "extra precision rounded", input: "10.239", expected: "10.24"},
		{name: "two digits unchanged", input: "100.10", expected: "100.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.input)
			assert.Equal(t, tt.expected, FormatAmount(d))
		})
	}
}
