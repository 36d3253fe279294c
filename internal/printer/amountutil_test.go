package printer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/cpm/internal/printer"
)

func TestFormatAmount(t *testing.T) {
	tests := map[string]struct {
		amount   float64
		expected string
	}{
		"zero":          {amount: 0, expected: "0"},
		"units":         {amount: 950, expected: "950"},
		"decimal units": {amount: 12.5, expected: "12.5"},
		"thousands":     {amount: 1500, expected: "1.5K"},
		"millions":      {amount: 185000000, expected: "185.0M"},
		"billions":      {amount: 1300000000, expected: "1.3B"},
		"negative":      {amount: -2000, expected: "-2.0K"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.FormatAmount(test.amount))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := map[string]struct {
		amount   float64
		expected string
	}{
		"zero":            {amount: 0, expected: "0 NOK"},
		"below thousand":  {amount: 999, expected: "999 NOK"},
		"thousand":        {amount: 1000, expected: "1,000 NOK"},
		"project budget":  {amount: 185000000, expected: "185,000,000 NOK"},
		"rounded":         {amount: 1234.6, expected: "1,235 NOK"},
		"negative amount": {amount: -45000, expected: "-45,000 NOK"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, printer.FormatCurrency(test.amount))
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "12 hours", printer.FormatQuantity(12, "hours"))
	assert.Equal(t, "2.5", printer.FormatQuantity(2.5, ""))
}
