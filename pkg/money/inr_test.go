package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/freshfruits-billing/pkg/money"
)

func TestGroupIndian(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"999":        "999",
		"1000":       "1,000",
		"12345":      "12,345",
		"123456":     "1,23,456",
		"1234567":    "12,34,567",
		"123456789":  "12,34,56,789",
		"1000000000": "1,00,00,00,000",
	}
	for in, want := range cases {
		assert.Equal(t, want, money.GroupIndian(in), in)
	}
}

func TestFormatINR(t *testing.T) {
	d := decimal.RequireFromString
	assert.Equal(t, "Rs. 550", money.FormatINR(d("550.00")))
	assert.Equal(t, "Rs. 577.5", money.FormatINR(d("577.50")))
	assert.Equal(t, "Rs. 1,23,456.78", money.FormatINR(d("123456.784")))
	assert.Equal(t, "Rs. 0", money.FormatINR(decimal.Zero))
	assert.Equal(t, "Rs. -1,500.25", money.FormatINR(d("-1500.25")))
	assert.Equal(t, "₹12,34,567", money.FormatRupee(d("1234567")))
}
