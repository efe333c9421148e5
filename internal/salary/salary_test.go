package salary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  Range
		valid bool
	}{
		{"rupee thousands", "₹50k - ₹80k", Range{Min: 50, Max: 80, Currency: "INR"}, true},
		{"wide range", "₹70k - ₹100k", Range{Min: 70, Max: 100, Currency: "INR"}, true},
		{"no spaces", "60-90", Range{Min: 60, Max: 90}, true},
		{"dollar", "$100 - 150", Range{Min: 100, Max: 150, Currency: "USD"}, true},
		{"currency code", "40 - 70 INR", Range{Min: 40, Max: 70, Currency: "INR"}, true},
		{"mixed symbols take the first", "$50k - ₹80k", Range{Min: 50, Max: 80, Currency: "USD"}, true},
		{"symbol wins over code", "€30 - 40 USD", Range{Min: 30, Max: 40, Currency: "EUR"}, true},
		{"first of two codes", "40 - 70 gbp or eur", Range{Min: 40, Max: 70, Currency: "GBP"}, true},
		{"negotiable", "Negotiable", Range{}, false},
		{"single value", "₹50k", Range{}, false},
		{"empty", "", Range{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.text)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContains(t *testing.T) {
	r := Range{Min: 50, Max: 80}

	assert.True(t, r.Contains(60))
	assert.True(t, r.Contains(50))
	assert.True(t, r.Contains(80))
	assert.False(t, r.Contains(90))
	assert.False(t, r.Contains(49))
}

func TestCurrencyIsStable(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.Equal(t, "INR", currency("₹50k - $80k £"))
	}
}
