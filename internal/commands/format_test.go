package commands

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"dollars", "1000.50", "USD", "$1,000.50"},
		{"negative", "-250000", "USD", "-$250,000.00"},
		{"zero decimal currency", "1500", "JPY", "¥1,500"},
		{"no currency configured", "42.125", "", "42.125"},
		{"unknown code", "42.10", "???", "42.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.want, formatMoney(amount, tt.code))
		})
	}
}

func TestParseOpeningFlags(t *testing.T) {
	date, balance, err := parseOpeningFlags("2010-01-01", "99.95")
	require.NoError(t, err)
	require.NotNil(t, date)
	require.NotNil(t, balance)
	assert.Equal(t, 2010, date.Year())
	assert.True(t, balance.Equal(decimal.RequireFromString("99.95")))

	date, balance, err = parseOpeningFlags("", "")
	require.NoError(t, err)
	assert.Nil(t, date)
	assert.Nil(t, balance)

	_, _, err = parseOpeningFlags("2010-01-01", "")
	require.Error(t, err)
	_, _, err = parseOpeningFlags("", "100")
	require.Error(t, err)
	_, _, err = parseOpeningFlags("01/01/2010", "100")
	require.Error(t, err)
	_, _, err = parseOpeningFlags("2010-01-01", "lots")
	require.Error(t, err)
}
