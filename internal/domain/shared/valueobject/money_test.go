package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T, amount string) Money {
	t.Helper()
	m, err := NewMoneyFromString(amount, USD)
	require.NoError(t, err)
	return m
}

func TestNewMoney(t *testing.T) {
	t.Run("requires a currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(10), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})

	t.Run("rejects malformed amount strings", func(t *testing.T) {
		_, err := NewMoneyFromString("nineteen", USD)
		require.Error(t, err)
	})

	t.Run("USD helpers default the currency", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(19.99)
		assert.Equal(t, USD, m.Currency())
		assert.Equal(t, "19.99 USD", m.String())

		z := ZeroUSD()
		assert.True(t, z.IsZero())
		assert.Equal(t, USD, z.Currency())
	})
}

func TestMoneyArithmetic(t *testing.T) {
	t.Run("add and subtract preserve currency", func(t *testing.T) {
		a := usd(t, "10.50")
		b := usd(t, "4.25")

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Equals(usd(t, "14.75")))

		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Equals(usd(t, "6.25")))
	})

	t.Run("mixed currencies are rejected", func(t *testing.T) {
		a := usd(t, "10.00")
		b, err := NewMoneyFromString("10.00", EUR)
		require.NoError(t, err)

		_, err = a.Add(b)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "different currencies")

		_, err = a.Subtract(b)
		require.Error(t, err)

		assert.Panics(t, func() { a.MustAdd(b) })
	})

	t.Run("multiply by quantity", func(t *testing.T) {
		unit := usd(t, "3.99")
		assert.True(t, unit.MultiplyByInt(3).Equals(usd(t, "11.97")))
	})

	t.Run("round to cents", func(t *testing.T) {
		m := usd(t, "10.005")
		assert.True(t, m.Round(2).Equals(usd(t, "10.01")))
	})
}

func TestMoneyComparison(t *testing.T) {
	small := usd(t, "1.00")
	large := usd(t, "2.00")

	less, err := small.LessThan(large)
	require.NoError(t, err)
	assert.True(t, less)

	greater, err := large.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, greater)

	eur, err := NewMoneyFromString("1.00", EUR)
	require.NoError(t, err)
	_, err = small.LessThan(eur)
	require.Error(t, err)

	assert.False(t, small.Equals(eur))
	assert.True(t, small.IsPositive())
	assert.True(t, usd(t, "-5").IsNegative())
}

func TestMoneyJSON(t *testing.T) {
	t.Run("round trips through JSON", func(t *testing.T) {
		data, err := json.Marshal(usd(t, "19.99"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"19.99","currency":"USD"}`, string(data))

		var decoded Money
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, decoded.Equals(usd(t, "19.99")))
	})

	t.Run("rejects payloads without a currency", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"5.00","currency":""}`), &m)
		require.Error(t, err)
	})
}

func TestMoneySQL(t *testing.T) {
	t.Run("stores the bare amount", func(t *testing.T) {
		v, err := usd(t, "42.50").Value()
		require.NoError(t, err)
		assert.Equal(t, "42.5", v)
	})

	t.Run("scans numeric columns in the default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("42.50"))
		assert.True(t, m.Equals(usd(t, "42.50")))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("NULL scans as zero", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})
}
