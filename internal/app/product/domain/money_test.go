package domain

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid decimal string", func(t *testing.T) {
		m, err := NewMoney("10.00")
		require.NoError(t, err)
		assert.Equal(t, "10.00", m.String())
		assert.True(t, m.IsPositive())
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := NewMoney("ten")
		assert.Error(t, err)
	})

	t.Run("negative allowed at construction", func(t *testing.T) {
		m, err := NewMoney("-1")
		require.NoError(t, err)
		assert.True(t, m.IsNegative())
	})
}

func TestMoney_MultiplyQuantity(t *testing.T) {
	t.Run("exact product keeps scale", func(t *testing.T) {
		total := MustMoney("10.00").MultiplyQuantity(3)
		assert.Equal(t, "30.00", total.String())
		assert.True(t, total.Equals(MustMoney("30")))
	})

	t.Run("no binary rounding", func(t *testing.T) {
		// 0.1 * 3 is 0.30000000000000004 in float64
		total := MustMoney("0.1").MultiplyQuantity(3)
		assert.Equal(t, "0.3", total.String())
	})

	t.Run("large values stay exact", func(t *testing.T) {
		total := MustMoney("12345678901234567890.123456789").MultiplyQuantity(1000)
		assert.Equal(t, "12345678901234567890123.456789000", total.String())
	})

	t.Run("zero quantity", func(t *testing.T) {
		assert.True(t, MustMoney("9.99").MultiplyQuantity(0).IsZero())
	})
}

func TestMoney_IsSafeForStorage(t *testing.T) {
	assert.True(t, MustMoney("2499.99").IsSafeForStorage())
	assert.True(t, MustMoney("1.123456789").IsSafeForStorage())
	assert.True(t, MustMoney("1.1234567890000").IsSafeForStorage(), "trailing zeros do not count")
	assert.False(t, MustMoney("1.1234567891").IsSafeForStorage())
	assert.False(t, MustMoney("123456789012345678901234567890").IsSafeForStorage())
}

func TestMoneyFromRat(t *testing.T) {
	t.Run("round trip through rat", func(t *testing.T) {
		m, err := MoneyFromRat(MustMoney("19.99").Rat())
		require.NoError(t, err)
		assert.True(t, m.Equals(MustMoney("19.99")))
		assert.Equal(t, "19.99", m.String())
	})

	t.Run("integers have no fraction", func(t *testing.T) {
		m, err := MoneyFromRat(big.NewRat(40, 1))
		require.NoError(t, err)
		assert.Equal(t, "40", m.String())
	})

	t.Run("nil is zero", func(t *testing.T) {
		m, err := MoneyFromRat(nil)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})
}

func TestMoney_JSON(t *testing.T) {
	t.Run("marshals as bare number", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Price Money `json:"price"`
		}{Price: MustMoney("10.50")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"price":10.50}`, string(data))
		assert.Contains(t, string(data), "10.50")
	})

	t.Run("accepts number and string", func(t *testing.T) {
		var v struct {
			A Money `json:"a"`
			B Money `json:"b"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"a":1.25,"b":"2.50"}`), &v))
		assert.True(t, v.A.Equals(MustMoney("1.25")))
		assert.True(t, v.B.Equals(MustMoney("2.5")))
	})

	t.Run("rejects non numeric", func(t *testing.T) {
		var m Money
		assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
	})
}
