package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromString(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
	}{
		{"0", 0},
		{"100", 10000},
		{"100.5", 10050},
		{"100.50", 10050},
		{"0.01", 1},
		{"-3.25", -325},
	}
	for _, tc := range cases {
		m, err := FromString(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.cents, m.Cents(), tc.in)
	}
}

func TestFromStringRejectsExtraPrecision(t *testing.T) {
	for _, in := range []string{"1.005", "0.001", "99.999"} {
		_, err := FromString(in)
		assert.Error(t, err, in)
	}
}

func TestFromStringRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1,50", "10$"} {
		_, err := FromString(in)
		assert.Error(t, err, in)
	}
}

func TestArithmetic(t *testing.T) {
	a := FromCents(10000) // 100.00
	b := FromCents(5050)  // 50.50

	assert.Equal(t, int64(15050), a.Add(b).Cents())
	assert.Equal(t, int64(4950), a.Sub(b).Cents())
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.True(t, a.IsPositive())
	assert.False(t, a.IsNegative())
	assert.True(t, b.Sub(a).IsNegative())
	assert.True(t, Zero.Equal(a.Sub(a)))
}

func TestStringAlwaysTwoDigits(t *testing.T) {
	assert.Equal(t, "0.00", Zero.String())
	assert.Equal(t, "100.00", FromCents(10000).String())
	assert.Equal(t, "100.50", FromCents(10050).String())
	assert.Equal(t, "-3.25", FromCents(-325).String())
}

func TestJSONRoundTrip(t *testing.T) {
	m := FromCents(15000)

	raw, err := json.Marshal(m)
	require.NoError(t, err)
	// unquoted decimal number with two fraction digits
	assert.Equal(t, "150.00", string(raw))

	var back Money
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, m.Equal(back))

	// quoted strings are accepted too
	var quoted Money
	require.NoError(t, json.Unmarshal([]byte(`"42.10"`), &quoted))
	assert.Equal(t, int64(4210), quoted.Cents())
}

func TestDatabaseRoundTrip(t *testing.T) {
	m := FromCents(12345)

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, int64(12345), v)

	var back Money
	require.NoError(t, back.Scan(int64(12345)))
	assert.True(t, m.Equal(back))

	require.Error(t, back.Scan("not a number"))
}
