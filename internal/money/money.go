// Package money provides a fixed-precision decimal amount with two fraction
// digits. Amounts are stored in the database as integer cents and serialized
// to JSON as plain decimal numbers, so no float arithmetic ever touches a
// balance.
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount rounded to two fraction digits.
// The zero value is 0.00 and ready to use.
type Money struct {
	d decimal.Decimal
}

// Zero is the 0.00 amount.
var Zero = Money{}

// FromCents builds an amount from an integer number of cents.
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -2)}
}

// FromString parses a decimal string such as "100" or "100.50".
// Anything beyond two fraction digits is rejected rather than rounded.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.Exponent() < -2 {
		return Money{}, fmt.Errorf("amount %q has more than two fraction digits", s)
	}
	return Money{d: d}, nil
}

// Cents returns the amount as integer cents.
func (m Money) Cents() int64 {
	return m.d.Shift(2).IntPart()
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// Cmp compares m against o: -1 if less, 0 if equal, +1 if greater.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// Equal reports whether two amounts are numerically equal.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// String formats the amount with exactly two fraction digits.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON emits the amount as an unquoted decimal number with two
// fraction digits, e.g. 150.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts both a bare number and a quoted decimal string.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// GormDataType maps Money to an integer cents column.
func (Money) GormDataType() string {
	return "bigint"
}

// Value stores the amount as integer cents.
func (m Money) Value() (driver.Value, error) {
	return m.Cents(), nil
}

// Scan reads integer cents back from the database.
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*m = FromCents(v)
		return nil
	case nil:
		*m = Zero
		return nil
	default:
		return fmt.Errorf("scan money: unsupported type %T", src)
	}
}
