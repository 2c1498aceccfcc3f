// Package core holds the domain model of the finance store: entities,
// money handling, and period computation. It has no storage or transport
// concerns.
package core

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Money is an amount in integer cents. Using cents keeps balance
// arithmetic exact; float representations are reserved for display.
type Money struct {
	Cents int64
}

// MarshalJSON encodes the amount as a decimal number of units with two
// fractional digits, the same shape UnmarshalJSON and ParseAmount accept.
// Reading a value and writing it back yields the same amount.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a decimal number or a quoted amount string and
// coerces it through ParseAmount.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 0 && s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("parse money: %w", err)
		}
	}
	*m = ParseAmount(s)
	return nil
}

// Units returns the whole-unit value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point drift.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// Neg returns the negated amount.
func (m Money) Neg() Money {
	return Money{Cents: -m.Cents}
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m minus o.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

func (m Money) String() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParseAmount coerces arbitrary input to an amount. The first numeric
// substring is used, with either dot or comma as decimal separator and an
// optional leading minus; a third decimal digit rounds half-up. Input with
// no numeric substring yields zero. ParseAmount never fails: every entry
// point that accepts a raw monetary value normalizes through it.
//
// Examples:
//
//	ParseAmount("12.34")      -> 1234 cents
//	ParseAmount("12,346")     -> 1235 cents
//	ParseAmount("EUR 5 fee")  -> 500 cents
//	ParseAmount("n/a")        -> 0 cents
func ParseAmount(s string) Money {
	intPart, fracPart, neg, ok := firstNumericRun(s)
	if !ok {
		return Money{}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		// Overlong digit runs do not fit an int64; treat as unparseable.
		return Money{}
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return Money{Cents: cents}
}

// firstNumericRun extracts the first run of digits in s, optionally signed
// and optionally followed by one decimal separator (dot or comma) and more
// digits. It returns the integer digits, the fractional digits, and the
// sign.
func firstNumericRun(s string) (intPart, fracPart string, neg, ok bool) {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return "", "", false, false
	}
	if start > 0 && s[start-1] == '-' {
		neg = true
	}

	i := start
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	intPart = s[start:i]

	// One separator, only when digits follow it.
	if i+1 < len(s) && (s[i] == '.' || s[i] == ',') && s[i+1] >= '0' && s[i+1] <= '9' {
		j := i + 1
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		fracPart = s[i+1 : j]
	}
	return intPart, fracPart, neg, true
}
