// Package core owns the budget ledger domain model.
//
// This file contains monetary amount parsing and formatting. Amounts are
// held as int64 cents to keep aggregation exact; floats only appear at the
// display and document boundaries.
package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in cents. Ledger amounts are never negative; signed
// values appear only in variance arithmetic.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string to Money with half-up rounding on
// the third decimal place. Zero is a valid amount. A parseable negative
// value is rejected with ErrNegativeAmount so callers can tell "wrong sign"
// apart from "not a number".
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,34")  -> 1234 cents
//	ParseAmount("0")      -> 0 cents
//	ParseAmount("-0.01")  -> ErrNegativeAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty amount", ErrMalformedInput)
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, fmt.Errorf("%w: invalid amount", ErrMalformedInput)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return Money{}, fmt.Errorf("%w: invalid amount", ErrMalformedInput)
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, fmt.Errorf("%w: invalid amount", ErrMalformedInput)
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, fmt.Errorf("%w: invalid amount", ErrMalformedInput)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: invalid amount", ErrMalformedInput)
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, fmt.Errorf("%w: amount too large", ErrMalformedInput)
	}
	// Take the first two fractional digits; half-up rounding on the third.
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
	if negative && cents != 0 {
		return Money{}, fmt.Errorf("%w: %s", ErrNegativeAmount, "-"+s)
	}
	return Money{Cents: cents}, nil
}

// MoneyFromFloat converts a decimal dollar value to cents with half-up
// rounding. Used when decoding persisted documents, where amounts are plain
// JSON numbers.
func MoneyFromFloat(f float64) Money {
	return Money{Cents: int64(math.Round(f * 100.0))}
}

// Float64 returns the dollar value for display and document encoding.
// Use cents for arithmetic.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return strconv.FormatFloat(m.Float64(), 'f', 2, 64)
}
