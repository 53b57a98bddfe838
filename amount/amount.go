// Package amount converts user supplied decimal strings into exact token base units.
//
// Amounts never pass through floating point: the decimal point is shifted on the string itself.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidFormat is returned for input that is not a plain decimal number. Scientific
	// notation is rejected so a UI that auto-converts small numbers cannot lose precision.
	ErrInvalidFormat = errors.New("invalid amount format")

	// ErrNotPositive is returned when the amount is zero once scaled to base units.
	ErrNotPositive = errors.New("amount must be greater than zero")

	// ErrOverflow is returned when the amount does not fit the target integer width.
	ErrOverflow = errors.New("amount exceeds maximum value")
)

// MaxBits is the widest integer an amount may occupy, the EVM word size.
const MaxBits = 256

var decimalPattern = regexp.MustCompile(`^(\d+\.?\d*|\.\d+)$`)

// Normalize parses raw into base units for a token with the given number of decimals. The result
// must fit in a uint256.
func Normalize(raw string, decimals uint8) (*big.Int, error) {
	return NormalizeWithLimit(raw, decimals, MaxBits)
}

// NormalizeWithLimit is Normalize with the result limited to an unsigned integer of bits width.
// Digits beyond the token's precision are truncated.
func NormalizeWithLimit(raw string, decimals uint8, bits uint) (*big.Int, error) {
	s := strings.TrimSpace(raw)
	if !decimalPattern.MatchString(s) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > int(decimals) {
		frac = frac[:decimals]
	} else {
		frac += strings.Repeat("0", int(decimals)-len(frac))
	}

	digits := strings.TrimLeft(whole+frac, "0")
	if digits == "" {
		return nil, fmt.Errorf("%w: %q", ErrNotPositive, raw)
	}

	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, raw)
	}

	if err := checkWidth(v, bits); err != nil {
		return nil, fmt.Errorf("%w: %q", err, raw)
	}

	return v, nil
}

func checkWidth(v *big.Int, bits uint) error {
	if bits > MaxBits {
		bits = MaxBits
	}

	if _, overflow := uint256.FromBig(v); overflow {
		return ErrOverflow
	}

	if uint(v.BitLen()) > bits {
		return ErrOverflow
	}

	return nil
}

// Format renders base units as an exact decimal string without trailing zeros, e.g. 400500000
// with 6 decimals becomes "400.5". Normalizing the output yields the input again.
func Format(v *big.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}

	return decimal.NewFromBigInt(v, -int32(decimals)).String()
}

// Sum returns the exact sum of amounts. Nil entries are skipped.
func Sum(amounts ...*big.Int) *big.Int {
	total := new(big.Int)
	for _, a := range amounts {
		if a != nil {
			total.Add(total, a)
		}
	}

	return total
}
