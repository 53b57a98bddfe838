package schedule

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/smartcontractkit/txbundle/types"
)

var (
	ErrUnknownCurve    = errors.New("unknown unlock curve")
	ErrInvalidExponent = errors.New("exponent must be a finite number greater than zero")
)

// ValidateCurve checks that a curve can be evaluated.
func ValidateCurve(curve types.UnlockCurve) error {
	switch curve.Kind {
	case types.CurveLinear:
		return nil
	case types.CurveExponential:
		e := curve.Exponent
		if math.IsNaN(e) || math.IsInf(e, 0) || e <= 0 {
			return fmt.Errorf("%w: %v", ErrInvalidExponent, e)
		}

		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCurve, curve.Kind)
	}
}

// UnlockedFraction returns the share of the total unlocked once elapsed of the schedule has
// passed. elapsed is clamped to [0, 1].
//
// This is a client side estimate for previews. The on-chain curve is authoritative and may
// differ; the exponential form here is elapsed^e, or elapsed^(1/e) when inverted.
func UnlockedFraction(curve types.UnlockCurve, elapsed float64) float64 {
	switch {
	case math.IsNaN(elapsed) || elapsed <= 0:
		return 0
	case elapsed >= 1:
		return 1
	}

	if curve.Kind != types.CurveExponential || curve.Exponent <= 0 {
		return elapsed
	}

	exp := curve.Exponent
	if curve.Inverted {
		exp = 1 / exp
	}

	return math.Pow(elapsed, exp)
}

// ElapsedFraction returns how far through the schedule at is: 0 before the start or the cliff,
// 1 at or after the end.
func ElapsedFraction(s types.ResolvedSchedule, at time.Time) float64 {
	t := at.Unix()
	if t < s.StartTime || (s.HasCliff() && t < s.CliffTime) {
		return 0
	}
	if t >= s.EndTime {
		return 1
	}

	return float64(t-s.StartTime) / float64(s.Length())
}
