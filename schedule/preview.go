package schedule

import (
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/smartcontractkit/txbundle/types"
)

var (
	// ErrTooFewSamples is returned when a preview is asked for fewer than two points.
	ErrTooFewSamples = errors.New("preview needs at least two samples")

	// ErrTooManySamples is returned when a preview is asked for more than MaxPreviewSamples points.
	ErrTooManySamples = fmt.Errorf("preview supports at most %d samples", MaxPreviewSamples)
)

// MaxPreviewSamples bounds the number of evenly spaced points of a preview.
const MaxPreviewSamples = 10_000

// previewPrecision is the mantissa size used to scale the total by a fraction.
const previewPrecision = 256

// UnlockPoint is one sample of a preview.
type UnlockPoint struct {
	Time     int64    `json:"time"`
	Fraction float64  `json:"fraction"`
	Unlocked *big.Int `json:"unlocked"`
}

// Preview samples the unlock curve at evenly spaced times from start to end, both included. A
// point is added at the cliff when one is set so the step is visible. Unlocked amounts are the
// floor of total times the fraction and never exceed total.
func Preview(s types.ResolvedSchedule, curve types.UnlockCurve, total *big.Int, samples int) ([]UnlockPoint, error) {
	if samples < 2 {
		return nil, ErrTooFewSamples
	}
	if samples > MaxPreviewSamples {
		return nil, ErrTooManySamples
	}
	if err := ValidateCurve(curve); err != nil {
		return nil, err
	}

	// Split the step into quotient and remainder so no intermediate product exceeds the length.
	n := int64(samples - 1)
	step, rem := s.Length()/n, s.Length()%n

	times := make([]int64, 0, samples+1)
	for i := range int64(samples) {
		times = append(times, s.StartTime+step*i+rem*i/n)
	}
	if s.HasCliff() {
		times = insertSorted(times, s.CliffTime)
	}

	points := make([]UnlockPoint, 0, len(times))
	for _, t := range times {
		fraction := UnlockedFraction(curve, ElapsedFraction(s, time.Unix(t, 0)))
		points = append(points, UnlockPoint{
			Time:     t,
			Fraction: fraction,
			Unlocked: scale(total, fraction),
		})
	}

	return points, nil
}

func insertSorted(times []int64, t int64) []int64 {
	i, found := slices.BinarySearch(times, t)
	if found {
		return times
	}

	return slices.Insert(times, i, t)
}

func scale(total *big.Int, fraction float64) *big.Int {
	switch {
	case fraction <= 0:
		return new(big.Int)
	case fraction >= 1:
		return new(big.Int).Set(total)
	}

	f := new(big.Float).SetPrec(previewPrecision).SetInt(total)
	f.Mul(f, new(big.Float).SetPrec(previewPrecision).SetFloat64(fraction))
	out, _ := f.Int(nil)

	if out.Cmp(total) > 0 {
		out.Set(total)
	}

	return out
}
