package types

// CurveKind is the shape of an unlock curve.
type CurveKind string

const (
	CurveLinear      CurveKind = "linear"
	CurveExponential CurveKind = "exponential"
)

// UnlockCurve describes how a stream releases funds over time. It only drives client side
// previews; the stream contract enforces its own curve.
type UnlockCurve struct {
	Kind     CurveKind `json:"kind"`
	Exponent float64   `json:"exponent,omitempty"`
	Inverted bool      `json:"inverted,omitempty"`
}

// LinearCurve returns the linear unlock curve.
func LinearCurve() UnlockCurve {
	return UnlockCurve{Kind: CurveLinear}
}

// ExponentialCurve returns an exponential unlock curve. Exponents above 1 backload the unlock,
// the inverted form frontloads it.
func ExponentialCurve(exponent float64, inverted bool) UnlockCurve {
	return UnlockCurve{Kind: CurveExponential, Exponent: exponent, Inverted: inverted}
}
