// Package safecast converts command line integers into the narrower widths token math uses.
package safecast

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// IntToUint8 converts an int to uint8, rejecting values outside [0, 255].
func IntToUint8(value int) (uint8, error) {
	if value < 0 || value > math.MaxUint8 {
		return 0, fmt.Errorf("value %d exceeds uint8 range", value)
	}

	return cast.ToUint8E(value)
}
