package evm

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrValueOutOfRange is returned when an argument does not fit its ABI integer type. The ABI
// packer pads any value to 32 bytes without checking the declared width.
var ErrValueOutOfRange = errors.New("value out of range")

// Widths of the integer types used by the escrow and stream tuples.
const (
	uint40Bits  = 40
	uint128Bits = 128
	uint256Bits = 256
)

// checkUint fails unless v is a non-negative integer of at most bits width.
func checkUint(field string, v *big.Int, bits int) error {
	if v == nil || v.Sign() < 0 || v.BitLen() > bits {
		return fmt.Errorf("%w: %s %v does not fit uint%d", ErrValueOutOfRange, field, v, bits)
	}

	return nil
}

// Call is an encoded contract call: the calldata, its canonical function signature and the native
// value attached to it.
type Call struct {
	Target    common.Address
	Signature string
	Data      []byte
	Value     *big.Int
}

func newCall(target common.Address, sig string, data []byte, value *big.Int) Call {
	if value == nil {
		value = big.NewInt(0)
	}

	return Call{
		Target:    target,
		Signature: sig,
		Data:      data,
		Value:     value,
	}
}

// NativeTransfer is a plain value transfer with empty calldata.
func NativeTransfer(to common.Address, amount *big.Int) Call {
	return newCall(to, "", []byte{}, new(big.Int).Set(amount))
}
