package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// NativeTokenAddress is the placeholder address wallets use for a chain's native currency.
var NativeTokenAddress = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// TokenDescriptor is a snapshot of the token selected in a form, fetched externally.
//
// Balance is the treasury's holdings in base units. A descriptor is replaced wholesale when a
// different token is selected and is never mutated in place.
type TokenDescriptor struct {
	Address  common.Address `json:"address"`
	Decimals uint8          `json:"decimals" validate:"lte=77"`
	Symbol   string         `json:"symbol" validate:"required"`
	Name     string         `json:"name"`
	Balance  *big.Int       `json:"balance" validate:"required"`
	IsValid  bool           `json:"isValid"`
}

// IsNative reports whether the descriptor refers to the chain's native currency rather than an
// ERC-20 contract.
func (t TokenDescriptor) IsNative() bool {
	return t.Address == (common.Address{}) || t.Address == NativeTokenAddress
}

// WithBalance returns a copy of the descriptor carrying a new balance.
func (t TokenDescriptor) WithBalance(balance *big.Int) TokenDescriptor {
	t.Balance = new(big.Int).Set(balance)
	return t
}
