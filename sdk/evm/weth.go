package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EncodeDeposit encodes deposit() on the wrapped native token, carrying amount as value.
func EncodeDeposit(wrappedNative common.Address, amount *big.Int) (Call, error) {
	data, sig, err := wrappedNativeContract().Pack("deposit")
	if err != nil {
		return Call{}, err
	}

	return newCall(wrappedNative, sig, data, new(big.Int).Set(amount)), nil
}
