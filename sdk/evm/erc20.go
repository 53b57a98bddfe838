package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EncodeApprove encodes approve(spender, amount) on token.
func EncodeApprove(token, spender common.Address, amount *big.Int) (Call, error) {
	data, sig, err := erc20Contract().Pack("approve", spender, amount)
	if err != nil {
		return Call{}, err
	}

	return newCall(token, sig, data, nil), nil
}

// EncodeTransfer encodes transfer(to, amount) on token.
func EncodeTransfer(token, to common.Address, amount *big.Int) (Call, error) {
	data, sig, err := erc20Contract().Pack("transfer", to, amount)
	if err != nil {
		return Call{}, err
	}

	return newCall(token, sig, data, nil), nil
}

// EncodeBalanceOf encodes the balanceOf(account) view call.
func EncodeBalanceOf(token, account common.Address) (Call, error) {
	data, sig, err := erc20Contract().Pack("balanceOf", account)
	if err != nil {
		return Call{}, err
	}

	return newCall(token, sig, data, nil), nil
}

// DecodeBalanceOf decodes the return data of balanceOf.
func DecodeBalanceOf(data []byte) (*big.Int, error) {
	out, err := erc20Contract().Unpack("balanceOf", data)
	if err != nil {
		return nil, err
	}

	return out[0].(*big.Int), nil
}

// DecodeTransfer decodes the recipient and amount of transfer calldata.
func DecodeTransfer(data []byte) (common.Address, *big.Int, error) {
	args, err := erc20Contract().UnpackInput("transfer", data)
	if err != nil {
		return common.Address{}, nil, err
	}

	return args[0].(common.Address), args[1].(*big.Int), nil
}
