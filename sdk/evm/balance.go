package evm

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/txbundle/sdk"
	"github.com/smartcontractkit/txbundle/types"
)

// BalanceBackend is the subset of an EVM client needed to read balances.
type BalanceBackend interface {
	ethereum.ChainStateReader
	ethereum.ContractCaller
}

var _ sdk.BalanceReader = (*BalanceReader)(nil)

// BalanceReader reads native and ERC-20 balances at the latest block.
type BalanceReader struct {
	client BalanceBackend
}

func NewBalanceReader(client BalanceBackend) *BalanceReader {
	return &BalanceReader{client: client}
}

func (r *BalanceReader) Balance(ctx context.Context, holder, token common.Address) (*big.Int, error) {
	if (types.TokenDescriptor{Address: token}).IsNative() {
		bal, err := r.client.BalanceAt(ctx, holder, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read native balance of %s: %w", holder.Hex(), err)
		}

		return bal, nil
	}

	call, err := EncodeBalanceOf(token, holder)
	if err != nil {
		return nil, err
	}

	out, err := r.client.CallContract(ctx, ethereum.CallMsg{
		From: holder,
		To:   &call.Target,
		Data: call.Data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s on %s: %w", call.Signature, token.Hex(), err)
	}

	bal, err := DecodeBalanceOf(out)
	if err != nil {
		return nil, fmt.Errorf("failed to decode balance of %s on %s: %w", holder.Hex(), token.Hex(), err)
	}

	return bal, nil
}
