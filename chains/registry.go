package chains

import (
	"github.com/ethereum/go-ethereum/common"

	sdkerrors "github.com/smartcontractkit/txbundle/sdk/errors"
	"github.com/smartcontractkit/txbundle/types"
)

// wrappedNativeByChainID are the canonical wrapped native tokens keyed by EVM chain id.
var wrappedNativeByChainID = map[uint64]common.Address{
	1:        common.HexToAddress("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"), // Ethereum WETH
	11155111: common.HexToAddress("0xfFf9976782d46CC05630D1f6eBAb18b2324d6B14"), // Sepolia WETH
	42161:    common.HexToAddress("0x82aF49447D8a07e3bd95BD0d56f35241523fBab1"), // Arbitrum WETH
	10:       common.HexToAddress("0x4200000000000000000000000000000000000006"), // Optimism WETH
	8453:     common.HexToAddress("0x4200000000000000000000000000000000000006"), // Base WETH
	137:      common.HexToAddress("0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270"), // Polygon WPOL
}

// Registry resolves the contracts of a chain from the built-in wrapped native tokens and
// configured overrides.
type Registry struct {
	overrides map[types.ChainSelector]Contracts
}

// NewRegistry returns a registry applying overrides on top of the built-in addresses.
func NewRegistry(overrides map[types.ChainSelector]Contracts) *Registry {
	o := make(map[types.ChainSelector]Contracts, len(overrides))
	for sel, c := range overrides {
		o[sel] = c
	}

	return &Registry{overrides: o}
}

// Lookup returns the contracts of the chain. It fails with UnsupportedChainError when the
// selector is unknown or not an EVM chain.
func (r *Registry) Lookup(sel types.ChainSelector) (Contracts, error) {
	chainID, err := types.EVMChainID(sel)
	if err != nil {
		return Contracts{}, sdkerrors.NewUnsupportedChainError(sel, err)
	}

	c := Contracts{WrappedNative: wrappedNativeByChainID[chainID]}
	if r == nil {
		return c, nil
	}

	return c.merge(r.overrides[sel]), nil
}
