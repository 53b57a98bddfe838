package types //nolint:revive,nolintlint // allow pkg name 'types'

import (
	"errors"
	"fmt"
	"slices"

	chainsel "github.com/smartcontractkit/chain-selectors"
)

// ChainSelector is a unique identifier for a chain.
//
// These values are defined in the chain-selectors dependency.
// https://github.com/smartcontractkit/chain-selectors
type ChainSelector uint64

var (
	// ErrChainFamilyNotFound is returned when the chain family is not found for a selector
	ErrChainFamilyNotFound = errors.New("chain family not found")

	// ErrUnsupportedChainFamily is returned when the chain family cannot carry ERC-20 bundles
	ErrUnsupportedChainFamily = errors.New("unsupported chain family")
)

// supportedFamilies is a list of chain families that bundles can be compiled for
var supportedFamilies = []string{
	chainsel.FamilyEVM,
}

// GetChainSelectorFamily returns the family of the chain selector.
func GetChainSelectorFamily(sel ChainSelector) (string, error) {
	family, err := chainsel.GetSelectorFamily(uint64(sel))
	if err != nil {
		return "", fmt.Errorf("%w for selector %d", ErrChainFamilyNotFound, sel)
	}

	if !slices.Contains(supportedFamilies, family) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedChainFamily, family)
	}

	return family, nil
}

// EVMChainID returns the EVM chain id behind the selector.
func EVMChainID(sel ChainSelector) (uint64, error) {
	if _, err := GetChainSelectorFamily(sel); err != nil {
		return 0, err
	}

	return chainsel.ChainIdFromSelector(uint64(sel))
}
