package sdkerrors

import (
	"fmt"

	"github.com/smartcontractkit/txbundle/types"
)

// UnsupportedChainError is returned when no contracts can be resolved for a chain selector,
// either because the selector is unknown or because its chain family is not EVM.
type UnsupportedChainError struct {
	ChainSelector types.ChainSelector
	Reason        error
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("unsupported chain %d: %v", e.ChainSelector, e.Reason)
}

func (e *UnsupportedChainError) Unwrap() error {
	return e.Reason
}

func NewUnsupportedChainError(sel types.ChainSelector, reason error) *UnsupportedChainError {
	return &UnsupportedChainError{ChainSelector: sel, Reason: reason}
}

// MissingContractError is returned when a chain has no address configured for a contract a
// bundle needs, such as the escrow factory.
type MissingContractError struct {
	ChainSelector types.ChainSelector
	Contract      string
}

func (e *MissingContractError) Error() string {
	return fmt.Sprintf("no %s address configured for chain %d", e.Contract, e.ChainSelector)
}

func NewMissingContractError(sel types.ChainSelector, contract string) *MissingContractError {
	return &MissingContractError{ChainSelector: sel, Contract: contract}
}

// ResolutionError is returned when a recipient input cannot be turned into an address.
type ResolutionError struct {
	Input  string
	Reason error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve %q: %v", e.Input, e.Reason)
}

func (e *ResolutionError) Unwrap() error {
	return e.Reason
}

func NewResolutionError(input string, reason error) *ResolutionError {
	return &ResolutionError{Input: input, Reason: reason}
}
