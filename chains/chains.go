// Package chains holds the per-chain contract addresses a bundle is compiled against.
package chains

import (
	"github.com/ethereum/go-ethereum/common"

	sdkerrors "github.com/smartcontractkit/txbundle/sdk/errors"
	"github.com/smartcontractkit/txbundle/types"
)

// Contract names used in MissingContractError.
const (
	ContractWrappedNative = "wrapped native token"
	ContractEscrowFactory = "escrow factory"
	ContractStreamBatcher = "stream batcher"
)

// Contracts are the addresses of the protocol contracts deployed on one chain. A zero address
// means the contract is not available there.
type Contracts struct {
	WrappedNative common.Address `json:"wrappedNative" mapstructure:"wrapped_native" yaml:"wrapped_native"`
	EscrowFactory common.Address `json:"escrowFactory" mapstructure:"escrow_factory" yaml:"escrow_factory"`
	StreamBatcher common.Address `json:"streamBatcher" mapstructure:"stream_batcher" yaml:"stream_batcher"`
}

// merge returns c with every non zero address of o applied on top.
func (c Contracts) merge(o Contracts) Contracts {
	if o.WrappedNative != (common.Address{}) {
		c.WrappedNative = o.WrappedNative
	}
	if o.EscrowFactory != (common.Address{}) {
		c.EscrowFactory = o.EscrowFactory
	}
	if o.StreamBatcher != (common.Address{}) {
		c.StreamBatcher = o.StreamBatcher
	}

	return c
}

// Spender returns the contract that pulls tokens for the given action kind, or the zero address
// for kinds that transfer directly.
func (c Contracts) Spender(kind types.ActionKind) common.Address {
	switch kind {
	case types.ActionMilestoneEscrow:
		return c.EscrowFactory
	case types.ActionTokenStream:
		return c.StreamBatcher
	default:
		return common.Address{}
	}
}

// Require checks that every contract needed to compile kind with the given token is known.
func (c Contracts) Require(sel types.ChainSelector, kind types.ActionKind, native bool) error {
	if kind.RequiresAllowance() && native && c.WrappedNative == (common.Address{}) {
		return sdkerrors.NewMissingContractError(sel, ContractWrappedNative)
	}

	switch kind {
	case types.ActionMilestoneEscrow:
		if c.EscrowFactory == (common.Address{}) {
			return sdkerrors.NewMissingContractError(sel, ContractEscrowFactory)
		}
	case types.ActionTokenStream:
		if c.StreamBatcher == (common.Address{}) {
			return sdkerrors.NewMissingContractError(sel, ContractStreamBatcher)
		}
	case types.ActionSendTokens:
	}

	return nil
}
