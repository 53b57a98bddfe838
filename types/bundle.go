package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// StepKind classifies a TransactionStep by the role it plays in a bundle.
type StepKind string

const (
	StepWrap           StepKind = "wrap"
	StepApproveZero    StepKind = "approve-zero"
	StepApproveFull    StepKind = "approve-full"
	StepTransfer       StepKind = "transfer"
	StepNativeTransfer StepKind = "native-transfer"
	StepEscrow         StepKind = "escrow"
	StepStream         StepKind = "stream"
)

// TransactionStep is a single atomic on-chain call.
type TransactionStep struct {
	Kind              StepKind       `json:"kind"`
	Target            common.Address `json:"target"`
	FunctionSignature string         `json:"functionSignature"`
	Calldata          hexutil.Bytes  `json:"calldata"`
	Value             *big.Int       `json:"value"`
}

// TransactionBundle is the ordered set of calls realizing one proposal action. It is the only
// artifact handed to the queueing layer.
type TransactionBundle struct {
	ChainSelector ChainSelector     `json:"chainSelector"`
	Steps         []TransactionStep `json:"steps"`
	TotalAmount   *big.Int          `json:"totalAmount"`
	Summary       string            `json:"summary"`
}

// StepKinds returns the kind of every step in order.
func (b TransactionBundle) StepKinds() []StepKind {
	kinds := make([]StepKind, 0, len(b.Steps))
	for _, s := range b.Steps {
		kinds = append(kinds, s.Kind)
	}

	return kinds
}
