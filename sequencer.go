package txbundle

import (
	"fmt"
	"math/big"

	"github.com/smartcontractkit/txbundle/amount"
	"github.com/smartcontractkit/txbundle/chains"
	"github.com/smartcontractkit/txbundle/sdk/evm"
	"github.com/smartcontractkit/txbundle/types"
)

// Compile turns a validated action into its ordered transaction bundle. Steps are always emitted
// as [wrap] [approve-zero approve-full] action..., where the bracketed groups appear only for
// actions whose protocol pulls tokens from the treasury.
//
// SendTokens with an ERC-20 emits only transfer calls and no approvals: the treasury executes the
// transfers itself, so no contract pulls tokens through an allowance. Escrow milestones carry no
// cliff; validation rejects one.
//
// metadataRef is the off-chain metadata reference of an escrow and is ignored for other kinds.
func Compile(action *ValidatedAction, contracts chains.Contracts, metadataRef string) (*types.TransactionBundle, error) {
	req := action.Request()
	native := req.Token.IsNative()

	if err := contracts.Require(req.ChainSelector, req.Kind, native); err != nil {
		return nil, err
	}
	if req.Kind == types.ActionMilestoneEscrow && metadataRef == "" {
		return nil, ErrMissingMetadataReference
	}

	total := action.Total()
	c := &compiler{}

	token := req.Token.Address
	if req.Kind.RequiresAllowance() {
		if native {
			c.add(types.StepWrap)(evm.EncodeDeposit(contracts.WrappedNative, total))
			token = contracts.WrappedNative
		}

		spender := contracts.Spender(req.Kind)
		c.add(types.StepApproveZero)(evm.EncodeApprove(token, spender, big.NewInt(0)))
		c.add(types.StepApproveFull)(evm.EncodeApprove(token, spender, total))
	}

	switch req.Kind {
	case types.ActionSendTokens:
		for _, item := range action.Items() {
			if native {
				c.add(types.StepNativeTransfer)(evm.NativeTransfer(item.Recipient, item.Amount), nil)
				continue
			}
			c.add(types.StepTransfer)(evm.EncodeTransfer(token, item.Recipient, item.Amount))
		}

	case types.ActionMilestoneEscrow:
		c.add(types.StepEscrow)(evm.EncodeDeployAndFund(
			contracts.EscrowFactory, token, req.Sender(), escrowMilestones(action.Items()), metadataRef,
		))

	case types.ActionTokenStream:
		c.add(types.StepStream)(evm.EncodeCreateBatch(
			contracts.StreamBatcher, token, streamParams(req, action.Items()),
		))
	}

	if c.err != nil {
		return nil, c.err
	}

	return &types.TransactionBundle{
		ChainSelector: req.ChainSelector,
		Steps:         c.steps,
		TotalAmount:   total,
		Summary:       summary(req, total, len(action.Items())),
	}, nil
}

// compiler accumulates steps and keeps the first encoding error.
type compiler struct {
	steps []types.TransactionStep
	err   error
}

func (c *compiler) add(kind types.StepKind) func(evm.Call, error) {
	return func(call evm.Call, err error) {
		if c.err != nil {
			return
		}
		if err != nil {
			c.err = fmt.Errorf("failed to encode %s step: %w", kind, err)
			return
		}

		c.steps = append(c.steps, types.TransactionStep{
			Kind:              kind,
			Target:            call.Target,
			FunctionSignature: call.Signature,
			Calldata:          call.Data,
			Value:             call.Value,
		})
	}
}

func escrowMilestones(items []ValidatedItem) []evm.EscrowMilestone {
	milestones := make([]evm.EscrowMilestone, 0, len(items))
	for _, item := range items {
		milestones = append(milestones, evm.EscrowMilestone{
			Recipient: item.Recipient,
			Amount:    new(big.Int).Set(item.Amount),
			Start:     big.NewInt(item.Schedule.StartTime),
			End:       big.NewInt(item.Schedule.EndTime),
		})
	}

	return milestones
}

func streamParams(req types.ActionRequest, items []ValidatedItem) []evm.StreamParams {
	sender := req.Sender()

	streams := make([]evm.StreamParams, 0, len(items))
	for _, item := range items {
		streams = append(streams, evm.StreamParams{
			Sender:       sender,
			Recipient:    item.Recipient,
			Amount:       new(big.Int).Set(item.Amount),
			Start:        big.NewInt(item.Schedule.StartTime),
			Cliff:        big.NewInt(item.Schedule.CliffTime),
			End:          big.NewInt(item.Schedule.EndTime),
			Cancelable:   !req.Stream.NonCancelable,
			Transferable: req.Stream.Transferable,
		})
	}

	return streams
}

func summary(req types.ActionRequest, total *big.Int, n int) string {
	formatted := amount.Format(total, req.Token.Decimals)

	switch req.Kind {
	case types.ActionMilestoneEscrow:
		return fmt.Sprintf("Fund escrow with %s %s across %d %s",
			formatted, req.Token.Symbol, n, plural(n, "milestone"))
	case types.ActionTokenStream:
		return fmt.Sprintf("Stream %s %s to %d %s",
			formatted, req.Token.Symbol, n, plural(n, "recipient"))
	case types.ActionSendTokens:
	}

	return fmt.Sprintf("Send %s %s to %d %s", formatted, req.Token.Symbol, n, plural(n, "recipient"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}

	return noun + "s"
}
