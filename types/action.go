package types

import (
	"github.com/ethereum/go-ethereum/common"
)

// ActionKind identifies what a proposal action does with the treasury's tokens.
type ActionKind string

const (
	// ActionSendTokens transfers tokens directly to each recipient.
	ActionSendTokens ActionKind = "SendTokens"
	// ActionMilestoneEscrow deploys and funds an escrow released per milestone.
	ActionMilestoneEscrow ActionKind = "MilestoneEscrow"
	// ActionTokenStream creates one vesting stream per recipient.
	ActionTokenStream ActionKind = "TokenStream"
)

// StringToActionKind converts a string to an ActionKind.
var StringToActionKind = map[string]ActionKind{
	"SendTokens":      ActionSendTokens,
	"MilestoneEscrow": ActionMilestoneEscrow,
	"TokenStream":     ActionTokenStream,
}

// Valid reports whether the kind is one of the known action kinds.
func (k ActionKind) Valid() bool {
	_, ok := StringToActionKind[string(k)]
	return ok
}

// ItemLabel is the human readable name of one row of this action kind.
func (k ActionKind) ItemLabel() string {
	switch k {
	case ActionMilestoneEscrow:
		return "Milestone"
	case ActionTokenStream:
		return "Stream"
	default:
		return "Recipient"
	}
}

// RequiresSchedule reports whether every item of this kind carries a schedule.
func (k ActionKind) RequiresSchedule() bool {
	return k == ActionMilestoneEscrow || k == ActionTokenStream
}

// RequiresAllowance reports whether the target protocol pulls tokens from the treasury and so
// needs an ERC-20 allowance. Such protocols only accept the wrapped form of the native currency.
func (k ActionKind) RequiresAllowance() bool {
	return k == ActionMilestoneEscrow || k == ActionTokenStream
}

// MilestoneDetails is the off-chain description of one escrow milestone.
type MilestoneDetails struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// EscrowDetails describes the escrow as a whole in its off-chain metadata.
type EscrowDetails struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ActionItem is one form row. Recipient and Amount are the raw user input; Schedule is required
// for streams and milestones, Curve is only used by stream previews and Milestone only by escrows.
type ActionItem struct {
	Recipient string            `json:"recipient"`
	Amount    string            `json:"amount"`
	Schedule  *ScheduleSpec     `json:"schedule,omitempty"`
	Curve     *UnlockCurve      `json:"curve,omitempty"`
	Milestone *MilestoneDetails `json:"milestone,omitempty"`
}

// StreamOptions are the per-batch flags of a stream action. The zero value creates cancelable,
// non-transferable streams.
type StreamOptions struct {
	NonCancelable bool `json:"nonCancelable"`
	Transferable  bool `json:"transferable"`
}

// ActionRequest is everything needed to compile one proposal action. It is built fresh for each
// submission attempt.
//
// Treasury is the account that executes the bundle and holds Token.Balance. SenderOrDelegate,
// when set, replaces it as the escrow client or stream sender.
type ActionRequest struct {
	Kind             ActionKind      `json:"kind" validate:"required,oneof=SendTokens MilestoneEscrow TokenStream"`
	ChainSelector    ChainSelector   `json:"chainSelector" validate:"required"`
	Treasury         common.Address  `json:"treasury"`
	Token            TokenDescriptor `json:"token"`
	Items            []ActionItem    `json:"items"`
	SenderOrDelegate *common.Address `json:"senderOrDelegate,omitempty"`
	Escrow           *EscrowDetails  `json:"escrow,omitempty"`
	Stream           StreamOptions   `json:"stream"`
}

// Sender is the account recorded as the owner of escrows and streams.
func (r ActionRequest) Sender() common.Address {
	if r.SenderOrDelegate != nil {
		return *r.SenderOrDelegate
	}

	return r.Treasury
}

// RecipientInputs returns the raw recipient inputs of every item in order.
func (r ActionRequest) RecipientInputs() []string {
	inputs := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		inputs = append(inputs, item.Recipient)
	}

	return inputs
}
