package txbundle

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"github.com/smartcontractkit/txbundle/amount"
	"github.com/smartcontractkit/txbundle/schedule"
	"github.com/smartcontractkit/txbundle/types"
)

// StreamAmountBits is the width of a stream's deposit amount on chain.
const StreamAmountBits = 128

// Field names reported in FieldError.
const (
	FieldRecipient = "recipient"
	FieldAmount    = "amount"
	FieldSchedule  = "schedule"
	FieldCurve     = "curve"
	FieldMilestone = "milestone"
	FieldItems     = "items"
	FieldBalance   = "balance"
)

// ResolutionResult partitions the outcome of resolving every recipient input. Both maps are keyed
// by the raw input.
type ResolutionResult struct {
	Addresses map[string]common.Address
	Errors    map[string]error
}

// ValidatedItem is an item whose recipient, amount and schedule have all been checked.
type ValidatedItem struct {
	Index     int
	Recipient common.Address
	Amount    *big.Int
	Schedule  *types.ResolvedSchedule
	Curve     *types.UnlockCurve
	Milestone *types.MilestoneDetails
}

// ValidatedAction is a request that passed validation. It can only be obtained from Validate, so
// holding one means no later stage has to check the request again.
type ValidatedAction struct {
	request types.ActionRequest
	items   []ValidatedItem
	total   *big.Int
}

// Request returns the validated request.
func (a *ValidatedAction) Request() types.ActionRequest { return a.request }

// Items returns the validated items in request order.
func (a *ValidatedAction) Items() []ValidatedItem { return a.items }

// Total returns the exact sum of all item amounts.
func (a *ValidatedAction) Total() *big.Int { return new(big.Int).Set(a.total) }

// Validate checks every item of req against the resolved recipient addresses and returns the
// validated action, or ValidationErrors listing every problem found.
func Validate(req types.ActionRequest, resolved map[string]common.Address, now time.Time) (*ValidatedAction, error) {
	return ValidateResolution(req, ResolutionResult{Addresses: resolved}, now)
}

// ValidateResolution is Validate with the resolution failures of recipients attached as the cause
// of their item's error.
func ValidateResolution(req types.ActionRequest, res ResolutionResult, now time.Time) (*ValidatedAction, error) {
	var errs ValidationErrors

	errs = append(errs, validateRequestFields(req)...)
	if !req.Kind.Valid() {
		// Items cannot be interpreted without a kind.
		return nil, errs
	}

	if len(req.Items) == 0 {
		errs = append(errs, NewRequestError(FieldItems, ErrNoItems))
	}

	items := make([]ValidatedItem, 0, len(req.Items))
	amounts := make([]*big.Int, 0, len(req.Items))
	for i, item := range req.Items {
		vi, ferr := validateItem(req, i, item, res, now)
		if ferr != nil {
			errs = append(errs, ferr)
			continue
		}

		items = append(items, vi)
		amounts = append(amounts, vi.Amount)
	}

	total := amount.Sum(amounts...)
	if req.Token.Balance != nil && total.Cmp(req.Token.Balance) > 0 {
		errs = append(errs, NewRequestError(FieldBalance,
			NewInsufficientBalanceError(total, new(big.Int).Set(req.Token.Balance))))
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &ValidatedAction{
		request: req,
		items:   items,
		total:   total,
	}, nil
}

// validateRequestFields runs the tag validation of the request and its token.
func validateRequestFields(req types.ActionRequest) ValidationErrors {
	var errs ValidationErrors

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return ValidationErrors{NewRequestError("request", err)}
		}

		for _, fe := range verrs {
			field := strings.TrimPrefix(fe.Namespace(), "ActionRequest.")
			errs = append(errs, NewRequestError(field, fmt.Errorf("%w: failed on the '%s' tag", ErrInvalidField, fe.Tag())))
		}
	}

	if !req.Token.IsValid {
		errs = append(errs, NewRequestError("Token.IsValid", ErrInvalidToken))
	}

	return errs
}

// validateItem checks one item and returns the first failing field.
func validateItem(
	req types.ActionRequest, index int, item types.ActionItem, res ResolutionResult, now time.Time,
) (ValidatedItem, *FieldError) {
	label := req.Kind.ItemLabel()
	fail := func(field string, err error) (ValidatedItem, *FieldError) {
		return ValidatedItem{}, NewFieldError(index, label, field, err)
	}

	recipient, err := recipientAddress(item.Recipient, res)
	if err != nil {
		return fail(FieldRecipient, err)
	}

	bits := uint(amount.MaxBits)
	if req.Kind == types.ActionTokenStream {
		bits = StreamAmountBits
	}
	amt, err := amount.NormalizeWithLimit(item.Amount, req.Token.Decimals, bits)
	if err != nil {
		return fail(FieldAmount, err)
	}

	vi := ValidatedItem{
		Index:     index,
		Recipient: recipient,
		Amount:    amt,
	}

	if !req.Kind.RequiresSchedule() {
		return vi, nil
	}

	if item.Schedule == nil {
		return fail(FieldSchedule, ErrMissingSchedule)
	}
	resolved, err := schedule.Resolve(*item.Schedule, now)
	if err != nil {
		return fail(FieldSchedule, err)
	}
	if req.Kind == types.ActionMilestoneEscrow && resolved.HasCliff() {
		return fail(FieldSchedule, ErrEscrowCliff)
	}
	vi.Schedule = &resolved

	switch req.Kind {
	case types.ActionTokenStream:
		curve := types.LinearCurve()
		if item.Curve != nil {
			curve = *item.Curve
		}
		if err := schedule.ValidateCurve(curve); err != nil {
			return fail(FieldCurve, err)
		}
		vi.Curve = &curve

	case types.ActionMilestoneEscrow:
		if item.Milestone == nil {
			return fail(FieldMilestone, ErrMissingMilestone)
		}
		if err := validator.New().Struct(item.Milestone); err != nil {
			return fail(FieldMilestone, fmt.Errorf("%w: %w", ErrInvalidField, err))
		}
		milestone := *item.Milestone
		vi.Milestone = &milestone

	case types.ActionSendTokens:
	}

	return vi, nil
}

func recipientAddress(input string, res ResolutionResult) (common.Address, error) {
	if cause, ok := res.Errors[input]; ok {
		return common.Address{}, fmt.Errorf("%w: %w", ErrUnresolvedRecipient, cause)
	}

	addr, ok := res.Addresses[input]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %q", ErrUnresolvedRecipient, input)
	}
	if addr == (common.Address{}) {
		return common.Address{}, ErrZeroAddress
	}

	return addr, nil
}
