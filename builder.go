package txbundle

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/txbundle/types"
)

// ActionRequestBuilder is a builder for ActionRequest.
type ActionRequestBuilder struct {
	request types.ActionRequest
}

// NewActionRequestBuilder creates a new ActionRequestBuilder.
func NewActionRequestBuilder() *ActionRequestBuilder {
	return &ActionRequestBuilder{
		request: types.ActionRequest{
			Items: []types.ActionItem{},
		},
	}
}

// SetKind sets the kind of the action.
func (b *ActionRequestBuilder) SetKind(kind types.ActionKind) *ActionRequestBuilder {
	b.request.Kind = kind
	return b
}

// SetChainSelector sets the chain the bundle is compiled for.
func (b *ActionRequestBuilder) SetChainSelector(sel types.ChainSelector) *ActionRequestBuilder {
	b.request.ChainSelector = sel
	return b
}

// SetTreasury sets the account executing the bundle.
func (b *ActionRequestBuilder) SetTreasury(treasury common.Address) *ActionRequestBuilder {
	b.request.Treasury = treasury
	return b
}

// SetToken sets the token descriptor.
func (b *ActionRequestBuilder) SetToken(token types.TokenDescriptor) *ActionRequestBuilder {
	b.request.Token = token
	return b
}

// SetDelegate sets the sender recorded on escrows and streams in place of the treasury.
func (b *ActionRequestBuilder) SetDelegate(delegate common.Address) *ActionRequestBuilder {
	b.request.SenderOrDelegate = &delegate
	return b
}

// SetEscrowDetails sets the title and description of an escrow.
func (b *ActionRequestBuilder) SetEscrowDetails(details types.EscrowDetails) *ActionRequestBuilder {
	b.request.Escrow = &details
	return b
}

// SetStreamOptions sets the flags of created streams.
func (b *ActionRequestBuilder) SetStreamOptions(opts types.StreamOptions) *ActionRequestBuilder {
	b.request.Stream = opts
	return b
}

// AddItem adds an item to the request.
func (b *ActionRequestBuilder) AddItem(item types.ActionItem) *ActionRequestBuilder {
	b.request.Items = append(b.request.Items, item)
	return b
}

// SetItems sets all the items of the request.
func (b *ActionRequestBuilder) SetItems(items []types.ActionItem) *ActionRequestBuilder {
	b.request.Items = items
	return b
}

// Build validates the request level fields and returns the constructed request. Items are
// validated when the request is compiled.
func (b *ActionRequestBuilder) Build() (types.ActionRequest, error) {
	if errs := validateRequestFields(b.request); len(errs) > 0 {
		return types.ActionRequest{}, errs
	}

	return b.request, nil
}
