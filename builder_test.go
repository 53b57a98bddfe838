package txbundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/txbundle/internal/testutils/chaintest"
	"github.com/smartcontractkit/txbundle/types"
)

func TestActionRequestBuilder(t *testing.T) {
	t.Parallel()

	item := types.ActionItem{Recipient: "alice.eth", Amount: "10", Schedule: durationSchedule(thirtyDays, 0)}

	tests := []struct {
		name       string
		setup      func(*ActionRequestBuilder)
		want       types.ActionRequest
		wantFields []string
	}{
		{
			name: "valid stream request",
			setup: func(b *ActionRequestBuilder) {
				b.SetKind(types.ActionTokenStream).
					SetChainSelector(chaintest.Chain1Selector).
					SetTreasury(chaintest.Treasury).
					SetToken(usdc()).
					SetDelegate(chaintest.Delegate).
					SetStreamOptions(types.StreamOptions{Transferable: true}).
					AddItem(item)
			},
			want: types.ActionRequest{
				Kind:             types.ActionTokenStream,
				ChainSelector:    chaintest.Chain1Selector,
				Treasury:         chaintest.Treasury,
				Token:            usdc(),
				Items:            []types.ActionItem{item},
				SenderOrDelegate: &chaintest.Delegate,
				Stream:           types.StreamOptions{Transferable: true},
			},
		},
		{
			name: "valid escrow request using SetItems",
			setup: func(b *ActionRequestBuilder) {
				b.SetKind(types.ActionMilestoneEscrow).
					SetChainSelector(chaintest.Chain1Selector).
					SetTreasury(chaintest.Treasury).
					SetToken(usdc()).
					SetEscrowDetails(types.EscrowDetails{Title: "Audit"}).
					SetItems([]types.ActionItem{item})
			},
			want: types.ActionRequest{
				Kind:          types.ActionMilestoneEscrow,
				ChainSelector: chaintest.Chain1Selector,
				Treasury:      chaintest.Treasury,
				Token:         usdc(),
				Items:         []types.ActionItem{item},
				Escrow:        &types.EscrowDetails{Title: "Audit"},
			},
		},
		{
			name: "missing fields",
			setup: func(b *ActionRequestBuilder) {
				b.SetToken(types.TokenDescriptor{IsValid: true})
			},
			wantFields: []string{"Kind", "ChainSelector", "Token.Symbol", "Token.Balance"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewActionRequestBuilder()
			tt.setup(b)

			got, err := b.Build()

			if len(tt.wantFields) > 0 {
				var errs ValidationErrors
				require.ErrorAs(t, err, &errs)

				fields := make([]string, 0, len(errs))
				for _, fe := range errs {
					fields = append(fields, fe.Field)
				}
				assert.Equal(t, tt.wantFields, fields)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
