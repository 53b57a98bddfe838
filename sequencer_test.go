package txbundle

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcontractkit/txbundle/chains"
	"github.com/smartcontractkit/txbundle/internal/testutils/chaintest"
	"github.com/smartcontractkit/txbundle/internal/testutils/evmsim"
	sdkerrors "github.com/smartcontractkit/txbundle/sdk/errors"
	"github.com/smartcontractkit/txbundle/sdk/evm"
	"github.com/smartcontractkit/txbundle/types"
)

func mustValidate(t *testing.T, req types.ActionRequest) *ValidatedAction {
	t.Helper()

	action, err := Validate(req, testResolved(), testNow)
	require.NoError(t, err)

	return action
}

func TestCompile_StepOrder(t *testing.T) {
	t.Parallel()

	send := func(token types.TokenDescriptor) types.ActionRequest {
		return sendRequest(token,
			types.ActionItem{Recipient: chaintest.Recipient1.Hex(), Amount: "1"},
			types.ActionItem{Recipient: chaintest.Recipient2.Hex(), Amount: "2"},
		)
	}
	stream := func(token types.TokenDescriptor) types.ActionRequest {
		return streamRequest(token,
			types.ActionItem{Recipient: chaintest.Recipient1.Hex(), Amount: "1", Schedule: durationSchedule(thirtyDays, 0)},
			types.ActionItem{Recipient: chaintest.Recipient2.Hex(), Amount: "2", Schedule: durationSchedule(thirtyDays, 0)},
		)
	}
	escrow := func(token types.TokenDescriptor) types.ActionRequest {
		return escrowRequest(token,
			milestone(chaintest.Recipient1, "1", "Design"),
			milestone(chaintest.Recipient2, "2", "Build"),
		)
	}

	tests := []struct {
		name string
		give types.ActionRequest
		want []types.StepKind
	}{
		{
			name: "native stream is wrapped and approved",
			give: stream(ether()),
			want: []types.StepKind{types.StepWrap, types.StepApproveZero, types.StepApproveFull, types.StepStream},
		},
		{
			name: "native escrow is wrapped and approved",
			give: escrow(ether()),
			want: []types.StepKind{types.StepWrap, types.StepApproveZero, types.StepApproveFull, types.StepEscrow},
		},
		{
			name: "erc20 stream is approved",
			give: stream(usdc()),
			want: []types.StepKind{types.StepApproveZero, types.StepApproveFull, types.StepStream},
		},
		{
			name: "erc20 escrow is approved",
			give: escrow(usdc()),
			want: []types.StepKind{types.StepApproveZero, types.StepApproveFull, types.StepEscrow},
		},
		{
			name: "erc20 send transfers directly",
			give: send(usdc()),
			want: []types.StepKind{types.StepTransfer, types.StepTransfer},
		},
		{
			name: "native send uses value transfers",
			give: send(ether()),
			want: []types.StepKind{types.StepNativeTransfer, types.StepNativeTransfer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Compile(mustValidate(t, tt.give), testContracts(), "ipfs://cid")
			require.NoError(t, err)

			assert.Equal(t, tt.want, got.StepKinds())
			assert.Equal(t, chaintest.Chain1Selector, got.ChainSelector)
		})
	}
}

func TestCompile_NativeStream(t *testing.T) {
	t.Parallel()

	delegate := chaintest.Delegate
	req := streamRequest(ether(),
		types.ActionItem{Recipient: chaintest.Recipient1.Hex(), Amount: "1.5", Schedule: durationSchedule(thirtyDays, 86_400)},
		types.ActionItem{Recipient: chaintest.Recipient2.Hex(), Amount: "0.5", Schedule: durationSchedule(thirtyDays, 0)},
	)
	req.SenderOrDelegate = &delegate
	req.Stream = types.StreamOptions{NonCancelable: true, Transferable: true}

	got, err := Compile(mustValidate(t, req), testContracts(), "")
	require.NoError(t, err)
	require.Len(t, got.Steps, 4)

	total, _ := new(big.Int).SetString("2000000000000000000", 10)
	assert.Equal(t, total.String(), got.TotalAmount.String())
	assert.Equal(t, "Stream 2 ETH to 2 recipients", got.Summary)

	wrap := got.Steps[0]
	assert.Equal(t, chaintest.WrappedNative, wrap.Target)
	assert.Equal(t, "deposit()", wrap.FunctionSignature)
	assert.Equal(t, total.String(), wrap.Value.String())

	zero, err := evm.EncodeApprove(chaintest.WrappedNative, chaintest.StreamBatcher, big.NewInt(0))
	require.NoError(t, err)
	assert.Equal(t, chaintest.WrappedNative, got.Steps[1].Target)
	assert.Equal(t, zero.Data, []byte(got.Steps[1].Calldata))

	full, err := evm.EncodeApprove(chaintest.WrappedNative, chaintest.StreamBatcher, total)
	require.NoError(t, err)
	assert.Equal(t, full.Data, []byte(got.Steps[2].Calldata))
	assert.Equal(t, 0, got.Steps[2].Value.Sign())

	start := testNow.Unix()
	one, _ := new(big.Int).SetString("1500000000000000000", 10)
	half, _ := new(big.Int).SetString("500000000000000000", 10)
	want, err := evm.EncodeCreateBatch(chaintest.StreamBatcher, chaintest.WrappedNative, []evm.StreamParams{
		{
			Sender:       chaintest.Delegate,
			Recipient:    chaintest.Recipient1,
			Amount:       one,
			Start:        big.NewInt(start),
			Cliff:        big.NewInt(start + 86_400),
			End:          big.NewInt(start + thirtyDays),
			Cancelable:   false,
			Transferable: true,
		},
		{
			Sender:       chaintest.Delegate,
			Recipient:    chaintest.Recipient2,
			Amount:       half,
			Start:        big.NewInt(start),
			Cliff:        big.NewInt(0),
			End:          big.NewInt(start + thirtyDays),
			Cancelable:   false,
			Transferable: true,
		},
	})
	require.NoError(t, err)

	stream := got.Steps[3]
	assert.Equal(t, chaintest.StreamBatcher, stream.Target)
	assert.Equal(t, want.Signature, stream.FunctionSignature)
	assert.Equal(t, want.Data, []byte(stream.Calldata))
}

func TestCompile_Escrow(t *testing.T) {
	t.Parallel()

	req := escrowRequest(usdc(),
		milestone(chaintest.Recipient1, "100", "Design"),
		milestone(chaintest.Recipient2, "250.25", "Build"),
	)

	got, err := Compile(mustValidate(t, req), testContracts(), "ipfs://bafy")
	require.NoError(t, err)
	require.Len(t, got.Steps, 3)

	assert.Equal(t, "350250000", got.TotalAmount.String())
	assert.Equal(t, "Fund escrow with 350.25 USDC across 2 milestones", got.Summary)

	for _, approve := range got.Steps[:2] {
		assert.Equal(t, chaintest.Token, approve.Target)
		assert.Equal(t, "approve(address,uint256)", approve.FunctionSignature)
	}

	start := big.NewInt(testNow.Unix())
	end := big.NewInt(testNow.Unix() + thirtyDays)
	want, err := evm.EncodeDeployAndFund(chaintest.EscrowFactory, chaintest.Token, chaintest.Treasury, []evm.EscrowMilestone{
		{Recipient: chaintest.Recipient1, Amount: big.NewInt(100_000_000), Start: start, End: end},
		{Recipient: chaintest.Recipient2, Amount: big.NewInt(250_250_000), Start: start, End: end},
	}, "ipfs://bafy")
	require.NoError(t, err)

	escrow := got.Steps[2]
	assert.Equal(t, types.StepEscrow, escrow.Kind)
	assert.Equal(t, chaintest.EscrowFactory, escrow.Target)
	assert.Equal(t, want.Data, []byte(escrow.Calldata))
	assert.Equal(t, 0, escrow.Value.Sign())
}

func TestCompile_SendERC20(t *testing.T) {
	t.Parallel()

	req := sendRequest(usdc(),
		types.ActionItem{Recipient: chaintest.Recipient1.Hex(), Amount: "0.000001"},
	)

	got, err := Compile(mustValidate(t, req), chains.Contracts{}, "")
	require.NoError(t, err)
	require.Len(t, got.Steps, 1)

	want, err := evm.EncodeTransfer(chaintest.Token, chaintest.Recipient1, big.NewInt(1))
	require.NoError(t, err)

	assert.Equal(t, chaintest.Token, got.Steps[0].Target)
	assert.Equal(t, want.Data, []byte(got.Steps[0].Calldata))
	assert.Equal(t, "Send 0.000001 USDC to 1 recipient", got.Summary)
}

func TestCompile_TotalIsExactSum(t *testing.T) {
	t.Parallel()

	amounts := []string{"0.1", "0.2", "0.3", "123456789.123456", ".000001", "7"}
	items := make([]types.ActionItem, 0, len(amounts))
	for _, a := range amounts {
		items = append(items, types.ActionItem{Recipient: chaintest.Recipient1.Hex(), Amount: a})
	}

	token := usdc()
	token.Balance = big.NewInt(1_000_000_000_000_000)

	got, err := Compile(mustValidate(t, sendRequest(token, items...)), chains.Contracts{}, "")
	require.NoError(t, err)

	assert.Equal(t, "123456796723457", got.TotalAmount.String())

	sum := new(big.Int)
	for _, step := range got.Steps {
		to, amt, derr := evm.DecodeTransfer(step.Calldata)
		require.NoError(t, derr)
		assert.Equal(t, chaintest.Recipient1, to)
		sum.Add(sum, amt)
	}
	assert.Equal(t, got.TotalAmount.String(), sum.String())
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	req := streamRequest(ether(),
		types.ActionItem{Recipient: chaintest.Recipient1.Hex(), Amount: "1", Schedule: durationSchedule(thirtyDays, 0)},
	)
	action := mustValidate(t, req)

	a, err := Compile(action, testContracts(), "")
	require.NoError(t, err)
	b, err := Compile(action, testContracts(), "")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	stream := streamRequest(ether(),
		types.ActionItem{Recipient: chaintest.Recipient1.Hex(), Amount: "1", Schedule: durationSchedule(thirtyDays, 0)},
	)
	escrow := escrowRequest(usdc(), milestone(chaintest.Recipient1, "1", "Design"))

	t.Run("missing wrapped native", func(t *testing.T) {
		t.Parallel()

		_, err := Compile(mustValidate(t, stream), chains.Contracts{StreamBatcher: chaintest.StreamBatcher}, "")

		var missing *sdkerrors.MissingContractError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, chains.ContractWrappedNative, missing.Contract)
	})

	t.Run("missing escrow factory", func(t *testing.T) {
		t.Parallel()

		_, err := Compile(mustValidate(t, escrow), chains.Contracts{}, "ipfs://cid")

		var missing *sdkerrors.MissingContractError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, chains.ContractEscrowFactory, missing.Contract)
	})

	t.Run("missing metadata reference", func(t *testing.T) {
		t.Parallel()

		got, err := Compile(mustValidate(t, escrow), testContracts(), "")
		require.ErrorIs(t, err, ErrMissingMetadataReference)
		assert.Nil(t, got)
	})
}

func TestCompile_NativeSendOnChain(t *testing.T) {
	t.Parallel()

	sim := evmsim.NewSimulatedChain(t, 1)
	treasury := sim.Signers[0]

	token := ether()
	token.Balance = big.NewInt(evmsim.DefaultBalance)

	req := sendRequest(token,
		types.ActionItem{Recipient: chaintest.Recipient1.Hex(), Amount: "0.1"},
		types.ActionItem{Recipient: chaintest.Recipient2.Hex(), Amount: "0.25"},
	)
	req.Treasury = treasury.Address(t)

	bundle, err := Compile(mustValidate(t, req), chains.Contracts{}, "")
	require.NoError(t, err)

	for _, step := range bundle.Steps {
		sim.Send(t, treasury, step.Target, step.Calldata, step.Value)
	}

	client := sim.Backend.Client()
	got1, err := client.BalanceAt(context.Background(), chaintest.Recipient1, nil)
	require.NoError(t, err)
	got2, err := client.BalanceAt(context.Background(), chaintest.Recipient2, nil)
	require.NoError(t, err)

	assert.Equal(t, "100000000000000000", got1.String())
	assert.Equal(t, "250000000000000000", got2.String())
}
