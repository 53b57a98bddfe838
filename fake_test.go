package txbundle

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/txbundle/chains"
	"github.com/smartcontractkit/txbundle/internal/testutils/chaintest"
	"github.com/smartcontractkit/txbundle/types"
)

// testNow is the fixed clock of the tests: 2023-11-14T22:13:20Z.
var testNow = time.Unix(1_700_000_000, 0)

// thirtyDays is the length of the default test schedule.
const thirtyDays = int64(2_592_000)

// usdc returns a 6 decimals token holding 1000 units.
func usdc() types.TokenDescriptor {
	return types.TokenDescriptor{
		Address:  chaintest.Token,
		Decimals: 6,
		Symbol:   "USDC",
		Name:     "USD Coin",
		Balance:  big.NewInt(1_000_000_000),
		IsValid:  true,
	}
}

// ether returns the native currency holding 10 units.
func ether() types.TokenDescriptor {
	balance, _ := new(big.Int).SetString("10000000000000000000", 10)

	return types.TokenDescriptor{
		Address:  types.NativeTokenAddress,
		Decimals: 18,
		Symbol:   "ETH",
		Name:     "Ether",
		Balance:  balance,
		IsValid:  true,
	}
}

func durationSchedule(seconds, cliff int64) *types.ScheduleSpec {
	return &types.ScheduleSpec{
		Mode:     types.ScheduleModeDuration,
		Duration: types.SecondsDuration(seconds),
		Cliff:    types.SecondsDuration(cliff),
	}
}

// testResolved maps the raw inputs used across tests to their addresses.
func testResolved() map[string]common.Address {
	return map[string]common.Address{
		chaintest.Recipient1.Hex(): chaintest.Recipient1,
		chaintest.Recipient2.Hex(): chaintest.Recipient2,
		chaintest.Recipient3.Hex(): chaintest.Recipient3,
		"alice.eth":                chaintest.Recipient1,
	}
}

func sendRequest(token types.TokenDescriptor, items ...types.ActionItem) types.ActionRequest {
	return types.ActionRequest{
		Kind:          types.ActionSendTokens,
		ChainSelector: chaintest.Chain1Selector,
		Treasury:      chaintest.Treasury,
		Token:         token,
		Items:         items,
	}
}

func streamRequest(token types.TokenDescriptor, items ...types.ActionItem) types.ActionRequest {
	req := sendRequest(token, items...)
	req.Kind = types.ActionTokenStream

	return req
}

func escrowRequest(token types.TokenDescriptor, items ...types.ActionItem) types.ActionRequest {
	req := sendRequest(token, items...)
	req.Kind = types.ActionMilestoneEscrow
	req.Escrow = &types.EscrowDetails{Title: "Website rebuild", Description: "Three phase delivery"}

	return req
}

func milestone(recipient common.Address, amt, title string) types.ActionItem {
	return types.ActionItem{
		Recipient: recipient.Hex(),
		Amount:    amt,
		Schedule:  durationSchedule(thirtyDays, 0),
		Milestone: &types.MilestoneDetails{Title: title},
	}
}

func testContracts() chains.Contracts {
	return chains.Contracts{
		WrappedNative: chaintest.WrappedNative,
		EscrowFactory: chaintest.EscrowFactory,
		StreamBatcher: chaintest.StreamBatcher,
	}
}

// fakeResolver resolves from a fixed map and records the peak number of concurrent lookups.
type fakeResolver struct {
	addrs map[string]common.Address
	delay time.Duration

	mu       sync.Mutex
	calls    map[string]int
	inFlight atomic.Int32
	peak     atomic.Int32
}

func newFakeResolver(addrs map[string]common.Address) *fakeResolver {
	return &fakeResolver{addrs: addrs, calls: map[string]int{}}
}

func (r *fakeResolver) ResolveAddress(_ context.Context, input string) (common.Address, error) {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}

	r.mu.Lock()
	r.calls[input]++
	r.mu.Unlock()

	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	addr, ok := r.addrs[input]
	if !ok {
		return common.Address{}, errNotFound(input)
	}

	return addr, nil
}

func (r *fakeResolver) totalCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.calls {
		n += c
	}

	return n
}

type errNotFound string

func (e errNotFound) Error() string { return "no address for " + strings.TrimSpace(string(e)) }

// fakeUploader records the uploaded document and returns the configured reference and error.
type fakeUploader struct {
	ref string
	err error

	got any
}

func (u *fakeUploader) Upload(_ context.Context, doc any) (string, error) {
	u.got = doc
	return u.ref, u.err
}

// fakeBalanceReader returns a fixed balance.
type fakeBalanceReader struct {
	balance *big.Int
	err     error

	gotHolder common.Address
	gotToken  common.Address
}

func (r *fakeBalanceReader) Balance(_ context.Context, holder, token common.Address) (*big.Int, error) {
	r.gotHolder, r.gotToken = holder, token
	return r.balance, r.err
}
