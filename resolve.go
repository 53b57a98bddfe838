package txbundle

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/smartcontractkit/txbundle/sdk"
	sdkerrors "github.com/smartcontractkit/txbundle/sdk/errors"
)

// ResolveAddresses resolves every distinct input concurrently, running at most parallelism
// lookups at a time (unbounded when parallelism <= 0). It waits for all lookups and never stops
// at the first failure; failures are returned as ResolutionError values keyed by input.
func ResolveAddresses(
	ctx context.Context, resolver sdk.AddressResolver, inputs []string, parallelism int,
) ResolutionResult {
	unique := make([]string, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))
	for _, in := range inputs {
		if _, ok := seen[in]; ok {
			continue
		}
		seen[in] = struct{}{}
		unique = append(unique, in)
	}

	addrs := make([]common.Address, len(unique))
	errs := make([]error, len(unique))

	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	for i, in := range unique {
		g.Go(func() error {
			addrs[i], errs[i] = resolver.ResolveAddress(ctx, in)
			return nil
		})
	}
	_ = g.Wait()

	res := ResolutionResult{
		Addresses: make(map[string]common.Address, len(unique)),
		Errors:    make(map[string]error),
	}
	for i, in := range unique {
		if errs[i] != nil {
			res.Errors[in] = sdkerrors.NewResolutionError(in, errs[i])
			continue
		}
		res.Addresses[in] = addrs[i]
	}

	return res
}
