package txbundle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartcontractkit/txbundle/chains"
	"github.com/smartcontractkit/txbundle/sdk"
	"github.com/smartcontractkit/txbundle/types"
)

// ErrNoMetadataUploader is the cause of the upload failure of an escrow built without an uploader.
var ErrNoMetadataUploader = errors.New("no metadata uploader configured")

// Bundler runs the whole compilation of a request: chain lookup, recipient resolution, balance
// refresh, validation, metadata upload and call sequencing.
type Bundler struct {
	registry    *chains.Registry
	resolver    sdk.AddressResolver
	uploader    sdk.MetadataUploader
	balances    sdk.BalanceReader
	appURL      string
	parallelism int
}

// BundlerOption configures optional collaborators of a Bundler.
type BundlerOption func(*Bundler)

// WithMetadataUploader sets the uploader used for escrow metadata.
func WithMetadataUploader(u sdk.MetadataUploader) BundlerOption {
	return func(b *Bundler) { b.uploader = u }
}

// WithBalanceReader makes the bundler replace the request's token balance with the on-chain
// balance of the treasury before validating.
func WithBalanceReader(r sdk.BalanceReader) BundlerOption {
	return func(b *Bundler) { b.balances = r }
}

// WithAppURL sets the application URL recorded in escrow metadata.
func WithAppURL(url string) BundlerOption {
	return func(b *Bundler) { b.appURL = url }
}

// WithParallelism bounds the number of concurrent address lookups.
func WithParallelism(n int) BundlerOption {
	return func(b *Bundler) { b.parallelism = n }
}

// NewBundler creates a Bundler.
func NewBundler(registry *chains.Registry, resolver sdk.AddressResolver, opts ...BundlerOption) *Bundler {
	b := &Bundler{
		registry: registry,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Build compiles req into a transaction bundle. Validation failures are returned as
// ValidationErrors; any collaborator failure aborts the build and no bundle is returned.
func (b *Bundler) Build(ctx context.Context, req types.ActionRequest, now time.Time) (*types.TransactionBundle, error) {
	lggr := sdk.LoggerFrom(ctx)

	contracts, err := b.registry.Lookup(req.ChainSelector)
	if err != nil {
		return nil, err
	}
	if req.Kind.Valid() {
		if err = contracts.Require(req.ChainSelector, req.Kind, req.Token.IsNative()); err != nil {
			return nil, err
		}
	}

	res := ResolveAddresses(ctx, b.resolver, req.RecipientInputs(), b.parallelism)
	lggr.Debugf("resolved %d recipients, %d failed", len(res.Addresses), len(res.Errors))

	if b.balances != nil {
		balance, berr := b.balances.Balance(ctx, req.Treasury, req.Token.Address)
		if berr != nil {
			return nil, fmt.Errorf("failed to read treasury balance: %w", berr)
		}
		req.Token = req.Token.WithBalance(balance)
	}

	action, err := ValidateResolution(req, res, now)
	if err != nil {
		lggr.Warnf("request validation failed: %v", err)
		return nil, err
	}

	var metadataRef string
	if req.Kind == types.ActionMilestoneEscrow {
		metadataRef, err = b.uploadMetadata(ctx, action, now)
		if err != nil {
			return nil, err
		}
		lggr.Infof("uploaded escrow metadata to %s", metadataRef)
	}

	bundle, err := Compile(action, contracts, metadataRef)
	if err != nil {
		return nil, err
	}

	lggr.Infof("compiled %s bundle for chain %d with %d steps: %s",
		req.Kind, req.ChainSelector, len(bundle.Steps), bundle.Summary)

	return bundle, nil
}

func (b *Bundler) uploadMetadata(ctx context.Context, action *ValidatedAction, now time.Time) (string, error) {
	if b.uploader == nil {
		return "", NewMetadataUploadError(ErrNoMetadataUploader)
	}

	ref, err := b.uploader.Upload(ctx, NewMilestoneMetadataDoc(action, b.appURL, now))
	if err != nil {
		return "", NewMetadataUploadError(err)
	}
	if ref == "" {
		return "", NewMetadataUploadError(ErrMissingMetadataReference)
	}

	return ref, nil
}
