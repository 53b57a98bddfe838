package txbundle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spf13/cobra"

	"github.com/smartcontractkit/txbundle"
	"github.com/smartcontractkit/txbundle/config"
	"github.com/smartcontractkit/txbundle/sdk"
	"github.com/smartcontractkit/txbundle/sdk/evm"
	"github.com/smartcontractkit/txbundle/sdk/ipfs"
	"github.com/smartcontractkit/txbundle/types"
)

func buildCompileCmd(configPath *string) *cobra.Command {
	var (
		requestPath    string
		nowFlag        string
		refreshBalance bool
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile an action request into a transaction bundle",
		Long: `Reads an action request as JSON, resolves and validates it and prints the ordered calls
that carry it out. Escrow metadata is uploaded to the configured IPFS node first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			now, err := parseTime(nowFlag, time.Now())
			if err != nil {
				return err
			}

			req, err := loadRequest(requestPath)
			if err != nil {
				return err
			}

			lggr, err := newLogger(cfg.Log.Level)
			if err != nil {
				return err
			}
			defer lggr.Sync() //nolint:errcheck

			ctx := sdk.WithLogger(cmd.Context(), lggr.Sugar())

			bundler, closeFn, err := newBundler(ctx, cfg, req.ChainSelector, refreshBalance)
			if err != nil {
				return err
			}
			defer closeFn()

			bundle, err := bundler.Build(ctx, req, now)
			if err != nil {
				var verrs txbundle.ValidationErrors
				if errors.As(err, &verrs) {
					for _, fe := range verrs {
						fmt.Fprintln(cmd.ErrOrStderr(), fe.Error())
					}

					return fmt.Errorf("request has %d invalid field(s)", len(verrs))
				}

				return err
			}

			return writeJSON(cmd.OutOrStdout(), bundle)
		},
	}

	cmd.Flags().StringVar(&requestPath, "request", "", "Path to the action request JSON")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Compile as of this RFC 3339 time instead of the current time")
	cmd.Flags().BoolVar(&refreshBalance, "refresh-balance", false, "Read the treasury balance from the chain's RPC before validating")
	_ = cmd.MarkFlagRequired("request")

	return cmd
}

// newBundler wires the bundler collaborators from cfg. The returned func releases the RPC client
// when one was dialed.
func newBundler(
	ctx context.Context, cfg *config.Config, sel types.ChainSelector, refreshBalance bool,
) (*txbundle.Bundler, func(), error) {
	registry, err := cfg.Registry()
	if err != nil {
		return nil, nil, err
	}

	names, err := cfg.NameBook()
	if err != nil {
		return nil, nil, err
	}

	var headers map[string]string
	if cfg.IPFS.AuthHeader != "" {
		headers = map[string]string{"Authorization": cfg.IPFS.AuthHeader}
	}

	opts := []txbundle.BundlerOption{
		txbundle.WithMetadataUploader(ipfs.NewUploader(cfg.IPFS.APIURL, headers)),
		txbundle.WithAppURL(cfg.App.URL),
		txbundle.WithParallelism(cfg.Resolver.Parallelism),
	}

	closeFn := func() {}
	if refreshBalance {
		rpcURL, rerr := cfg.RPCURL(sel)
		if rerr != nil {
			return nil, nil, rerr
		}

		client, derr := ethclient.DialContext(ctx, rpcURL)
		if derr != nil {
			return nil, nil, fmt.Errorf("failed to dial rpc for chain %d: %w", sel, derr)
		}
		opts = append(opts, txbundle.WithBalanceReader(evm.NewBalanceReader(client)))
		closeFn = client.Close
	}

	resolver := evm.NewAddressResolver(evm.StaticNames(names))

	return txbundle.NewBundler(registry, resolver, opts...), closeFn, nil
}
