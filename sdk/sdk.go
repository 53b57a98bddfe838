package sdk

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AddressResolver turns a raw recipient input, either a hex address or a name, into an address.
type AddressResolver interface {
	ResolveAddress(ctx context.Context, input string) (common.Address, error)
}

// MetadataUploader stores an off-chain document and returns a content reference such as
// ipfs://<cid>.
type MetadataUploader interface {
	Upload(ctx context.Context, doc any) (string, error)
}

// BalanceReader reads the balance of holder in token. The zero address and the native token
// placeholder refer to the chain's native currency.
type BalanceReader interface {
	Balance(ctx context.Context, holder, token common.Address) (*big.Int, error)
}
