package evm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/txbundle/sdk"
)

var (
	// ErrEmptyInput is returned for a blank recipient.
	ErrEmptyInput = errors.New("empty address input")

	// ErrInvalidAddress is returned for input that looks like a hex address but is not one.
	ErrInvalidAddress = errors.New("invalid hex address")

	// ErrChecksumMismatch is returned for mixed case hex input whose EIP-55 checksum is wrong.
	ErrChecksumMismatch = errors.New("address checksum mismatch")

	// ErrNameLookupUnavailable is returned for a name when no NameLookup is configured.
	ErrNameLookupUnavailable = errors.New("name resolution is not configured")

	// ErrNameNotFound is returned when a name has no address record.
	ErrNameNotFound = errors.New("name not found")
)

// NameLookup resolves human readable names, such as ENS names, to addresses.
type NameLookup interface {
	LookupName(ctx context.Context, name string) (common.Address, error)
}

var _ sdk.AddressResolver = (*AddressResolver)(nil)

// AddressResolver resolves hex addresses locally and delegates everything else to a NameLookup.
type AddressResolver struct {
	names NameLookup
}

// NewAddressResolver creates a resolver. names may be nil, in which case only hex input resolves.
func NewAddressResolver(names NameLookup) *AddressResolver {
	return &AddressResolver{names: names}
}

func (r *AddressResolver) ResolveAddress(ctx context.Context, input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return common.Address{}, ErrEmptyInput
	}

	if has0xPrefix(input) {
		return parseHexAddress(input)
	}

	if r.names == nil {
		return common.Address{}, ErrNameLookupUnavailable
	}

	addr, err := r.names.LookupName(ctx, input)
	if err != nil {
		return common.Address{}, err
	}
	if addr == (common.Address{}) {
		return common.Address{}, ErrNameNotFound
	}

	return addr, nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// parseHexAddress accepts all lower or all upper case hex as is and verifies the EIP-55
// checksum of mixed case input.
func parseHexAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, s)
	}

	addr := common.HexToAddress(s)
	body := s[2:]
	if body != strings.ToLower(body) && body != strings.ToUpper(body) && addr.Hex() != "0x"+body {
		return common.Address{}, fmt.Errorf("%w: %s", ErrChecksumMismatch, s)
	}

	return addr, nil
}

// StaticNames is a NameLookup over a fixed name book.
type StaticNames map[string]common.Address

func (n StaticNames) LookupName(_ context.Context, name string) (common.Address, error) {
	addr, ok := n[strings.ToLower(name)]
	if !ok {
		return common.Address{}, fmt.Errorf("%w: %s", ErrNameNotFound, name)
	}

	return addr, nil
}
