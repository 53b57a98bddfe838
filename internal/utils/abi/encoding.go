package abi

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract is a parsed contract ABI that packs calls together with their canonical signature.
type Contract struct {
	abi abi.ABI
}

// ParseContract parses a JSON ABI definition.
func ParseContract(abiJSON string) (*Contract, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, err
	}

	return &Contract{abi: parsed}, nil
}

// MustParseContract is ParseContract for ABIs embedded in the binary. Panics if the ABI is
// invalid.
func MustParseContract(abiJSON string) *Contract {
	c, err := ParseContract(abiJSON)
	if err != nil {
		panic(err)
	}

	return c
}

// Pack encodes a call to method and returns its calldata and canonical signature, for example
// "approve(address,uint256)".
func (c *Contract) Pack(method string, args ...any) ([]byte, string, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, "", fmt.Errorf("method %q not found in ABI", method)
	}

	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to pack %s: %w", m.Sig, err)
	}

	return data, m.Sig, nil
}

// Unpack decodes the return data of method.
func (c *Contract) Unpack(method string, data []byte) ([]any, error) {
	return c.abi.Unpack(method, data)
}

// UnpackInput decodes the arguments of calldata produced by Pack for method.
func (c *Contract) UnpackInput(method string, data []byte) ([]any, error) {
	m, ok := c.abi.Methods[method]
	if !ok {
		return nil, fmt.Errorf("method %q not found in ABI", method)
	}
	if len(data) < 4 || !bytes.Equal(data[:4], m.ID) {
		return nil, fmt.Errorf("calldata is not a call to %s", m.Sig)
	}

	return m.Inputs.Unpack(data[4:])
}
