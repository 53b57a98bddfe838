// package evmsim implements a simulated EVM chain for testing purposes.
package evmsim

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	gethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/require"
)

const (
	// DefaultGasLimit is the default gas limit for each block in the simulated chain
	DefaultGasLimit = uint64(8000000)

	// DefaultBalance is the default balance for each account in the simulated chain
	DefaultBalance = 1e18

	// SimulatedChainID is the chain ID used for the simulated chain. EVM Simulated chains always use 1337
	//
	// https://pkg.go.dev/github.com/ethereum/go-ethereum/ethclient/simulated#NewBackend
	SimulatedChainID = 1337
)

// SimulatedChain represents a simulated chain with a backend and a list of funded signers.
type SimulatedChain struct {
	Backend *simulated.Backend
	Signers []*Signer
}

// Signer represents a signer with a private key.
type Signer struct {
	PrivateKey *ecdsa.PrivateKey
}

// Address extracts the address from the signer's private key.
func (s *Signer) Address(t *testing.T) common.Address {
	t.Helper()

	publicKeyECDSA, ok := s.PrivateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		t.Fatal("error casting public key from crypto to ecdsa")
	}

	return crypto.PubkeyToAddress(*publicKeyECDSA)
}

// NewSimulatedChain creates a new simulated chain with the given number of signers.
func NewSimulatedChain(t *testing.T, numSigners uint64) SimulatedChain {
	t.Helper()

	signers := make([]*Signer, 0, numSigners)
	for range numSigners {
		key, err := crypto.GenerateKey()
		require.NoError(t, err)

		signers = append(signers, &Signer{PrivateKey: key})
	}

	genesisAlloc := gethTypes.GenesisAlloc{}
	for _, s := range signers {
		genesisAlloc[s.Address(t)] = gethTypes.Account{
			Balance: big.NewInt(DefaultBalance),
		}
	}

	sim := simulated.NewBackend(genesisAlloc,
		simulated.WithBlockGasLimit(DefaultGasLimit),
	)
	t.Cleanup(func() { _ = sim.Close() })

	return SimulatedChain{
		Backend: sim,
		Signers: signers,
	}
}

// Send signs a call from signer to target, submits it and mines a block. It fails the test if the
// transaction reverts.
func (s *SimulatedChain) Send(
	t *testing.T, signer *Signer, target common.Address, data []byte, value *big.Int,
) *gethTypes.Receipt {
	t.Helper()

	ctx := context.Background()
	client := s.Backend.Client()
	from := signer.Address(t)

	nonce, err := client.PendingNonceAt(ctx, from)
	require.NoError(t, err)

	gasPrice, err := client.SuggestGasPrice(ctx)
	require.NoError(t, err)

	gas, err := client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &target,
		Value: value,
		Data:  data,
	})
	require.NoError(t, err)

	tx := gethTypes.NewTx(&gethTypes.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gas,
		To:       &target,
		Value:    value,
		Data:     data,
	})

	signed, err := gethTypes.SignTx(tx, gethTypes.LatestSignerForChainID(big.NewInt(SimulatedChainID)), signer.PrivateKey)
	require.NoError(t, err)

	require.NoError(t, client.SendTransaction(ctx, signed))
	s.Backend.Commit()

	receipt, err := client.TransactionReceipt(ctx, signed.Hash())
	require.NoError(t, err)
	require.Equal(t, gethTypes.ReceiptStatusSuccessful, receipt.Status)

	return receipt
}
