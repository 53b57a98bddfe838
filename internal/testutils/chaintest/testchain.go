package chaintest

import (
	cselectors "github.com/smartcontractkit/chain-selectors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/txbundle/types"
)

var (
	Chain1RawSelector = cselectors.GETH_TESTNET.Selector       // 3379446385462418246
	Chain1Selector    = types.ChainSelector(Chain1RawSelector) // 3379446385462418246
	Chain1EVMID       = cselectors.GETH_TESTNET.EvmChainID     // 1337

	Chain2RawSelector = cselectors.ETHEREUM_TESTNET_SEPOLIA.Selector   // 16015286601757825753
	Chain2Selector    = types.ChainSelector(Chain2RawSelector)         // 16015286601757825753
	Chain2EVMID       = cselectors.ETHEREUM_TESTNET_SEPOLIA.EvmChainID // 11155111

	Chain3RawSelector = cselectors.ETHEREUM_TESTNET_SEPOLIA_BASE_1.Selector   // 10344971235874465080
	Chain3Selector    = types.ChainSelector(Chain3RawSelector)                // 10344971235874465080
	Chain3EVMID       = cselectors.ETHEREUM_TESTNET_SEPOLIA_BASE_1.EvmChainID // 84532

	// SolanaSelector is a valid selector of a non-EVM chain.
	SolanaSelector = types.ChainSelector(cselectors.SOLANA_DEVNET.Selector)

	// TestInvalidChainSelector is a chain selector that doesn't exist.
	TestInvalidChainSelector = types.ChainSelector(0)
)

// Well known addresses used across tests.
var (
	Treasury      = common.HexToAddress("0x1000000000000000000000000000000000000001")
	Delegate      = common.HexToAddress("0x1000000000000000000000000000000000000002")
	Recipient1    = common.HexToAddress("0x2000000000000000000000000000000000000001")
	Recipient2    = common.HexToAddress("0x2000000000000000000000000000000000000002")
	Recipient3    = common.HexToAddress("0x2000000000000000000000000000000000000003")
	Token         = common.HexToAddress("0x3000000000000000000000000000000000000001")
	WrappedNative = common.HexToAddress("0x4000000000000000000000000000000000000001")
	EscrowFactory = common.HexToAddress("0x5000000000000000000000000000000000000001")
	StreamBatcher = common.HexToAddress("0x6000000000000000000000000000000000000001")
)
