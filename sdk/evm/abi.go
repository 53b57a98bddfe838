package evm

import (
	"sync"

	abiutils "github.com/smartcontractkit/txbundle/internal/utils/abi"
)

const erc20ABI = `[
	{"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const wrappedNativeABI = `[
	{"type":"function","name":"deposit","stateMutability":"payable","inputs":[],"outputs":[]}
]`

const escrowFactoryABI = `[
	{"type":"function","name":"deployAndFund","stateMutability":"nonpayable","inputs":[
		{"name":"token","type":"address"},
		{"name":"client","type":"address"},
		{"name":"milestones","type":"tuple[]","components":[
			{"name":"recipient","type":"address"},
			{"name":"amount","type":"uint256"},
			{"name":"start","type":"uint40"},
			{"name":"end","type":"uint40"}
		]},
		{"name":"metadataURI","type":"string"}
	],"outputs":[{"name":"escrow","type":"address"}]}
]`

const streamBatcherABI = `[
	{"type":"function","name":"createBatch","stateMutability":"nonpayable","inputs":[
		{"name":"token","type":"address"},
		{"name":"streams","type":"tuple[]","components":[
			{"name":"sender","type":"address"},
			{"name":"recipient","type":"address"},
			{"name":"amount","type":"uint128"},
			{"name":"start","type":"uint40"},
			{"name":"cliff","type":"uint40"},
			{"name":"end","type":"uint40"},
			{"name":"cancelable","type":"bool"},
			{"name":"transferable","type":"bool"}
		]}
	],"outputs":[{"name":"streamIds","type":"uint256[]"}]}
]`

var (
	erc20Contract         = sync.OnceValue(func() *abiutils.Contract { return abiutils.MustParseContract(erc20ABI) })
	wrappedNativeContract = sync.OnceValue(func() *abiutils.Contract { return abiutils.MustParseContract(wrappedNativeABI) })
	escrowFactoryContract = sync.OnceValue(func() *abiutils.Contract { return abiutils.MustParseContract(escrowFactoryABI) })
	streamBatcherContract = sync.OnceValue(func() *abiutils.Contract { return abiutils.MustParseContract(streamBatcherABI) })
)
