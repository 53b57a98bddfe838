package evm

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// StreamParams is one stream tuple of createBatch. Start, Cliff and End are Unix seconds; a zero
// Cliff means the stream has none.
type StreamParams struct {
	Sender       common.Address
	Recipient    common.Address
	Amount       *big.Int
	Start        *big.Int
	Cliff        *big.Int
	End          *big.Int
	Cancelable   bool
	Transferable bool
}

// EncodeCreateBatch encodes createBatch(token, streams) on the stream batcher.
func EncodeCreateBatch(batcher, token common.Address, streams []StreamParams) (Call, error) {
	for i, p := range streams {
		if err := p.checkWidths(); err != nil {
			return Call{}, fmt.Errorf("stream %d: %w", i, err)
		}
	}

	data, sig, err := streamBatcherContract().Pack("createBatch", token, streams)
	if err != nil {
		return Call{}, err
	}

	return newCall(batcher, sig, data, nil), nil
}

func (p StreamParams) checkWidths() error {
	if err := checkUint("amount", p.Amount, uint128Bits); err != nil {
		return err
	}
	if err := checkUint("start", p.Start, uint40Bits); err != nil {
		return err
	}
	if err := checkUint("cliff", p.Cliff, uint40Bits); err != nil {
		return err
	}

	return checkUint("end", p.End, uint40Bits)
}
