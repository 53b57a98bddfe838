package evm

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// EscrowMilestone is one milestone tuple of deployAndFund. Start and End are Unix seconds.
type EscrowMilestone struct {
	Recipient common.Address
	Amount    *big.Int
	Start     *big.Int
	End       *big.Int
}

// EncodeDeployAndFund encodes deployAndFund(token, client, milestones, metadataURI) on the escrow
// factory. The factory pulls the sum of the milestone amounts from the caller.
func EncodeDeployAndFund(
	factory, token, client common.Address,
	milestones []EscrowMilestone,
	metadataURI string,
) (Call, error) {
	for i, m := range milestones {
		if err := m.checkWidths(); err != nil {
			return Call{}, fmt.Errorf("milestone %d: %w", i, err)
		}
	}

	data, sig, err := escrowFactoryContract().Pack("deployAndFund", token, client, milestones, metadataURI)
	if err != nil {
		return Call{}, err
	}

	return newCall(factory, sig, data, nil), nil
}

func (m EscrowMilestone) checkWidths() error {
	if err := checkUint("amount", m.Amount, uint256Bits); err != nil {
		return err
	}
	if err := checkUint("start", m.Start, uint40Bits); err != nil {
		return err
	}

	return checkUint("end", m.End, uint40Bits)
}
