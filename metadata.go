package txbundle

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/txbundle/amount"
)

// defaultEscrowTitle is used when the request carries no escrow details.
const defaultEscrowTitle = "Milestone escrow"

// MilestoneMetadataDoc is the off-chain description of an escrow referenced by its
// deploy-and-fund call.
type MilestoneMetadataDoc struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	AppURL      string              `json:"appUrl,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	Client      common.Address      `json:"client"`
	Token       MetadataToken       `json:"token"`
	Milestones  []MilestoneMetadata `json:"milestones"`
}

// MetadataToken identifies the escrowed token.
type MetadataToken struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
}

// MilestoneMetadata describes one milestone. Amount is human readable, BaseUnits is exact.
type MilestoneMetadata struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Recipient   common.Address `json:"recipient"`
	Amount      string         `json:"amount"`
	BaseUnits   string         `json:"baseUnits"`
	StartDate   time.Time      `json:"startDate"`
	EndDate     time.Time      `json:"endDate"`
}

// NewMilestoneMetadataDoc builds the metadata document of a validated escrow. appURL and now are
// recorded in the document as given.
func NewMilestoneMetadataDoc(action *ValidatedAction, appURL string, now time.Time) MilestoneMetadataDoc {
	req := action.Request()

	doc := MilestoneMetadataDoc{
		Title:     defaultEscrowTitle,
		AppURL:    appURL,
		CreatedAt: now.UTC(),
		Client:    req.Sender(),
		Token: MetadataToken{
			Address:  req.Token.Address,
			Symbol:   req.Token.Symbol,
			Decimals: req.Token.Decimals,
		},
		Milestones: make([]MilestoneMetadata, 0, len(action.Items())),
	}
	if req.Escrow != nil {
		if req.Escrow.Title != "" {
			doc.Title = req.Escrow.Title
		}
		doc.Description = req.Escrow.Description
	}

	for _, item := range action.Items() {
		m := MilestoneMetadata{
			Recipient: item.Recipient,
			Amount:    amount.Format(item.Amount, req.Token.Decimals),
			BaseUnits: item.Amount.String(),
		}
		if item.Milestone != nil {
			m.Title = item.Milestone.Title
			m.Description = item.Milestone.Description
		}
		if item.Schedule != nil {
			m.StartDate = time.Unix(item.Schedule.StartTime, 0).UTC()
			m.EndDate = time.Unix(item.Schedule.EndTime, 0).UTC()
		}

		doc.Milestones = append(doc.Milestones, m)
	}

	return doc
}
