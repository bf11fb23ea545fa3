package chain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ItemType represents the kind of asset referenced by an order item
type ItemType uint8

const (
	ItemTypeNative ItemType = iota
	ItemTypeERC20
	ItemTypeERC721
	ItemTypeERC1155
	ItemTypeERC721WithCriteria
	ItemTypeERC1155WithCriteria
)

// OrderType represents the fulfillment constraints of an order
type OrderType uint8

const (
	OrderTypeFullOpen OrderType = iota
	OrderTypePartialOpen
	OrderTypeFullRestricted
	OrderTypePartialRestricted
	OrderTypeContract
)

// BasicOrderType represents the route taken by a basic order fulfillment
type BasicOrderType uint8

const (
	BasicOrderTypeEthToERC721FullOpen BasicOrderType = iota
	BasicOrderTypeEthToERC721PartialOpen
	BasicOrderTypeEthToERC721FullRestricted
	BasicOrderTypeEthToERC721PartialRestricted
	BasicOrderTypeEthToERC1155FullOpen
	BasicOrderTypeEthToERC1155PartialOpen
	BasicOrderTypeEthToERC1155FullRestricted
	BasicOrderTypeEthToERC1155PartialRestricted
	BasicOrderTypeERC20ToERC721FullOpen
	BasicOrderTypeERC20ToERC721PartialOpen
	BasicOrderTypeERC20ToERC721FullRestricted
	BasicOrderTypeERC20ToERC721PartialRestricted
	BasicOrderTypeERC20ToERC1155FullOpen
	BasicOrderTypeERC20ToERC1155PartialOpen
	BasicOrderTypeERC20ToERC1155FullRestricted
	BasicOrderTypeERC20ToERC1155PartialRestricted
	BasicOrderTypeERC721ToERC20FullOpen
	BasicOrderTypeERC721ToERC20PartialOpen
	BasicOrderTypeERC721ToERC20FullRestricted
	BasicOrderTypeERC721ToERC20PartialRestricted
	BasicOrderTypeERC1155ToERC20FullOpen
	BasicOrderTypeERC1155ToERC20PartialOpen
	BasicOrderTypeERC1155ToERC20FullRestricted
	BasicOrderTypeERC1155ToERC20PartialRestricted
)

// OfferItem represents a single item offered by the offerer. StartAmount
// and EndAmount are the two ends of the amount decay over the order's
// active window; equal values mean a fixed amount.
type OfferItem struct {
	ItemType             ItemType
	Token                common.Address
	IdentifierOrCriteria *big.Int
	StartAmount          *big.Int
	EndAmount            *big.Int
}

// ConsiderationItem represents a single item required in exchange,
// payable to Recipient.
type ConsiderationItem struct {
	ItemType             ItemType
	Token                common.Address
	IdentifierOrCriteria *big.Int
	StartAmount          *big.Int
	EndAmount            *big.Int
	Recipient            common.Address
}

// SpentItem represents an item with its amount resolved, as spent
type SpentItem struct {
	ItemType   ItemType
	Token      common.Address
	Identifier *big.Int
	Amount     *big.Int
}

// ReceivedItem represents a resolved item together with its recipient
type ReceivedItem struct {
	ItemType   ItemType
	Token      common.Address
	Identifier *big.Int
	Amount     *big.Int
	Recipient  common.Address
}

// AdditionalRecipient represents an extra consideration recipient on a
// basic order
type AdditionalRecipient struct {
	Amount    *big.Int
	Recipient common.Address
}

// OrderStatus mirrors the on-chain validation state of an order
type OrderStatus struct {
	IsValidated bool
	IsCancelled bool
	TotalFilled *big.Int
	TotalSize   *big.Int
}

// OrderComponents is the canonical, hash-stable form of an order. The
// ordering of Offer and Consideration is significant: it participates in
// the typed-data digest and must be preserved exactly as constructed.
type OrderComponents struct {
	Offerer       common.Address
	Zone          common.Address
	Offer         []OfferItem
	Consideration []ConsiderationItem
	OrderType     OrderType
	StartTime     *big.Int
	EndTime       *big.Int
	ZoneHash      common.Hash
	Salt          *big.Int
	ConduitKey    common.Hash
	Counter       *big.Int
}

// OrderParameters is the wire form of an order, carrying the original
// consideration item count instead of the offerer's replay counter.
type OrderParameters struct {
	Offerer                         common.Address
	Zone                            common.Address
	Offer                           []OfferItem
	Consideration                   []ConsiderationItem
	OrderType                       OrderType
	StartTime                       *big.Int
	EndTime                         *big.Int
	ZoneHash                        common.Hash
	Salt                            *big.Int
	ConduitKey                      common.Hash
	TotalOriginalConsiderationItems *big.Int
}

// ToComponents converts the parameters to their canonical hash form
// under the offerer's current replay counter.
func (p *OrderParameters) ToComponents(counter *big.Int) *OrderComponents {
	if counter == nil {
		counter = big.NewInt(0)
	}
	return &OrderComponents{
		Offerer:       p.Offerer,
		Zone:          p.Zone,
		Offer:         p.Offer,
		Consideration: p.Consideration,
		OrderType:     p.OrderType,
		StartTime:     p.StartTime,
		EndTime:       p.EndTime,
		ZoneHash:      p.ZoneHash,
		Salt:          p.Salt,
		ConduitKey:    p.ConduitKey,
		Counter:       counter,
	}
}

// Order pairs parameters with the offerer's signature over their digest
type Order struct {
	Parameters *OrderParameters
	Signature  string
}

// Seaport ABI JSON for the read-only calls the client needs
const seaportABIJSON = `[
	{
		"constant": true,
		"inputs": [
			{"name": "offerer", "type": "address"}
		],
		"name": "getCounter",
		"outputs": [{"name": "counter", "type": "uint256"}],
		"type": "function"
	},
	{
		"constant": true,
		"inputs": [
			{"name": "orderHash", "type": "bytes32"}
		],
		"name": "getOrderStatus",
		"outputs": [
			{"name": "isValidated", "type": "bool"},
			{"name": "isCancelled", "type": "bool"},
			{"name": "totalFilled", "type": "uint256"},
			{"name": "totalSize", "type": "uint256"}
		],
		"type": "function"
	}
]`

// GetSeaportABI returns the parsed Seaport ABI fragment
func GetSeaportABI() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(seaportABIJSON))
	if err != nil {
		panic("failed to parse Seaport ABI: " + err.Error())
	}
	return parsed
}
