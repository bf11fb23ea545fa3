package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Seaport signing domain constants
const (
	SeaportName    = "Seaport"
	SeaportVersion = "1.1"
)

// SeaportAddress is the verifying contract the digest is bound to
var SeaportAddress = common.HexToAddress("0x00000000006c3852cbEf3e08E8dF289169EdE581")

// Canonical type strings. Referenced struct types are appended to the
// order type string in alphabetical order, as the verifying contract
// composes them.
const (
	eip712DomainTypeString = "EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"

	offerItemTypeString = "OfferItem(uint8 itemType,address token,uint256 identifierOrCriteria,uint256 startAmount,uint256 endAmount)"

	considerationItemTypeString = "ConsiderationItem(uint8 itemType,address token,uint256 identifierOrCriteria,uint256 startAmount,uint256 endAmount,address recipient)"

	orderComponentsPartialTypeString = "OrderComponents(address offerer,address zone,OfferItem[] offer,ConsiderationItem[] consideration,uint8 orderType,uint256 startTime,uint256 endTime,bytes32 zoneHash,uint256 salt,bytes32 conduitKey,uint256 counter)"
)

// Pre-computed type hashes using keccak256
var (
	EIP712DomainTypeHash = crypto.Keccak256Hash([]byte(eip712DomainTypeString))

	OfferItemTypeHash = crypto.Keccak256Hash([]byte(offerItemTypeString))

	ConsiderationItemTypeHash = crypto.Keccak256Hash([]byte(considerationItemTypeString))

	OrderComponentsTypeHash = crypto.Keccak256Hash([]byte(
		orderComponentsPartialTypeString + considerationItemTypeString + offerItemTypeString,
	))
)

// Domain represents the EIP712 domain the order digest is bound to.
// Two structurally equal orders hashed under two different domains
// produce different digests; that separation is the whole point.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
}

// SeaportDomain returns the signing domain for the given chain id
func SeaportDomain(chainID uint64) *Domain {
	return &Domain{
		Name:              SeaportName,
		Version:           SeaportVersion,
		ChainID:           new(big.Int).SetUint64(chainID),
		VerifyingContract: SeaportAddress,
	}
}

// Hash computes the EIP712 domain separator hash
func (d *Domain) Hash() common.Hash {
	nameHash := crypto.Keccak256Hash([]byte(d.Name))
	versionHash := crypto.Keccak256Hash([]byte(d.Version))

	bytes32Type, _ := abi.NewType("bytes32", "", nil)
	uint256Type, _ := abi.NewType("uint256", "", nil)
	addressType, _ := abi.NewType("address", "", nil)

	arguments := abi.Arguments{
		{Type: bytes32Type}, // typeHash
		{Type: bytes32Type}, // nameHash
		{Type: bytes32Type}, // versionHash
		{Type: uint256Type}, // chainId
		{Type: addressType}, // verifyingContract
	}

	encoded, err := arguments.Pack(
		EIP712DomainTypeHash,
		nameHash,
		versionHash,
		d.ChainID,
		d.VerifyingContract,
	)
	if err != nil {
		panic("failed to encode domain separator: " + err.Error())
	}

	return crypto.Keccak256Hash(encoded)
}

// Hash computes the struct hash for a single offer item
func (i *OfferItem) Hash() common.Hash {
	bytes32Type, _ := abi.NewType("bytes32", "", nil)
	uint8Type, _ := abi.NewType("uint8", "", nil)
	addressType, _ := abi.NewType("address", "", nil)
	uint256Type, _ := abi.NewType("uint256", "", nil)

	arguments := abi.Arguments{
		{Type: bytes32Type}, // typeHash
		{Type: uint8Type},   // itemType
		{Type: addressType}, // token
		{Type: uint256Type}, // identifierOrCriteria
		{Type: uint256Type}, // startAmount
		{Type: uint256Type}, // endAmount
	}

	encoded, err := arguments.Pack(
		OfferItemTypeHash,
		uint8(i.ItemType),
		i.Token,
		i.IdentifierOrCriteria,
		i.StartAmount,
		i.EndAmount,
	)
	if err != nil {
		panic("failed to encode offer item: " + err.Error())
	}

	return crypto.Keccak256Hash(encoded)
}

// Hash computes the struct hash for a single consideration item
func (i *ConsiderationItem) Hash() common.Hash {
	bytes32Type, _ := abi.NewType("bytes32", "", nil)
	uint8Type, _ := abi.NewType("uint8", "", nil)
	addressType, _ := abi.NewType("address", "", nil)
	uint256Type, _ := abi.NewType("uint256", "", nil)

	arguments := abi.Arguments{
		{Type: bytes32Type}, // typeHash
		{Type: uint8Type},   // itemType
		{Type: addressType}, // token
		{Type: uint256Type}, // identifierOrCriteria
		{Type: uint256Type}, // startAmount
		{Type: uint256Type}, // endAmount
		{Type: addressType}, // recipient
	}

	encoded, err := arguments.Pack(
		ConsiderationItemTypeHash,
		uint8(i.ItemType),
		i.Token,
		i.IdentifierOrCriteria,
		i.StartAmount,
		i.EndAmount,
		i.Recipient,
	)
	if err != nil {
		panic("failed to encode consideration item: " + err.Error())
	}

	return crypto.Keccak256Hash(encoded)
}

// hashOfferItems encodes a dynamic array as the hash of the
// concatenation of its elements' struct hashes, preserving order.
func hashOfferItems(items []OfferItem) common.Hash {
	encoded := make([]byte, 0, len(items)*common.HashLength)
	for i := range items {
		h := items[i].Hash()
		encoded = append(encoded, h.Bytes()...)
	}
	return crypto.Keccak256Hash(encoded)
}

func hashConsiderationItems(items []ConsiderationItem) common.Hash {
	encoded := make([]byte, 0, len(items)*common.HashLength)
	for i := range items {
		h := items[i].Hash()
		encoded = append(encoded, h.Bytes()...)
	}
	return crypto.Keccak256Hash(encoded)
}

// Hash computes the struct hash for the order components
func (c *OrderComponents) Hash() common.Hash {
	offerHash := hashOfferItems(c.Offer)
	considerationHash := hashConsiderationItems(c.Consideration)

	bytes32Type, _ := abi.NewType("bytes32", "", nil)
	addressType, _ := abi.NewType("address", "", nil)
	uint8Type, _ := abi.NewType("uint8", "", nil)
	uint256Type, _ := abi.NewType("uint256", "", nil)

	arguments := abi.Arguments{
		{Type: bytes32Type}, // typeHash
		{Type: addressType}, // offerer
		{Type: addressType}, // zone
		{Type: bytes32Type}, // hash of offer array
		{Type: bytes32Type}, // hash of consideration array
		{Type: uint8Type},   // orderType
		{Type: uint256Type}, // startTime
		{Type: uint256Type}, // endTime
		{Type: bytes32Type}, // zoneHash
		{Type: uint256Type}, // salt
		{Type: bytes32Type}, // conduitKey
		{Type: uint256Type}, // counter
	}

	encoded, err := arguments.Pack(
		OrderComponentsTypeHash,
		c.Offerer,
		c.Zone,
		offerHash,
		considerationHash,
		uint8(c.OrderType),
		c.StartTime,
		c.EndTime,
		c.ZoneHash,
		c.Salt,
		c.ConduitKey,
		c.Counter,
	)
	if err != nil {
		panic("failed to encode order components: " + err.Error())
	}

	return crypto.Keccak256Hash(encoded)
}

// SigningHash creates the final EIP712 hash to be signed
// This follows the EIP712 specification: keccak256("\x19\x01" ++ domainSeparator ++ structHash)
func SigningHash(domain *Domain, components *OrderComponents) common.Hash {
	domainSeparator := domain.Hash()
	structHash := components.Hash()

	prefix := []byte{0x19, 0x01}

	data := make([]byte, 0, 2+32+32)
	data = append(data, prefix...)
	data = append(data, domainSeparator.Bytes()...)
	data = append(data, structHash.Bytes()...)

	return crypto.Keccak256Hash(data)
}
