package chain

import (
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func testComponents() *OrderComponents {
	offerer := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	return &OrderComponents{
		Offerer: offerer,
		Zone:    common.Address{},
		Offer: []OfferItem{{
			ItemType:             ItemTypeERC20,
			Token:                common.HexToAddress("0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"),
			IdentifierOrCriteria: big.NewInt(0),
			StartAmount:          big.NewInt(1000),
			EndAmount:            big.NewInt(1000),
		}},
		Consideration: []ConsiderationItem{{
			ItemType:             ItemTypeERC20,
			Token:                common.HexToAddress("0x07865c6E87B9F70255377e024ace6630C1Eaa37F"),
			IdentifierOrCriteria: big.NewInt(0),
			StartAmount:          big.NewInt(1500),
			EndAmount:            big.NewInt(1500),
			Recipient:            offerer,
		}},
		OrderType:  OrderTypeFullOpen,
		StartTime:  big.NewInt(1700000000),
		EndTime:    big.NewInt(1700086400),
		ZoneHash:   common.Hash{},
		Salt:       big.NewInt(123456789),
		ConduitKey: common.Hash{},
		Counter:    big.NewInt(0),
	}
}

func TestDomainTypeHash(t *testing.T) {
	// Canonical EIP-712 domain typehash
	want := "0x8b73c3c69bb8fe3d512ecc4cf759cc79239f7b179b0ffacaa9a75d522b39400f"
	if got := EIP712DomainTypeHash.Hex(); got != want {
		t.Errorf("domain typehash = %s, want %s", got, want)
	}
}

func TestSigningHashDeterministic(t *testing.T) {
	domain := SeaportDomain(5)

	first := SigningHash(domain, testComponents())
	second := SigningHash(domain, testComponents())

	if first != second {
		t.Errorf("digest not deterministic: %s != %s", first.Hex(), second.Hex())
	}
}

func TestDomainSeparationByChainID(t *testing.T) {
	components := testComponents()

	goerli := SigningHash(SeaportDomain(5), components)
	mainnet := SigningHash(SeaportDomain(1), components)

	if goerli == mainnet {
		t.Error("same digest under different chain ids")
	}
}

func TestDomainSeparationByContract(t *testing.T) {
	components := testComponents()
	domain := SeaportDomain(5)

	other := SeaportDomain(5)
	other.VerifyingContract = common.HexToAddress("0x00000000000000ADc04C56Bf30aC9d3c0aAF14dC")

	if SigningHash(domain, components) == SigningHash(other, components) {
		t.Error("same digest under different verifying contracts")
	}
}

func TestDomainSeparationByVersion(t *testing.T) {
	components := testComponents()
	domain := SeaportDomain(5)

	other := SeaportDomain(5)
	other.Version = "1.4"

	if SigningHash(domain, components) == SigningHash(other, components) {
		t.Error("same digest under different protocol versions")
	}
}

func TestOfferOrderingChangesDigest(t *testing.T) {
	domain := SeaportDomain(5)

	second := OfferItem{
		ItemType:             ItemTypeERC20,
		Token:                common.HexToAddress("0x07865c6E87B9F70255377e024ace6630C1Eaa37F"),
		IdentifierOrCriteria: big.NewInt(0),
		StartAmount:          big.NewInt(1),
		EndAmount:            big.NewInt(1),
	}

	a := testComponents()
	a.Offer = append(a.Offer, second)

	b := testComponents()
	b.Offer = append([]OfferItem{second}, b.Offer...)

	if SigningHash(domain, a) == SigningHash(domain, b) {
		t.Error("reordered offer items produced an equal digest")
	}
}

func TestConsiderationOrderingChangesDigest(t *testing.T) {
	domain := SeaportDomain(5)

	second := ConsiderationItem{
		ItemType:             ItemTypeNative,
		Token:                common.Address{},
		IdentifierOrCriteria: big.NewInt(0),
		StartAmount:          big.NewInt(7),
		EndAmount:            big.NewInt(7),
		Recipient:            common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
	}

	a := testComponents()
	a.Consideration = append(a.Consideration, second)

	b := testComponents()
	b.Consideration = append([]ConsiderationItem{second}, b.Consideration...)

	if SigningHash(domain, a) == SigningHash(domain, b) {
		t.Error("reordered consideration items produced an equal digest")
	}
}

func TestFieldChangeChangesDigest(t *testing.T) {
	domain := SeaportDomain(5)
	base := SigningHash(domain, testComponents())

	changed := testComponents()
	changed.Salt = big.NewInt(987654321)
	if SigningHash(domain, changed) == base {
		t.Error("salt change did not change the digest")
	}

	changed = testComponents()
	changed.Counter = big.NewInt(1)
	if SigningHash(domain, changed) == base {
		t.Error("counter change did not change the digest")
	}

	changed = testComponents()
	changed.Offer[0].StartAmount = big.NewInt(1001)
	if SigningHash(domain, changed) == base {
		t.Error("amount change did not change the digest")
	}
}

func TestEmptyArraysHash(t *testing.T) {
	// An order with no items still hashes; item presence is not a
	// digest-layer concern.
	components := testComponents()
	components.Offer = nil
	components.Consideration = nil

	h := components.Hash()
	if h == (common.Hash{}) {
		t.Error("empty-array struct hash is zero")
	}
}

func TestSigningHashConcurrent(t *testing.T) {
	domain := SeaportDomain(5)
	want := SigningHash(domain, testComponents())

	var wg sync.WaitGroup
	results := make([]common.Hash, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = SigningHash(domain, testComponents())
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Fatalf("concurrent digest %d = %s, want %s", i, got.Hex(), want.Hex())
		}
	}
}

func TestToComponentsPreservesFields(t *testing.T) {
	params := &OrderParameters{
		Offerer:                         common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		Offer:                           testComponents().Offer,
		Consideration:                   testComponents().Consideration,
		OrderType:                       OrderTypePartialOpen,
		StartTime:                       big.NewInt(10),
		EndTime:                         big.NewInt(20),
		Salt:                            big.NewInt(42),
		TotalOriginalConsiderationItems: big.NewInt(1),
	}

	components := params.ToComponents(big.NewInt(3))
	if components.Counter.Cmp(big.NewInt(3)) != 0 {
		t.Errorf("counter = %s, want 3", components.Counter)
	}
	if components.OrderType != OrderTypePartialOpen {
		t.Errorf("order type = %d, want %d", components.OrderType, OrderTypePartialOpen)
	}
	if len(components.Offer) != 1 || len(components.Consideration) != 1 {
		t.Error("item sequences not carried over")
	}

	// nil counter defaults to zero
	if params.ToComponents(nil).Counter.Sign() != 0 {
		t.Error("nil counter did not default to zero")
	}
}
