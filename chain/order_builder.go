package chain

import (
	"errors"
	"math/big"
	"math/rand"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Order building errors
var (
	ErrMissingOffer         = errors.New("order must have at least one offer item")
	ErrMissingConsideration = errors.New("order must have at least one consideration item")
	ErrInvalidAmount        = errors.New("item amounts must be non-negative")
	ErrInvalidTimeWindow    = errors.New("end time must not precede start time")
)

// DefaultOrderDuration is how long a built order stays active when no
// end time is given.
const DefaultOrderDuration = 24 * time.Hour

// OrderData represents the data for building an order
type OrderData struct {
	Offer         []OfferItem
	Consideration []ConsiderationItem
	Zone          common.Address
	ZoneHash      common.Hash
	ConduitKey    common.Hash
	OrderType     OrderType
	StartTime     *big.Int
	EndTime       *big.Int
	Salt          *big.Int
}

// LimitOrderData represents the inputs for a plain ERC20-for-ERC20
// limit order: sell InputAmount of InputToken for OutputAmount of
// OutputToken, proceeds back to the offerer.
type LimitOrderData struct {
	InputToken   common.Address
	InputAmount  *big.Int
	OutputToken  common.Address
	OutputAmount *big.Int
}

// OrderBuilder builds order parameters on behalf of one offerer
type OrderBuilder struct {
	offerer common.Address
}

// NewOrderBuilder creates a new OrderBuilder
func NewOrderBuilder(offerer common.Address) *OrderBuilder {
	return &OrderBuilder{offerer: offerer}
}

// BuildOrder builds order parameters from OrderData. Item ordering is
// kept exactly as given; it feeds the typed-data digest.
func (ob *OrderBuilder) BuildOrder(data *OrderData) (*OrderParameters, error) {
	if err := ob.validateInputs(data); err != nil {
		return nil, err
	}

	startTime := data.StartTime
	if startTime == nil {
		startTime = big.NewInt(time.Now().Unix())
	}
	endTime := data.EndTime
	if endTime == nil {
		endTime = new(big.Int).Add(startTime, big.NewInt(int64(DefaultOrderDuration/time.Second)))
	}
	if endTime.Cmp(startTime) < 0 {
		return nil, ErrInvalidTimeWindow
	}

	salt := data.Salt
	if salt == nil {
		salt = ob.generateSalt()
	}

	return &OrderParameters{
		Offerer:                         ob.offerer,
		Zone:                            data.Zone,
		Offer:                           data.Offer,
		Consideration:                   data.Consideration,
		OrderType:                       data.OrderType,
		StartTime:                       startTime,
		EndTime:                         endTime,
		ZoneHash:                        data.ZoneHash,
		Salt:                            salt,
		ConduitKey:                      data.ConduitKey,
		TotalOriginalConsiderationItems: big.NewInt(int64(len(data.Consideration))),
	}, nil
}

// BuildLimitOrder builds a full-open ERC20-for-ERC20 limit order
func (ob *OrderBuilder) BuildLimitOrder(data *LimitOrderData) (*OrderParameters, error) {
	return ob.BuildOrder(&OrderData{
		Offer: []OfferItem{{
			ItemType:             ItemTypeERC20,
			Token:                data.InputToken,
			IdentifierOrCriteria: big.NewInt(0),
			StartAmount:          data.InputAmount,
			EndAmount:            data.InputAmount,
		}},
		Consideration: []ConsiderationItem{{
			ItemType:             ItemTypeERC20,
			Token:                data.OutputToken,
			IdentifierOrCriteria: big.NewInt(0),
			StartAmount:          data.OutputAmount,
			EndAmount:            data.OutputAmount,
			Recipient:            ob.offerer,
		}},
		OrderType: OrderTypeFullOpen,
	})
}

func (ob *OrderBuilder) validateInputs(data *OrderData) error {
	if len(data.Offer) == 0 {
		return ErrMissingOffer
	}
	if len(data.Consideration) == 0 {
		return ErrMissingConsideration
	}
	for i := range data.Offer {
		if !validAmounts(data.Offer[i].StartAmount, data.Offer[i].EndAmount) {
			return ErrInvalidAmount
		}
	}
	for i := range data.Consideration {
		if !validAmounts(data.Consideration[i].StartAmount, data.Consideration[i].EndAmount) {
			return ErrInvalidAmount
		}
	}
	return nil
}

func validAmounts(start, end *big.Int) bool {
	return start != nil && end != nil && start.Sign() >= 0 && end.Sign() >= 0
}

// generateSalt produces a caller-unique salt. Uniqueness per offerer is
// what matters; collisions across intents would collide the digest.
func (ob *OrderBuilder) generateSalt() *big.Int {
	now := time.Now().UnixNano()
	random := rand.Int63()
	salt := new(big.Int).Mul(big.NewInt(now), big.NewInt(random))
	return salt.Abs(salt)
}
