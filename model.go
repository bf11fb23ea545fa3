package aori

import (
	"encoding/json"
	"math/big"

	"github.com/ConnorMJones/aori-go/chain"
)

// RPCRequest is the envelope every outbound message uses
type RPCRequest struct {
	ID      uint64 `json:"id"`
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// RPCResponse is the envelope inbound frames are expected to carry,
// correlated to a request by ID.
type RPCResponse struct {
	ID      int64           `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a service-side error payload
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return e.Message
}

// AuthWalletParams carries the wallet-ownership proof
type AuthWalletParams struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

// CheckAuthParams carries a previously issued auth token
type CheckAuthParams struct {
	Auth string `json:"auth"`
}

// OrderbookQuery selects an orderbook by trading pair
type OrderbookQuery struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

// ViewOrderbookParams scopes an orderbook view to one chain
type ViewOrderbookParams struct {
	ChainID uint64         `json:"chainId"`
	Query   OrderbookQuery `json:"query"`
}

// MakeOrderParams carries a signed order for the matching service
type MakeOrderParams struct {
	Order    OrderJSON `json:"order"`
	IsPublic bool      `json:"isPublic"`
	ChainID  uint64    `json:"chainId"`
}

// OrderJSON pairs the digest-mode signature with the rendered parameters
type OrderJSON struct {
	Signature  string              `json:"signature"`
	Parameters OrderParametersJSON `json:"parameters"`
}

// OfferItemJSON is the wire rendering of an offer item: 256-bit values
// as decimal strings, addresses as hex, enums as small integers.
type OfferItemJSON struct {
	ItemType             int    `json:"itemType"`
	Token                string `json:"token"`
	IdentifierOrCriteria string `json:"identifierOrCriteria"`
	StartAmount          string `json:"startAmount"`
	EndAmount            string `json:"endAmount"`
}

// ConsiderationItemJSON is the wire rendering of a consideration item
type ConsiderationItemJSON struct {
	ItemType             int    `json:"itemType"`
	Token                string `json:"token"`
	IdentifierOrCriteria string `json:"identifierOrCriteria"`
	StartAmount          string `json:"startAmount"`
	EndAmount            string `json:"endAmount"`
	Recipient            string `json:"recipient"`
}

// OrderParametersJSON is the full field-by-field rendering of an order
type OrderParametersJSON struct {
	Offerer                         string                  `json:"offerer"`
	Zone                            string                  `json:"zone"`
	ZoneHash                        string                  `json:"zoneHash"`
	StartTime                       string                  `json:"startTime"`
	EndTime                         string                  `json:"endTime"`
	OrderType                       int                     `json:"orderType"`
	Offer                           []OfferItemJSON         `json:"offer"`
	Consideration                   []ConsiderationItemJSON `json:"consideration"`
	TotalOriginalConsiderationItems int64                   `json:"totalOriginalConsiderationItems"`
	Salt                            string                  `json:"salt"`
	ConduitKey                      string                  `json:"conduitKey"`
	Counter                         string                  `json:"counter"`
}

// RenderOrderParameters converts order parameters to their wire form.
// Item ordering is preserved exactly as constructed.
func RenderOrderParameters(p *chain.OrderParameters, counter *big.Int) OrderParametersJSON {
	if counter == nil {
		counter = big.NewInt(0)
	}

	offer := make([]OfferItemJSON, 0, len(p.Offer))
	for i := range p.Offer {
		item := &p.Offer[i]
		offer = append(offer, OfferItemJSON{
			ItemType:             int(item.ItemType),
			Token:                item.Token.Hex(),
			IdentifierOrCriteria: item.IdentifierOrCriteria.String(),
			StartAmount:          item.StartAmount.String(),
			EndAmount:            item.EndAmount.String(),
		})
	}

	consideration := make([]ConsiderationItemJSON, 0, len(p.Consideration))
	for i := range p.Consideration {
		item := &p.Consideration[i]
		consideration = append(consideration, ConsiderationItemJSON{
			ItemType:             int(item.ItemType),
			Token:                item.Token.Hex(),
			IdentifierOrCriteria: item.IdentifierOrCriteria.String(),
			StartAmount:          item.StartAmount.String(),
			EndAmount:            item.EndAmount.String(),
			Recipient:            item.Recipient.Hex(),
		})
	}

	return OrderParametersJSON{
		Offerer:                         p.Offerer.Hex(),
		Zone:                            p.Zone.Hex(),
		ZoneHash:                        p.ZoneHash.Hex(),
		StartTime:                       p.StartTime.String(),
		EndTime:                         p.EndTime.String(),
		OrderType:                       int(p.OrderType),
		Offer:                           offer,
		Consideration:                   consideration,
		TotalOriginalConsiderationItems: p.TotalOriginalConsiderationItems.Int64(),
		Salt:                            p.Salt.String(),
		ConduitKey:                      p.ConduitKey.Hex(),
		Counter:                         counter.String(),
	}
}

// ParseAuthToken extracts the auth token from an aori_authWallet
// response frame. The token is decoded as a plain JSON string, so no
// surrounding quote characters survive into the value.
func ParseAuthToken(frame []byte) (string, error) {
	var resp RPCResponse
	if err := json.Unmarshal(frame, &resp); err != nil {
		return "", &ProtocolError{Message: "malformed response frame: " + err.Error()}
	}
	if resp.Error != nil {
		return "", &ProtocolError{Message: "auth rejected: " + resp.Error.Message}
	}

	var result struct {
		Auth string `json:"auth"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return "", &ProtocolError{Message: "malformed auth result: " + err.Error()}
	}
	if result.Auth == "" {
		return "", &ProtocolError{Message: "auth token missing from response"}
	}

	return result.Auth, nil
}
