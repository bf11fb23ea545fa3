package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// NodeCaller handles read-only node interactions: chain id resolution
// and Seaport contract state lookups.
type NodeCaller struct {
	client      *ethclient.Client
	seaportAddr common.Address
}

// NewNodeCaller connects to the given node endpoint
func NewNodeCaller(ctx context.Context, rpcURL string) (*NodeCaller, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to node: %w", err)
	}

	return &NodeCaller{
		client:      client,
		seaportAddr: SeaportAddress,
	}, nil
}

// Close closes the underlying node connection
func (nc *NodeCaller) Close() {
	if nc.client != nil {
		nc.client.Close()
	}
}

// ChainID resolves the chain id of the connected network
func (nc *NodeCaller) ChainID(ctx context.Context) (uint64, error) {
	id, err := nc.client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve chain id: %w", err)
	}
	return id.Uint64(), nil
}

// Counter returns the offerer's current replay counter on the Seaport
// contract.
func (nc *NodeCaller) Counter(ctx context.Context, offerer common.Address) (*big.Int, error) {
	seaportABI := GetSeaportABI()

	data, err := seaportABI.Pack("getCounter", offerer)
	if err != nil {
		return nil, fmt.Errorf("failed to encode getCounter call: %w", err)
	}

	result, err := nc.client.CallContract(ctx, ethereum.CallMsg{
		To:   &nc.seaportAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("getCounter call failed: %w", err)
	}

	values, err := seaportABI.Unpack("getCounter", result)
	if err != nil {
		return nil, fmt.Errorf("failed to decode getCounter result: %w", err)
	}

	counter, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected getCounter result type %T", values[0])
	}

	return counter, nil
}

// OrderStatus returns the on-chain validation state for an order hash
func (nc *NodeCaller) OrderStatus(ctx context.Context, orderHash common.Hash) (*OrderStatus, error) {
	seaportABI := GetSeaportABI()

	data, err := seaportABI.Pack("getOrderStatus", orderHash)
	if err != nil {
		return nil, fmt.Errorf("failed to encode getOrderStatus call: %w", err)
	}

	result, err := nc.client.CallContract(ctx, ethereum.CallMsg{
		To:   &nc.seaportAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("getOrderStatus call failed: %w", err)
	}

	values, err := seaportABI.Unpack("getOrderStatus", result)
	if err != nil {
		return nil, fmt.Errorf("failed to decode getOrderStatus result: %w", err)
	}
	if len(values) != 4 {
		return nil, fmt.Errorf("unexpected getOrderStatus result length %d", len(values))
	}

	status := &OrderStatus{}
	var ok bool
	if status.IsValidated, ok = values[0].(bool); !ok {
		return nil, fmt.Errorf("unexpected isValidated type %T", values[0])
	}
	if status.IsCancelled, ok = values[1].(bool); !ok {
		return nil, fmt.Errorf("unexpected isCancelled type %T", values[1])
	}
	if status.TotalFilled, ok = values[2].(*big.Int); !ok {
		return nil, fmt.Errorf("unexpected totalFilled type %T", values[2])
	}
	if status.TotalSize, ok = values[3].(*big.Int); !ok {
		return nil, fmt.Errorf("unexpected totalSize type %T", values[3])
	}

	return status, nil
}
