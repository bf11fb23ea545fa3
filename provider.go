package aori

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"

	"github.com/ConnorMJones/aori-go/chain"
)

// RPC method names
const (
	MethodPing               = "aori_ping"
	MethodAuthWallet         = "aori_authWallet"
	MethodCheckAuth          = "aori_checkAuth"
	MethodViewOrderbook      = "aori_viewOrderbook"
	MethodMakeOrder          = "aori_makeOrder"
	MethodSubscribeOrderbook = "aori_subscribeOrderbook"
)

// AoriProvider is a single-session client for the matching service. It
// exclusively owns the request id counter and both channel handles;
// "assign id + send" runs under one lock, so ids observed on a channel
// are strictly increasing in send order even with concurrent callers.
//
// The provider is send-only: correlating responses is the caller's
// job, via RequestConn().Receive() / FeedConn().Receive() and the ids
// the call methods return.
type AoriProvider struct {
	mu          sync.Mutex
	requestConn Channel
	feedConn    Channel
	node        *chain.NodeCaller
	signer      *chain.Signer
	domain      *chain.Domain
	chainID     uint64
	lastID      uint64
	walletAddr  string
	walletSig   string
	authToken   string
	counter     *big.Int
}

// NewProvider constructs a session from explicit configuration: it
// resolves the chain id from the node, computes the wallet-ownership
// signature, and establishes both channels. Any failure here is fatal;
// no session is constructed and nothing is retried.
func NewProvider(ctx context.Context, cfg Config) (*AoriProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	node, err := chain.NewNodeCaller(ctx, cfg.NodeURL)
	if err != nil {
		return nil, &ConnectError{Endpoint: cfg.NodeURL, Err: err}
	}

	chainID, err := node.ChainID(ctx)
	if err != nil {
		node.Close()
		return nil, &ConnectError{Endpoint: cfg.NodeURL, Err: err}
	}

	signer, err := chain.NewSigner(cfg.PrivateKey)
	if err != nil {
		node.Close()
		return nil, &ConfigError{Field: "PRIVATE_KEY"}
	}

	requestConn, err := DialChannel(ctx, cfg.RequestURL)
	if err != nil {
		node.Close()
		return nil, err
	}

	feedConn, err := DialChannel(ctx, cfg.FeedURL)
	if err != nil {
		requestConn.Close()
		node.Close()
		return nil, err
	}

	p, err := NewProviderWithConn(signer, cfg.WalletAddress, chainID, requestConn, feedConn)
	if err != nil {
		feedConn.Close()
		requestConn.Close()
		node.Close()
		return nil, err
	}
	p.node = node

	return p, nil
}

// NewProviderFromEnv constructs a session from the process environment
func NewProviderFromEnv(ctx context.Context) (*AoriProvider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg)
}

// NewProviderWithConn constructs a session over already-established
// channels. The wallet-ownership signature is computed here, in
// personal-message mode, over the wallet address string.
func NewProviderWithConn(signer *chain.Signer, walletAddr string, chainID uint64, request, feed Channel) (*AoriProvider, error) {
	sig, err := signer.SignMessage([]byte(walletAddr))
	if err != nil {
		return nil, &SignError{Err: err}
	}

	return &AoriProvider{
		requestConn: request,
		feedConn:    feed,
		signer:      signer,
		domain:      chain.SeaportDomain(chainID),
		chainID:     chainID,
		walletAddr:  walletAddr,
		walletSig:   chain.SignatureHex(sig),
		counter:     big.NewInt(0),
	}, nil
}

// Close releases both channels and the node connection
func (p *AoriProvider) Close() error {
	var err error
	if p.requestConn != nil {
		err = p.requestConn.Close()
	}
	if p.feedConn != nil {
		if cerr := p.feedConn.Close(); err == nil {
			err = cerr
		}
	}
	if p.node != nil {
		p.node.Close()
	}
	return err
}

// send assigns the next id and writes the envelope as one atomic unit
func (p *AoriProvider) send(conn Channel, method string, params []any) (uint64, error) {
	if params == nil {
		params = []any{}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.lastID++
	id := p.lastID

	req := RPCRequest{
		ID:      id,
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return 0, &SendError{Method: method, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	if err := conn.SendText(string(payload)); err != nil {
		return 0, &SendError{Method: method, Err: err}
	}

	return id, nil
}

// Ping sends a liveness probe on the request channel
func (p *AoriProvider) Ping() (uint64, error) {
	return p.send(p.requestConn, MethodPing, nil)
}

// AuthWallet sends the wallet-ownership proof. The response carries the
// auth token at result.auth; retrieve it with ParseAuthToken and hand
// it to CheckAuth.
func (p *AoriProvider) AuthWallet() (uint64, error) {
	return p.send(p.requestConn, MethodAuthWallet, []any{AuthWalletParams{
		Address:   p.walletAddr,
		Signature: p.walletSig,
	}})
}

// CheckAuth validates a previously issued auth token and records it on
// the session.
func (p *AoriProvider) CheckAuth(token string) (uint64, error) {
	p.mu.Lock()
	p.authToken = token
	p.mu.Unlock()

	return p.send(p.requestConn, MethodCheckAuth, []any{CheckAuthParams{Auth: token}})
}

// Authenticated reports whether an auth token has been recorded
func (p *AoriProvider) Authenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.authToken != ""
}

// ViewOrderbook requests the orderbook for a trading pair
func (p *AoriProvider) ViewOrderbook(base, quote string) (uint64, error) {
	return p.send(p.requestConn, MethodViewOrderbook, []any{ViewOrderbookParams{
		ChainID: p.chainID,
		Query: OrderbookQuery{
			Base:  base,
			Quote: quote,
		},
	}})
}

// MakeOrder signs the order's typed-data digest under the session
// domain and submits it as a public order. Calling this before the
// auth handshake completes is not rejected locally; the service will
// refuse it.
func (p *AoriProvider) MakeOrder(params *chain.OrderParameters) (uint64, error) {
	p.mu.Lock()
	counter := new(big.Int).Set(p.counter)
	p.mu.Unlock()

	components := params.ToComponents(counter)
	digest := chain.SigningHash(p.domain, components)

	sig, err := p.signer.SignDigest(digest)
	if err != nil {
		return 0, &SignError{Err: err}
	}

	return p.send(p.requestConn, MethodMakeOrder, []any{MakeOrderParams{
		Order: OrderJSON{
			Signature:  chain.SignatureHex(sig),
			Parameters: RenderOrderParameters(params, counter),
		},
		IsPublic: true,
		ChainID:  p.chainID,
	}})
}

// SubscribeOrderbook subscribes to orderbook updates. This is the one
// call that goes out on the feed channel.
func (p *AoriProvider) SubscribeOrderbook() (uint64, error) {
	return p.send(p.feedConn, MethodSubscribeOrderbook, nil)
}

// RefreshCounter fetches the offerer's replay counter from the Seaport
// contract. Without a node connection the counter stays at zero.
func (p *AoriProvider) RefreshCounter(ctx context.Context) error {
	if p.node == nil {
		return nil
	}

	counter, err := p.node.Counter(ctx, p.signer.Address())
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.counter = counter
	p.mu.Unlock()

	return nil
}

// RequestConn returns the request channel for response correlation
func (p *AoriProvider) RequestConn() Channel {
	return p.requestConn
}

// FeedConn returns the market-data feed channel
func (p *AoriProvider) FeedConn() Channel {
	return p.feedConn
}

// ChainID returns the resolved chain id the session is bound to
func (p *AoriProvider) ChainID() uint64 {
	return p.chainID
}

// Address returns the session wallet address
func (p *AoriProvider) Address() string {
	return p.walletAddr
}

// LastID returns the most recently assigned request id
func (p *AoriProvider) LastID() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastID
}
