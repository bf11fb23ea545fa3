// Example usage of the Aori Go SDK
package main

import (
	"context"
	"fmt"
	"log"

	aori "github.com/ConnorMJones/aori-go"
	"github.com/ConnorMJones/aori-go/chain"
	"github.com/ethereum/go-ethereum/common"
)

func main() {
	ctx := context.Background()

	// Reads PRIVATE_KEY, WALLET_ADDRESS and NODE_URL from the environment
	provider, err := aori.NewProviderFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to create provider: %v", err)
	}
	defer provider.Close()

	fmt.Printf("Session up on chain %d as %s\n", provider.ChainID(), provider.Address())

	// Liveness probe
	if _, err := provider.Ping(); err != nil {
		log.Fatalf("Failed to ping: %v", err)
	}
	frame, err := provider.RequestConn().Receive()
	if err != nil {
		log.Fatalf("Failed to read ping response: %v", err)
	}
	fmt.Printf("Ping response: %s\n", frame)

	// Wallet-ownership proof; the response carries the auth token
	if _, err := provider.AuthWallet(); err != nil {
		log.Fatalf("Failed to auth wallet: %v", err)
	}
	frame, err = provider.RequestConn().Receive()
	if err != nil {
		log.Fatalf("Failed to read auth response: %v", err)
	}
	token, err := aori.ParseAuthToken(frame)
	if err != nil {
		log.Fatalf("Failed to extract auth token: %v", err)
	}

	// Validate the token; privileged calls are meaningful after this
	if _, err := provider.CheckAuth(token); err != nil {
		log.Fatalf("Failed to check auth: %v", err)
	}
	frame, err = provider.RequestConn().Receive()
	if err != nil {
		log.Fatalf("Failed to read check_auth response: %v", err)
	}
	fmt.Printf("Auth confirmed: %s\n", frame)

	// Orderbook snapshot for a pair, plus a live feed subscription
	weth := "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"
	usdc := "0x07865c6E87B9F70255377e024ace6630C1Eaa37F"
	if _, err := provider.ViewOrderbook(weth, usdc); err != nil {
		log.Fatalf("Failed to view orderbook: %v", err)
	}
	if _, err := provider.SubscribeOrderbook(); err != nil {
		log.Fatalf("Failed to subscribe to orderbook: %v", err)
	}

	// Pick up the offerer's replay counter before signing
	if err := provider.RefreshCounter(ctx); err != nil {
		log.Printf("Failed to refresh counter, signing with 0: %v", err)
	}

	// Sell 1 WETH for 1500 USDC
	inputAmount, err := aori.SafeAmountToWei(1.0, 18)
	if err != nil {
		log.Fatalf("Bad input amount: %v", err)
	}
	outputAmount, err := aori.SafeAmountToWei(1500.0, 6)
	if err != nil {
		log.Fatalf("Bad output amount: %v", err)
	}

	builder := chain.NewOrderBuilder(common.HexToAddress(provider.Address()))
	params, err := builder.BuildLimitOrder(&chain.LimitOrderData{
		InputToken:   common.HexToAddress(weth),
		InputAmount:  inputAmount,
		OutputToken:  common.HexToAddress(usdc),
		OutputAmount: outputAmount,
	})
	if err != nil {
		log.Fatalf("Failed to build order: %v", err)
	}

	id, err := provider.MakeOrder(params)
	if err != nil {
		log.Fatalf("Failed to make order: %v", err)
	}
	fmt.Printf("Order submitted with request id %d\n", id)

	frame, err = provider.RequestConn().Receive()
	if err != nil {
		log.Fatalf("Failed to read make_order response: %v", err)
	}
	fmt.Printf("Order response: %s\n", frame)
}
